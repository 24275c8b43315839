package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"dadmind/internal/domain"
)

const (
	MaxMessageLength  = 4000
	MaxClientIDLength = 64
	maxAnswerIDLength = 16
)

var (
	validULID     = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	validClientID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	validAnswerID = regexp.MustCompile(`^[a-z0-9]+$`)
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSendMessage validates the text of a chat turn
func (v *Validator) ValidateSendMessage(text string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(text) == "" {
		errors = append(errors, domain.NewMissingFieldError("text"))
	} else if n := utf8.RuneCountInString(text); n > MaxMessageLength {
		errors = append(errors, domain.NewOutOfRangeError("text", n, 1, MaxMessageLength))
	}

	return errors
}

// ValidateID validates a ULID path parameter such as a session or result id
func (v *Validator) ValidateID(field, id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError(field))
	} else if !isValidULID(id) {
		errors = append(errors, domain.NewInvalidFormatError(field, id))
	}

	return errors
}

// ValidateClientID validates the caller-chosen client scope
func (v *Validator) ValidateClientID(clientID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if len(clientID) > MaxClientIDLength {
		errors = append(errors, domain.NewOutOfRangeError("client_id", len(clientID), 1, MaxClientIDLength))
	} else if !validClientID.MatchString(clientID) {
		errors = append(errors, domain.NewInvalidFormatError("client_id", clientID))
	}

	return errors
}

// ValidateAnswers checks the shape of an answer set. Unknown question ids are
// not rejected here; scoring ignores them.
func (v *Validator) ValidateAnswers(answers map[string]string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if len(answers) == 0 {
		errors = append(errors, domain.NewMissingFieldError("answers"))
		return errors
	}

	for questionID, optionID := range answers {
		if !isValidAnswerID(questionID) {
			errors = append(errors, domain.NewInvalidFormatError("answers", questionID))
			continue
		}
		if !isValidAnswerID(optionID) {
			errors = append(errors, domain.NewInvalidFormatError("answers."+questionID, optionID))
		}
	}

	return errors
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	return len(s) == 26 && validULID.MatchString(s)
}

func isValidAnswerID(s string) bool {
	return len(s) > 0 && len(s) <= maxAnswerIDLength && validAnswerID.MatchString(s)
}
