package cache

import "strings"

const (
	GlobalKeyPrefix = "dadmind"

	chatService       = "chat"
	assessmentService = "assessment"
)

// GenerateCacheKey joins the prefix, service, object type and identifier with
// ":". Extra params are joined by "_" into one trailing segment.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	parts := []string{GlobalKeyPrefix, serviceName, objectType, identifier}
	if len(paramsKey) > 0 {
		parts = append(parts, strings.Join(paramsKey, "_"))
	}
	return strings.Join(parts, ":")
}

// ChatSessionsKey holds the JSON array of a client's chat sessions.
func ChatSessionsKey(clientID string) string {
	return GenerateCacheKey(chatService, "sessions", clientID)
}

// ActiveSessionKey holds the id of a client's active chat session.
func ActiveSessionKey(clientID string) string {
	return GenerateCacheKey(chatService, "active_session", clientID)
}

// AssessmentResultKey holds one stored assessment result.
func AssessmentResultKey(resultID string) string {
	return GenerateCacheKey(assessmentService, "result", resultID)
}
