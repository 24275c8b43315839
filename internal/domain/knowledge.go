package domain

import (
	"context"
	"sync"
)

// DocumentDescriptor names a reference document and where to fetch it.
type DocumentDescriptor struct {
	Name     string `json:"name" mapstructure:"name"`
	Location string `json:"location" mapstructure:"location"`
}

// KnowledgeDocument is a descriptor with its extracted text. Text is empty
// when the document failed to load.
type KnowledgeDocument struct {
	Name     string
	Location string
	Text     string
}

// KnowledgeStatus is a diagnostic snapshot of the knowledge base.
type KnowledgeStatus struct {
	Loading bool     `json:"loading"`
	Loaded  []string `json:"loaded"`
	Errors  []string `json:"errors"`
}

// KnowledgeBase holds the extracted reference texts. It is filled by a single
// Replace and is read-only afterwards; readers never see a partial batch.
type KnowledgeBase struct {
	mu          sync.RWMutex
	descriptors []DocumentDescriptor
	texts       map[string]string
	errors      []string
	loading     bool
}

// NewKnowledgeBase creates a base in the loading state for the given descriptors.
func NewKnowledgeBase(descriptors []DocumentDescriptor) *KnowledgeBase {
	return &KnowledgeBase{
		descriptors: append([]DocumentDescriptor(nil), descriptors...),
		texts:       map[string]string{},
		loading:     len(descriptors) > 0,
	}
}

// Replace installs the outcome of a load batch atomically.
func (kb *KnowledgeBase) Replace(texts map[string]string, errs []string) {
	copied := make(map[string]string, len(texts))
	for k, v := range texts {
		copied[k] = v
	}
	kb.mu.Lock()
	defer kb.mu.Unlock()
	kb.texts = copied
	kb.errors = append([]string(nil), errs...)
	kb.loading = false
}

// Descriptors returns the configured documents in order.
func (kb *KnowledgeBase) Descriptors() []DocumentDescriptor {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	return append([]DocumentDescriptor(nil), kb.descriptors...)
}

// Documents returns every configured document in descriptor order.
func (kb *KnowledgeBase) Documents() []KnowledgeDocument {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	docs := make([]KnowledgeDocument, 0, len(kb.descriptors))
	for _, d := range kb.descriptors {
		docs = append(docs, KnowledgeDocument{Name: d.Name, Location: d.Location, Text: kb.texts[d.Name]})
	}
	return docs
}

// Loading reports whether the initial load batch has not been installed yet.
func (kb *KnowledgeBase) Loading() bool {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	return kb.loading
}

// HasText reports whether at least one document produced text.
func (kb *KnowledgeBase) HasText() bool {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	for _, t := range kb.texts {
		if t != "" {
			return true
		}
	}
	return false
}

// Status returns a snapshot for diagnostics.
func (kb *KnowledgeBase) Status() KnowledgeStatus {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	status := KnowledgeStatus{Loading: kb.loading, Loaded: []string{}, Errors: append([]string{}, kb.errors...)}
	for _, d := range kb.descriptors {
		if _, ok := kb.texts[d.Name]; ok {
			status.Loaded = append(status.Loaded, d.Name)
		}
	}
	return status
}

// DocumentSource fetches the raw bytes of a document.
type DocumentSource interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// DocumentDecoder splits a paginated document into pages of text fragments.
type DocumentDecoder interface {
	Decode(data []byte) ([][]string, error)
}
