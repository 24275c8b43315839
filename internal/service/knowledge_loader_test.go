package service

import (
	"context"
	"errors"
	"testing"

	"dadmind/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestKnowledgeLoader_Load(t *testing.T) {
	source := new(MockDocumentSource)
	decoder := new(MockDocumentDecoder)

	source.On("Fetch", mock.Anything, "a.pdf").Return([]byte("A"), nil)
	source.On("Fetch", mock.Anything, "b.pdf").Return(nil, errors.New("404 not found"))
	source.On("Fetch", mock.Anything, "c.pdf").Return([]byte("C"), nil)
	decoder.On("Decode", []byte("A")).Return([][]string{{"Trang", "một"}, {"Trang", "hai"}}, nil)
	decoder.On("Decode", []byte("C")).Return(nil, errors.New("malformed xref"))

	loader := NewKnowledgeLoader(source, decoder)
	texts, errs := loader.Load(context.Background(), []domain.DocumentDescriptor{
		{Name: "Tâm Lý Trị Liệu", Location: "a.pdf"},
		{Name: "Tâm Lý Đại Cương", Location: "b.pdf"},
		{Name: "Broken", Location: "c.pdf"},
	})

	assert.Equal(t, map[string]string{"Tâm Lý Trị Liệu": "Trang một\nTrang hai\n"}, texts)
	assert.ElementsMatch(t, []string{
		"failed to load Tâm Lý Đại Cương: 404 not found",
		"failed to load Broken: malformed xref",
	}, errs)
	source.AssertExpectations(t)
	decoder.AssertExpectations(t)
}

func TestKnowledgeLoader_LoadIntoReplacesAtomically(t *testing.T) {
	source := new(MockDocumentSource)
	decoder := new(MockDocumentDecoder)
	source.On("Fetch", mock.Anything, "a.pdf").Return([]byte("A"), nil)
	decoder.On("Decode", []byte("A")).Return([][]string{{"hello", "world"}}, nil)

	kb := domain.NewKnowledgeBase([]domain.DocumentDescriptor{{Name: "a", Location: "a.pdf"}})
	require.True(t, kb.Status().Loading)
	assert.False(t, kb.HasText())

	NewKnowledgeLoader(source, decoder).LoadInto(context.Background(), kb)

	status := kb.Status()
	assert.False(t, status.Loading)
	assert.Equal(t, []string{"a"}, status.Loaded)
	assert.Empty(t, status.Errors)
	assert.True(t, kb.HasText())
	assert.Equal(t, "hello world\n", kb.Documents()[0].Text)
}

func TestKnowledgeLoader_NothingLoaded(t *testing.T) {
	source := new(MockDocumentSource)
	source.On("Fetch", mock.Anything, mock.Anything).Return(nil, errors.New("offline"))

	kb := domain.NewKnowledgeBase([]domain.DocumentDescriptor{{Name: "a", Location: "a.pdf"}, {Name: "b", Location: "b.pdf"}})
	NewKnowledgeLoader(source, new(MockDocumentDecoder)).LoadInto(context.Background(), kb)

	status := kb.Status()
	assert.False(t, status.Loading)
	assert.Empty(t, status.Loaded)
	assert.Len(t, status.Errors, 2)
	assert.False(t, kb.HasText())
}
