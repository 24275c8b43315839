package service

import (
	"context"
	"strings"

	"dadmind/internal/domain"
	"dadmind/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultLoadConcurrency = 4

// KnowledgeLoader extracts the text of the reference documents.
type KnowledgeLoader struct {
	source      domain.DocumentSource
	decoder     domain.DocumentDecoder
	concurrency int
}

func NewKnowledgeLoader(source domain.DocumentSource, decoder domain.DocumentDecoder) *KnowledgeLoader {
	return &KnowledgeLoader{source: source, decoder: decoder, concurrency: defaultLoadConcurrency}
}

type loadOutcome struct {
	text string
	err  error
}

// Load fetches and decodes every document concurrently. A failed document is
// left out of the text map and reported in the error list; it never stops the
// others.
func (l *KnowledgeLoader) Load(ctx context.Context, descriptors []domain.DocumentDescriptor) (map[string]string, []string) {
	log := logger.Get()
	log.Info("Loading knowledge base documents", zap.Int("count", len(descriptors)))

	outcomes := make([]loadOutcome, len(descriptors))
	var g errgroup.Group
	g.SetLimit(l.concurrency)
	for i, d := range descriptors {
		g.Go(func() error {
			text, err := l.loadOne(ctx, d)
			outcomes[i] = loadOutcome{text: text, err: err}
			return nil
		})
	}
	_ = g.Wait()

	texts := make(map[string]string, len(descriptors))
	var errs []string
	for i, d := range descriptors {
		if outcomes[i].err != nil {
			loadErr := domain.NewDocumentLoadError(d.Name, outcomes[i].err)
			log.Warn("Knowledge document failed to load", zap.String("name", d.Name), zap.Error(outcomes[i].err))
			errs = append(errs, loadErr.Error())
			continue
		}
		texts[d.Name] = outcomes[i].text
		log.Info("Knowledge document loaded", zap.String("name", d.Name), zap.Int("chars", len([]rune(outcomes[i].text))))
	}

	if len(texts) == 0 && len(descriptors) > 0 {
		log.Error("No knowledge documents could be loaded", zap.Strings("errors", errs))
	}
	return texts, errs
}

// LoadInto loads the base's documents and installs them in one replace.
func (l *KnowledgeLoader) LoadInto(ctx context.Context, kb *domain.KnowledgeBase) {
	texts, errs := l.Load(ctx, kb.Descriptors())
	kb.Replace(texts, errs)
}

func (l *KnowledgeLoader) loadOne(ctx context.Context, d domain.DocumentDescriptor) (string, error) {
	data, err := l.source.Fetch(ctx, d.Location)
	if err != nil {
		return "", err
	}
	pages, err := l.decoder.Decode(data)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, fragments := range pages {
		sb.WriteString(strings.Join(fragments, " "))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
