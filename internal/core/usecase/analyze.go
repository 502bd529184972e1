package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/kirillkom/telegram-gemini-bot/internal/core/domain"
	"github.com/kirillkom/telegram-gemini-bot/internal/core/ports"
)

// AnalyzeFileUseCase runs the file pipeline: classify, fetch into staging,
// build the provider request, chunk the result. Unsupported uploads
// short-circuit before any fetch. Every failure resolves to reply text.
type AnalyzeFileUseCase struct {
	source    ports.FileSource
	staging   ports.StagingStore
	extractor ports.TextExtractor
	provider  ports.Provider
	chunker   ports.Chunker
	sink      ports.EventSink
	pdfBudget int
}

func NewAnalyzeFileUseCase(
	source ports.FileSource,
	staging ports.StagingStore,
	extractor ports.TextExtractor,
	provider ports.Provider,
	chunker ports.Chunker,
	sink ports.EventSink,
	pdfBudget int,
) *AnalyzeFileUseCase {
	if pdfBudget <= 0 {
		pdfBudget = 2000
	}
	return &AnalyzeFileUseCase{
		source:    source,
		staging:   staging,
		extractor: extractor,
		provider:  provider,
		chunker:   chunker,
		sink:      sink,
		pdfBudget: pdfBudget,
	}
}

func (uc *AnalyzeFileUseCase) Handle(ctx context.Context, event domain.InboundEvent) Outcome {
	kind := domain.ClassifyFile(event.File)
	if kind == domain.ContentUnsupported {
		return reply(msgUnsupportedFile)
	}

	key := stagingKey(kind, event.File)
	if err := uc.fetchToStaging(ctx, event.File, key); err != nil {
		slog.Error("file_fetch_failed", "chat_id", event.ChatID, "kind", kind.String(), "error", err)
		return reply(msgFallback)
	}

	result := uc.analyze(ctx, kind, key, event.File)
	if result == "" {
		result = msgAnalysisFailed
	}

	if uc.sink != nil {
		if err := uc.sink.PublishFileAnalyzed(ctx, key); err != nil {
			slog.Warn("file_analyzed_publish_failed", "staging_key", key, "error", err)
		}
	}

	segments := uc.chunker.Split(result)
	if len(segments) == 1 {
		return reply(prefixFileAnalyzed + result)
	}
	return reply(segments...)
}

func (uc *AnalyzeFileUseCase) fetchToStaging(ctx context.Context, ref domain.FileRef, key string) error {
	body, err := uc.source.Fetch(ctx, ref)
	if err != nil {
		return domain.WrapError(domain.ErrFetch, "fetch file", err)
	}
	defer body.Close()

	if err := uc.staging.Save(ctx, key, body); err != nil {
		return domain.WrapError(domain.ErrFetch, "stage file", err)
	}
	return nil
}

func (uc *AnalyzeFileUseCase) analyze(ctx context.Context, kind domain.ContentKind, key string, ref domain.FileRef) string {
	switch kind {
	case domain.ContentPhoto:
		return uc.analyzePhoto(ctx, key, ref)
	case domain.ContentPDFDocument:
		return uc.analyzePDF(ctx, key)
	default:
		return msgAnalysisFailed
	}
}

func (uc *AnalyzeFileUseCase) analyzePhoto(ctx context.Context, key string, ref domain.FileRef) string {
	image, err := uc.readStaged(ctx, key)
	if err != nil {
		return analysisError(err)
	}
	if len(image) == 0 {
		return analysisError(domain.WrapError(domain.ErrExtraction, "load image", fmt.Errorf("empty image")))
	}

	description, err := uc.provider.DescribeImage(ctx, promptDescribeImage, ref.MimeType, image)
	if err != nil {
		return analysisError(err)
	}
	if description == "" {
		return msgNoDescription
	}
	return description
}

func (uc *AnalyzeFileUseCase) analyzePDF(ctx context.Context, key string) string {
	text, err := uc.extractor.Extract(ctx, key)
	if err != nil {
		return analysisError(domain.WrapError(domain.ErrExtraction, "extract pdf text", err))
	}

	// Raw character cut: bounds request cost, not excerpt quality.
	excerpt := truncateRunes(text, uc.pdfBudget)

	summary, err := uc.provider.GenerateText(ctx, promptSummarizeDocument+excerpt)
	if err != nil {
		return analysisError(err)
	}
	if summary == "" {
		return msgNoSummary
	}
	return summary
}

func (uc *AnalyzeFileUseCase) readStaged(ctx context.Context, key string) ([]byte, error) {
	reader, err := uc.staging.Open(ctx, key)
	if err != nil {
		return nil, domain.WrapError(domain.ErrExtraction, "open staged file", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, domain.WrapError(domain.ErrExtraction, "read staged file", err)
	}
	return raw, nil
}

func analysisError(err error) string {
	return fmt.Sprintf("Error analyzing file: %s", err)
}

// stagingKey namespaces every staged file per event so concurrent uploads
// of identically named documents cannot clobber each other.
func stagingKey(kind domain.ContentKind, ref domain.FileRef) string {
	if kind == domain.ContentPhoto {
		return uuid.NewString() + ".jpg"
	}
	return fmt.Sprintf("%s_%s", uuid.NewString(), sanitizeFilename(ref.Name))
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "document.bin"
	}
	return base
}

func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
