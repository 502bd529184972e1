package pdftext

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

type stagingFake struct {
	content string
	openErr error
}

func (f *stagingFake) Save(context.Context, string, io.Reader) error { return nil }
func (f *stagingFake) Remove(context.Context, string) error          { return nil }
func (f *stagingFake) Open(context.Context, string) (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return io.NopCloser(strings.NewReader(f.content)), nil
}

func TestExtractPropagatesOpenError(t *testing.T) {
	staging := &stagingFake{openErr: errors.New("gone")}
	e := NewExtractor(staging)
	if _, err := e.Extract(context.Background(), "missing.pdf"); err == nil {
		t.Fatalf("expected error for missing staged file")
	}
}

func TestExtractRejectsNonPDFContent(t *testing.T) {
	staging := &stagingFake{content: "this is not a pdf"}
	e := NewExtractor(staging)
	if _, err := e.Extract(context.Background(), "fake.pdf"); err == nil {
		t.Fatalf("expected parse error for non-pdf bytes")
	}
}

func TestExtractRecoversFromTruncatedHeader(t *testing.T) {
	staging := &stagingFake{content: "%PDF-1.4\ngarbage"}
	e := NewExtractor(staging)
	if _, err := e.Extract(context.Background(), "broken.pdf"); err == nil {
		t.Fatalf("expected error for truncated pdf")
	}
}
