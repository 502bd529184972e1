package domain

import (
	"path/filepath"
	"strings"
)

// ContentKind is the analysis category of an uploaded file.
type ContentKind int

const (
	ContentPhoto ContentKind = iota
	ContentPDFDocument
	ContentUnsupported
)

func (k ContentKind) String() string {
	switch k {
	case ContentPhoto:
		return "photo"
	case ContentPDFDocument:
		return "pdf_document"
	case ContentUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// ClassifyFile decides the analysis category of an uploaded file. Documents
// classify by filename suffix; photos are always analyzable. The decision is
// total: every ref maps to exactly one kind.
func ClassifyFile(ref FileRef) ContentKind {
	if ref.Kind == FileDocument {
		if strings.EqualFold(filepath.Ext(ref.Name), ".pdf") {
			return ContentPDFDocument
		}
		return ContentUnsupported
	}
	return ContentPhoto
}
