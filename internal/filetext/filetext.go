// Package filetext extracts plain text from uploaded contract files.
//
// Extraction is routed by filename extension. Scanned (image-only) PDFs
// and empty documents are reported as errors so upload handlers can
// reject the file with a reason instead of analyzing nothing.
package filetext

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Extraction failures surfaced verbatim to upload handlers.
var (
	ErrPDFNoText = errors.New("PDF appears to be image-based or empty; no text could be extracted.")
	ErrDOCXEmpty = errors.New("DOCX appears to be empty.")
	ErrNotText   = errors.New("Could not decode file as text.")
)

// Extractor converts raw document bytes into plain text.
type Extractor interface {
	Extract(r io.Reader, filename string) (string, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".pdf":
		return &PDFExtractor{}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	default:
		return nil, fmt.Errorf("Unsupported format. Use PDF, DOCX, TXT, MD, or HTML. Got: %s", filename)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
