// Package file writes batch result sets as indented JSON array files.
package file

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/crimson-sun/sift/internal/model"
)

const defaultIndent = "  "

// Option configures a Writer.
type Option func(*Writer)

// WithIndent sets the JSON indentation string. Default: two spaces.
func WithIndent(indent string) Option {
	return func(w *Writer) { w.indent = indent }
}

// Writer persists valid and invalid result sets to two JSON files.
type Writer struct {
	validPath   string
	invalidPath string
	indent      string
}

// New creates a Writer targeting the given paths.
func New(validPath, invalidPath string, opts ...Option) *Writer {
	w := &Writer{
		validPath:   validPath,
		invalidPath: invalidPath,
		indent:      defaultIndent,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ValidPath returns the destination of the accepted-event set.
func (w *Writer) ValidPath() string { return w.validPath }

// InvalidPath returns the destination of the rejection set.
func (w *Writer) InvalidPath() string { return w.invalidPath }

// WriteValid writes the accepted events as a JSON array. An empty set still
// writes "[]" so consumers always find the file.
func (w *Writer) WriteValid(events []model.UnifiedEvent) error {
	if events == nil {
		events = []model.UnifiedEvent{}
	}
	return w.writeJSON(w.validPath, events)
}

// WriteInvalid writes the rejections as a JSON array, only when there are
// any.
func (w *Writer) WriteInvalid(rejects []model.Rejection) error {
	if len(rejects) == 0 {
		return nil
	}
	return w.writeJSON(w.invalidPath, rejects)
}

func (w *Writer) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", w.indent)
	if err != nil {
		return fmt.Errorf("file output: marshal %s: %w", path, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("file output: write %s: %w", path, err)
	}
	return nil
}
