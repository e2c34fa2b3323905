// Package output defines the destination interface for batch results.
package output

import "github.com/crimson-sun/sift/internal/model"

// ResultWriter persists the two result sets of one batch run. Both sets are
// written whole, after the full input is consumed; there is no incremental
// output.
type ResultWriter interface {
	// WriteValid persists the accepted events, even when the set is empty.
	WriteValid(events []model.UnifiedEvent) error
	// WriteInvalid persists the rejections. An empty set writes nothing.
	WriteInvalid(rejects []model.Rejection) error
}
