// Package intent turns raw user utterances into structured travel slots and
// decides when enough is known to search.
package intent

import (
	"context"
	"fmt"

	"voyago/models"
)

// Extractor re-evaluates the slot set against one utterance. A slot already
// Known survives unless the utterance explicitly overrides that field. An
// utterance carrying no travel information returns the slots unchanged with
// a nil error.
type Extractor interface {
	Extract(ctx context.Context, utterance string, prior models.Slots) (models.Slots, error)
}

// ExtractionError marks malformed extractor output. It is recoverable: the
// controller asks the user to rephrase instead of failing the request.
type ExtractionError struct {
	Raw string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("malformed extraction output: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
