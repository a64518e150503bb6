package article

import "fmt"

// Machine codes carried by GenerationError.
const (
	CodeModelBadJSON       = "MODEL_BAD_JSON"
	CodeModelSectionsEmpty = "MODEL_SECTIONS_EMPTY"
	CodeBackendFailed      = "MODEL_BACKEND_FAILED"
	CodeRepairFailed       = "MODEL_REPAIR_FAILED"
)

// GenerationError marks a generation attempt that produced nothing usable:
// backend failure, unparsable output, or zero salvageable sections.
type GenerationError struct {
	Code    string
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation failed (%s): %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("generation failed (%s): %s", e.Code, e.Message)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ValidationError names the first violated field constraint. Reaching it after
// sanitization is a bug signal, not an expected path.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("document validation failed: %s: %s", e.Field, e.Reason)
}
