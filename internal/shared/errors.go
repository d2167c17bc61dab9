package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Request error kinds. Handlers map ErrValidation to 400 and
	// ErrExtraction to 500 via [errors.Is].
	ErrValidation = fmt.Errorf("validation failed")
	ErrExtraction = fmt.Errorf("extraction failed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

// RequestError is a request-scoped failure carrying a caller-facing message
// and a kind sentinel (ErrValidation or ErrExtraction).
//
// The message is surfaced verbatim in JSON error responses, so it contains
// no internal prefixes.
type RequestError struct {
	Kind    error
	Message string
}

func (e *RequestError) Error() string { return e.Message }

func (e *RequestError) Unwrap() error { return e.Kind }

// ValidationError creates a RequestError that maps to a 400 response.
func ValidationError(message string) error {
	return &RequestError{Kind: ErrValidation, Message: message}
}

// ExtractionError creates a RequestError that maps to a 500 response,
// embedding the underlying failure text.
func ExtractionError(err error) error {
	return &RequestError{Kind: ErrExtraction, Message: fmt.Sprintf("Failed to process image: %v", err)}
}

// Upload validation errors, surfaced verbatim to callers.
var (
	ErrNoImage         = ValidationError("No image file provided")
	ErrNoFilename      = ValidationError("No file selected")
	ErrInvalidFileType = ValidationError("Invalid file type. Allowed: png, jpg, jpeg, gif, webp")
	ErrNoArtists       = ValidationError("No artists found in the image")
)
