package imagegen

import "errors"

var (
	// ErrMissingAPIKey is returned before any network attempt when no
	// credential is configured.
	ErrMissingAPIKey = errors.New("API_KEY environment variable is not set")
	// ErrTransport wraps network, status and SDK failures.
	ErrTransport = errors.New("image service request failed")
	// ErrNoImage is returned when the model answered without an image part,
	// including policy refusals.
	ErrNoImage = errors.New("no image was generated")
)

// ErrorKind classifies a failure for display.
type ErrorKind string

const (
	KindNone          ErrorKind = ""
	KindInvalidInput  ErrorKind = "invalid_input"
	KindConfiguration ErrorKind = "configuration"
	KindTransport     ErrorKind = "transport"
	KindEmptyResult   ErrorKind = "empty_result"
)

// Classify maps an error returned by a Transformer to its kind. Unknown
// errors are reported as transport failures.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrMissingAPIKey):
		return KindConfiguration
	case errors.Is(err, ErrNoImage):
		return KindEmptyResult
	default:
		return KindTransport
	}
}

const generationFailedPrefix = "Failed to generate image. "

// UserMessage returns the short English description shown for a kind.
func UserMessage(kind ErrorKind) string {
	switch kind {
	case KindInvalidInput:
		return "Please upload a valid image file."
	case KindConfiguration:
		return generationFailedPrefix + "API_KEY environment variable is not set."
	case KindEmptyResult:
		return generationFailedPrefix + "No image was generated. The model may have refused the request."
	case KindTransport:
		return generationFailedPrefix + "The image service could not be reached."
	default:
		return ""
	}
}
