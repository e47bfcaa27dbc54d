package pipeline

import "errors"

var (
	// ErrMalformedPayload indicates the model's answer could not be decoded
	// as a JSON object, even after sanitization.
	ErrMalformedPayload = errors.New("model output is not a JSON object")

	// ErrUnexpectedFieldType indicates a recognized field carried a value
	// that is neither a string nor null.
	ErrUnexpectedFieldType = errors.New("unexpected field type in model output")
)
