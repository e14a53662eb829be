package llm

import "errors"

// Common provider errors
var (
	// ErrGenerationFailed is returned when the provider fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate text")

	// ErrInvalidResponse is returned when a provider response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrModelNotFound is returned when the requested model is not available
	ErrModelNotFound = errors.New("model not found")

	// ErrInvalidConfig is returned when the provider configuration is invalid
	ErrInvalidConfig = errors.New("invalid provider configuration")

	// ErrEmptyPrompt is returned when a request carries no prompt or messages
	ErrEmptyPrompt = errors.New("prompt is empty")
)
