package errors

import (
	"errors"
	"fmt"
)

// Common error types for categorization and handling

var (
	// ErrCatalogNotReady indicates the catalog snapshot has not finished loading
	ErrCatalogNotReady = errors.New("catalog not ready")

	// ErrInvalidInput indicates invalid user input
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration indicates missing or invalid configuration (e.g. API credentials)
	ErrConfiguration = errors.New("configuration error")

	// ErrStoreOperation indicates a document store operation failed
	ErrStoreOperation = errors.New("store operation failed")

	// ErrLLMCommunication indicates LLM communication failed
	ErrLLMCommunication = errors.New("llm communication failed")
)

// WrapError wraps an error with context message
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapErrorf wraps an error with formatted context message
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsCatalogNotReady checks if error is a catalog-not-ready error
func IsCatalogNotReady(err error) bool {
	return errors.Is(err, ErrCatalogNotReady)
}

// IsInvalidInput checks if error is an invalid input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConfiguration checks if error is a configuration error
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
