package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

// ValidationError reports a malformed request field (wrong type, unknown key, missing value)
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Kingdom store errors

type KingdomNotFoundError struct {
	*DomainError
	KingdomID KingdomID
}

func NewKingdomNotFoundError(id KingdomID) *KingdomNotFoundError {
	return &KingdomNotFoundError{
		DomainError: &DomainError{Message: fmt.Sprintf("kingdom not found: %s", id)},
		KingdomID:   id,
	}
}

type MalformedKingdomDataError struct {
	*DomainError
	Resource string
}

func NewMalformedKingdomDataError(resource string, cause error) *MalformedKingdomDataError {
	return &MalformedKingdomDataError{
		DomainError: &DomainError{Message: fmt.Sprintf("malformed %s data from kingdom store: %v", resource, cause)},
		Resource:    resource,
	}
}
