package repository

import "fmt"

const (
	DefaultLimit = 20
	MaxLimit     = 1000
)

// ListOptions defines pagination for listing entities
type ListOptions struct {
	Offset int `json:"offset"` // Number of records to skip
	Limit  int `json:"limit"`  // Maximum number of records to return
}

// Validate validates the ListOptions and sets defaults
func (o *ListOptions) Validate() error {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Limit > MaxLimit {
		return fmt.Errorf("%w: limit exceeds maximum allowed value of %d", ErrInvalidInput, MaxLimit)
	}
	if o.Offset < 0 {
		return fmt.Errorf("%w: offset must be non-negative", ErrInvalidInput)
	}
	return nil
}
