package domain

import "fmt"

// LoadError is the terminal failure of a component load after all attempts were used.
// It unwraps to both ErrLoadFailed and the error of the final attempt.
type LoadError struct {
	Name     string
	Attempts int
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s %q after %d attempt(s): %v", ErrLoadFailed.Error(), e.Name, e.Attempts, e.Err)
}

// Unwrap exposes the sentinel and the underlying cause to errors.Is and errors.As.
func (e *LoadError) Unwrap() []error {
	return []error{ErrLoadFailed, e.Err}
}
