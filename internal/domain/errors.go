package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNetwork         = errors.New("connection error")
	ErrParse           = errors.New("malformed rates response")
	ErrInvalidAmount   = errors.New("please enter a valid number")
	ErrUnknownCurrency = errors.New("selected currency not available")
	ErrRatesNotLoaded  = errors.New("exchange rates not loaded yet, please try again later")
)

// APIError is returned when the rates endpoint answers with a non-OK status.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %d", e.StatusCode)
}
