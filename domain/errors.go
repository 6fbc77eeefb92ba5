package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a failed coin lookup
type ErrorKind int

const (
	KindUnexpected ErrorKind = iota
	KindNotFound
	KindAmbiguous
	KindServiceUnavailable
	KindDataUnavailable
)

// Sentinels matched by errors.Is against any LookupError of the same kind
var (
	ErrUnexpected         = errors.New("unexpected error")
	ErrNotFound           = errors.New("coin not found")
	ErrAmbiguous          = errors.New("ambiguous coin symbol")
	ErrServiceUnavailable = errors.New("price service unavailable")
	ErrDataUnavailable    = errors.New("price data not available")
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAmbiguous:
		return "ambiguous"
	case KindServiceUnavailable:
		return "service_unavailable"
	case KindDataUnavailable:
		return "data_unavailable"
	default:
		return "unexpected"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindAmbiguous:
		return ErrAmbiguous
	case KindServiceUnavailable:
		return ErrServiceUnavailable
	case KindDataUnavailable:
		return ErrDataUnavailable
	default:
		return ErrUnexpected
	}
}

// LookupError is the caller-facing failure of a symbol resolution or price
// lookup. Message is safe to show to end users; Err keeps the cause for logs.
type LookupError struct {
	Kind       ErrorKind
	Symbol     string
	Message    string
	Suggestion string // "Name (SYMBOL)" for KindAmbiguous
	Err        error
}

func (e *LookupError) Error() string {
	return e.Message
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

func (e *LookupError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// NewNotFound reports a search that returned no coins at all
func NewNotFound(symbol string) *LookupError {
	return &LookupError{
		Kind:    KindNotFound,
		Symbol:  symbol,
		Message: fmt.Sprintf("Coin '%s' not found. Please check the symbol and try again.", symbol),
	}
}

// NewSuggestion reports a search without an exact match, pointing at the
// first candidate returned upstream.
func NewSuggestion(symbol, name, candidate string) *LookupError {
	suggestion := fmt.Sprintf("%s (%s)", name, strings.ToUpper(candidate))

	return &LookupError{
		Kind:       KindAmbiguous,
		Symbol:     symbol,
		Suggestion: suggestion,
		Message:    fmt.Sprintf("Did you mean %s? Please confirm and try again.", suggestion),
	}
}

// NewServiceUnavailable hides a transport failure behind a generic message
func NewServiceUnavailable(symbol string, cause error) *LookupError {
	return &LookupError{
		Kind:    KindServiceUnavailable,
		Symbol:  symbol,
		Message: "Error connecting to price service. Please try again later.",
		Err:     cause,
	}
}

// NewDataUnavailable reports a well-formed response missing the price
func NewDataUnavailable(symbol string) *LookupError {
	return &LookupError{
		Kind:    KindDataUnavailable,
		Symbol:  symbol,
		Message: "Price data not available for this coin.",
	}
}

// NewUnexpected passes the cause's text through to the caller
func NewUnexpected(symbol string, cause error) *LookupError {
	return &LookupError{
		Kind:    KindUnexpected,
		Symbol:  symbol,
		Message: fmt.Sprintf("Unexpected error: %v", cause),
		Err:     cause,
	}
}

// KindOf returns the kind of a LookupError found in err's chain, or
// KindUnexpected for any other error.
func KindOf(err error) ErrorKind {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Kind
	}

	return KindUnexpected
}
