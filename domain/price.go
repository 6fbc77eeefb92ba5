// Package domain defines the core result and error types of the trade tracker
package domain

import "errors"

// ErrNoResult is returned by the zero PriceResult, e.g. a symbol missing
// from a batch map.
var ErrNoResult = errors.New("price fetch failed")

// PriceResult is the outcome of one price lookup in a batch. It is either a
// price or an error, read through Value.
type PriceResult struct {
	price float64
	err   error
	ok    bool
}

// Success wraps a fetched USD price
func Success(price float64) PriceResult {
	return PriceResult{price: price, ok: true}
}

// Failure wraps a failed lookup
func Failure(err error) PriceResult {
	if err == nil {
		err = ErrNoResult
	}

	return PriceResult{err: err}
}

// Value returns the price, or the lookup error
func (r PriceResult) Value() (float64, error) {
	if err := r.Err(); err != nil {
		return 0, err
	}

	return r.price, nil
}

// Err returns the lookup error, nil on success
func (r PriceResult) Err() error {
	if !r.ok && r.err == nil {
		return ErrNoResult
	}

	return r.err
}

// OK reports whether the lookup succeeded
func (r PriceResult) OK() bool {
	return r.ok
}
