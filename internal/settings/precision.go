// Package settings holds process-wide operator settings of the order engine.
package settings

import (
	"sync/atomic"

	apperrors "roboadvisor/internal/errors"
)

// MaxDecimals bounds the precision to what a float64 can faithfully carry.
const MaxDecimals = 15

// DefaultDecimals is the precision used when none is configured.
const DefaultDecimals = 3

// Precision is the number of decimal places used when rounding amounts and
// share counts. Reads never block; each rounding observes the value current
// at that instant.
type Precision struct {
	decimals atomic.Int32
}

// NewPrecision returns a Precision initialised to decimals.
func NewPrecision(decimals int) (*Precision, error) {
	p := &Precision{}
	if err := p.Set(decimals); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns the current number of decimals.
func (p *Precision) Get() int {
	return int(p.decimals.Load())
}

// Set replaces the number of decimals. Values outside [0, MaxDecimals] are rejected.
func (p *Precision) Set(decimals int) error {
	if decimals < 0 || decimals > MaxDecimals {
		return apperrors.ErrInvalidPrecision
	}
	p.decimals.Store(int32(decimals))
	return nil
}
