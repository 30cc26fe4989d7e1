package contracts

import "errors"

// Computation failures. Callers match with errors.Is; every returned error wraps one of these.
var (
	ErrInvalidReserve  = errors.New("invalid reserve")
	ErrInvalidVolume   = errors.New("invalid volume")
	ErrEmptyInput      = errors.New("empty input")
	ErrZeroTotalVolume = errors.New("zero total volume")
	ErrDegenerateTrim  = errors.New("degenerate trim")
	ErrUndefinedMean   = errors.New("undefined geometric or harmonic mean")
)

// IsDomainError reports whether err comes from a computation over bad input
// (as opposed to I/O or configuration).
func IsDomainError(err error) bool {
	return errors.Is(err, ErrInvalidReserve) ||
		errors.Is(err, ErrInvalidVolume) ||
		errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrZeroTotalVolume) ||
		errors.Is(err, ErrDegenerateTrim) ||
		errors.Is(err, ErrUndefinedMean)
}
