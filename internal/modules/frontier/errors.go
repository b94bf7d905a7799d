package frontier

import "errors"

// Validation errors indicate caller misuse and are never retried.
// Degeneracy errors (ErrDegenerateSample, ErrZeroRisk) are retried inside
// the estimator up to its retry budget.
var (
	// ErrInsufficientData is returned when a price series has fewer than
	// two observations and no return can be computed.
	ErrInsufficientData = errors.New("insufficient price history")

	// ErrNonPositivePrice is returned when a price series contains a zero
	// or negative price.
	ErrNonPositivePrice = errors.New("non-positive price")

	// ErrMisalignedSeries is returned when asset series disagree on
	// observation count or date order.
	ErrMisalignedSeries = errors.New("misaligned price series")

	// ErrInvalidWeights is returned when a weight vector has the wrong
	// length, a negative entry, or does not sum to 1 within tolerance.
	ErrInvalidWeights = errors.New("invalid weight vector")

	// ErrZeroRisk is returned when a portfolio's risk is exactly zero and
	// the Sharpe ratio is undefined.
	ErrZeroRisk = errors.New("zero portfolio risk")

	// ErrDegenerateSample is returned when the sampler keeps drawing
	// all-zero weight vectors.
	ErrDegenerateSample = errors.New("degenerate weight sample")

	// ErrInsufficientSamples is returned when the estimator exhausts its
	// retry budget before accumulating the requested number of samples.
	ErrInsufficientSamples = errors.New("insufficient valid samples")

	// ErrInvalidConfig is returned for unusable analysis parameters such
	// as a zero sample count or annualization factor.
	ErrInvalidConfig = errors.New("invalid analysis configuration")
)
