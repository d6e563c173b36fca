// Package model holds the shared estimator plumbing used by the
// preprocessing and boosting packages.
package model

// BaseEstimator tracks the fitted state shared by every estimator.
// It is embedded, not used directly.
type BaseEstimator struct {
	fitted bool
}

// IsFitted reports whether Fit has completed successfully.
func (e *BaseEstimator) IsFitted() bool {
	return e.fitted
}

// SetFitted marks the estimator as trained.
func (e *BaseEstimator) SetFitted() {
	e.fitted = true
}

// Reset returns the estimator to the untrained state.
func (e *BaseEstimator) Reset() {
	e.fitted = false
}
