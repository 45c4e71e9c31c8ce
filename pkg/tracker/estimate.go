package tracker

import (
	"strings"
	"time"
)

// Default estimate durations used when the configuration leaves them unset.
const (
	defaultLargeEstimate   = 8 * time.Second
	defaultMediumEstimate  = 4 * time.Second
	defaultPackageEstimate = 2 * time.Second
)

// Default name fragments marking packages known to install slowly.
var (
	defaultLargeFragments = []string{
		"webpack", "typescript", "electron", "angular",
		"react-scripts", "next", "jest", "puppeteer",
	}
	defaultMediumFragments = []string{
		"react", "vue", "express", "babel", "eslint", "rollup", "vite",
	}
)

// Estimator predicts installation duration from the package name.
//
// The prediction is a coarse three-bucket heuristic: names containing a
// "large" fragment get the large estimate, names containing a "medium"
// fragment get the medium estimate, everything else gets the default.
// Large fragments are checked first so "react-scripts" lands in the large
// bucket even though "react" is a medium fragment.
type Estimator struct {
	large  time.Duration
	medium time.Duration
	def    time.Duration

	largeFragments  []string
	mediumFragments []string
}

// EstimateOptions configures an Estimator. Zero fields fall back to the
// built-in defaults.
type EstimateOptions struct {
	Large           time.Duration
	Medium          time.Duration
	Default         time.Duration
	LargeFragments  []string
	MediumFragments []string
}

// NewEstimator creates an estimator, filling unset options with defaults.
//
// Parameters:
//   - opts: Estimate configuration; zero values use the built-in defaults
//
// Returns:
//   - *Estimator: A ready estimator
func NewEstimator(opts EstimateOptions) *Estimator {
	e := &Estimator{
		large:           opts.Large,
		medium:          opts.Medium,
		def:             opts.Default,
		largeFragments:  opts.LargeFragments,
		mediumFragments: opts.MediumFragments,
	}
	if e.large <= 0 {
		e.large = defaultLargeEstimate
	}
	if e.medium <= 0 {
		e.medium = defaultMediumEstimate
	}
	if e.def <= 0 {
		e.def = defaultPackageEstimate
	}
	if len(e.largeFragments) == 0 {
		e.largeFragments = defaultLargeFragments
	}
	if len(e.mediumFragments) == 0 {
		e.mediumFragments = defaultMediumFragments
	}
	return e
}

// Estimate predicts how long a package installation will take.
//
// Parameters:
//   - packageName: The installing package (matched case-insensitively)
//
// Returns:
//   - time.Duration: The predicted duration
func (e *Estimator) Estimate(packageName string) time.Duration {
	name := strings.ToLower(packageName)
	if containsAny(name, e.largeFragments) {
		return e.large
	}
	if containsAny(name, e.mediumFragments) {
		return e.medium
	}
	return e.def
}

// containsAny reports whether the name contains any of the fragments.
func containsAny(name string, fragments []string) bool {
	for _, fragment := range fragments {
		if strings.Contains(name, fragment) {
			return true
		}
	}
	return false
}
