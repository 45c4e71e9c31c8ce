// Package constants provides centralized string constants used throughout the application.
// This eliminates magic strings and provides a single source of truth for status values.
package constants

// Installation status constants represent the state of a tracked installation.
const (
	// StatusDetected indicates a new entry appeared under a dependency directory.
	StatusDetected = "Detected"

	// StatusEstimating indicates progress is being estimated from elapsed time.
	StatusEstimating = "Estimating"

	// StatusCompleting indicates the completion poll is waiting for the
	// installed package's manifest to appear on disk.
	StatusCompleting = "Completing"

	// StatusDone indicates the installation completed and the record is retired.
	StatusDone = "Done"

	// StatusAbandoned indicates the completion poll gave up after the
	// configured timeout without observing the package manifest.
	StatusAbandoned = "Abandoned"
)

// Dependency chain kind constants classify why a package is installing.
const (
	// ChainUserRequested indicates the package is declared in the project manifest.
	ChainUserRequested = "UserRequested"

	// ChainTransitive indicates the package is installed by another package.
	ChainTransitive = "Transitive"

	// ChainUnknown indicates the installation source could not be determined.
	ChainUnknown = "Unknown"
)

// GlobalProject is the reserved pseudo-project name used for packages
// installing into the package manager's global store.
const GlobalProject = "(global)"

// Placeholder values for display when data is not available.
const (
	// PlaceholderNA is used when a value is not available.
	PlaceholderNA = "#N/A"
)

// Icon constants for status display.
// These provide visual indicators for package states in CLI output.
const (
	// IconSuccess indicates a successful or positive state (green circle).
	IconSuccess = "🟢"

	// IconWarning indicates a warning or caution state (orange circle).
	IconWarning = "🟠"

	// IconBlocked indicates a blocked or unsupported state.
	IconBlocked = "🚫"

	// IconPackage marks a package installation line.
	IconPackage = "📦"

	// IconGlobal marks an installation into the global store.
	IconGlobal = "🌍"

	// IconProject marks a monitored project line.
	IconProject = "📁"
)
