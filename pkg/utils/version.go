package utils

import (
	"strings"

	"golang.org/x/mod/semver"
)

// CanonicalSemver converts a version string to canonical semver format.
//
// It performs the following operations:
//   - Cleans and validates the input
//   - Adds "v" prefix if missing (npm versions carry no prefix)
//   - Pads missing minor/patch with zeros until valid semver is found
//   - Returns canonical form using semver.Canonical
//
// Parameters:
//   - version: The version string to canonicalize (e.g., "1.2", "v1.2.3")
//
// Returns:
//   - string: Canonical semver string (e.g., "v1.2.0"); empty string if not valid semver
func CanonicalSemver(version string) string {
	cleaned := strings.TrimSpace(version)
	if cleaned == "" || cleaned == "#N/A" {
		return ""
	}

	if !strings.HasPrefix(cleaned, "v") {
		cleaned = "v" + cleaned
	}

	trimmed := strings.TrimPrefix(cleaned, "v")
	parts := strings.Split(trimmed, ".")
	for len(parts) > 0 && len(parts) < 3 {
		candidate := "v" + strings.Join(parts, ".")
		if semver.IsValid(candidate) {
			return semver.Canonical(candidate)
		}
		parts = append(parts, "0")
	}

	if semver.IsValid(cleaned) {
		return semver.Canonical(cleaned)
	}

	return ""
}

// CompareVersions compares two version strings in semver order.
//
// Versions that cannot be canonicalized sort before valid versions, and
// equal invalid versions compare as strings so sorting stays deterministic.
//
// Parameters:
//   - a: First version string
//   - b: Second version string
//
// Returns:
//   - int: -1 if a < b, 0 if equal, +1 if a > b
func CompareVersions(a, b string) int {
	ca := CanonicalSemver(a)
	cb := CanonicalSemver(b)

	switch {
	case ca == "" && cb == "":
		return strings.Compare(a, b)
	case ca == "":
		return -1
	case cb == "":
		return 1
	}

	return semver.Compare(ca, cb)
}
