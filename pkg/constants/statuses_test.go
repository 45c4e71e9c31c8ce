// Package constants provides centralized string constants used throughout the application.
package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestStatusConstants tests the behavior of installation status constants.
//
// It verifies:
//   - Status constants have the expected string values
//   - Prevents accidental changes to status constant values
func TestStatusConstants(t *testing.T) {
	tests := []struct {
		name     string
		constant string
		expected string
	}{
		{"StatusDetected", StatusDetected, "Detected"},
		{"StatusEstimating", StatusEstimating, "Estimating"},
		{"StatusCompleting", StatusCompleting, "Completing"},
		{"StatusDone", StatusDone, "Done"},
		{"StatusAbandoned", StatusAbandoned, "Abandoned"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.constant, "constant %s has unexpected value", tt.name)
		})
	}
}

// TestChainConstants tests the behavior of dependency chain kind constants.
//
// It verifies:
//   - Chain kind constants have the expected string values
//   - Prevents accidental changes to the classification labels
func TestChainConstants(t *testing.T) {
	tests := []struct {
		name     string
		constant string
		expected string
	}{
		{"ChainUserRequested", ChainUserRequested, "UserRequested"},
		{"ChainTransitive", ChainTransitive, "Transitive"},
		{"ChainUnknown", ChainUnknown, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.constant, "constant %s has unexpected value", tt.name)
		})
	}
}

// TestPlaceholderConstants tests the behavior of placeholder constants.
//
// It verifies:
//   - GlobalProject and PlaceholderNA are correctly defined
func TestPlaceholderConstants(t *testing.T) {
	assert.Equal(t, "(global)", GlobalProject, "GlobalProject should be '(global)'")
	assert.Equal(t, "#N/A", PlaceholderNA, "PlaceholderNA should be '#N/A'")
}

// TestIconConstants tests the behavior of icon constants.
//
// It verifies:
//   - All icon constants are non-empty strings
//   - Icons are properly defined for use in CLI output
func TestIconConstants(t *testing.T) {
	icons := []struct {
		name     string
		constant string
	}{
		{"IconSuccess", IconSuccess},
		{"IconWarning", IconWarning},
		{"IconBlocked", IconBlocked},
		{"IconPackage", IconPackage},
		{"IconGlobal", IconGlobal},
		{"IconProject", IconProject},
	}

	for _, icon := range icons {
		t.Run(icon.name, func(t *testing.T) {
			assert.NotEmpty(t, icon.constant, "icon %s should not be empty", icon.name)
		})
	}
}

// TestIconsAreDistinct tests the behavior of icon uniqueness.
//
// It verifies:
//   - All icons have distinct values
//   - No two icons share the same visual representation
func TestIconsAreDistinct(t *testing.T) {
	icons := map[string]string{
		"IconSuccess": IconSuccess,
		"IconWarning": IconWarning,
		"IconBlocked": IconBlocked,
		"IconPackage": IconPackage,
		"IconGlobal":  IconGlobal,
		"IconProject": IconProject,
	}

	// Check that all icons are different
	seen := make(map[string]string)
	for name, icon := range icons {
		if existingName, exists := seen[icon]; exists {
			t.Errorf("Icon %s has same value as %s: %s", name, existingName, icon)
		}
		seen[icon] = name
	}
}
