package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchFlags(t *testing.T) {
	assert.NotNil(t, watchCmd.Flags().Lookup("all"))
	assert.NotNil(t, watchCmd.Flags().Lookup("quick"))
	assert.Equal(t, "a", watchCmd.Flags().Lookup("all").Shorthand)
	assert.Equal(t, "q", watchCmd.Flags().Lookup("quick").Shorthand)
}

func TestWatchMissingWorkingDirectory(t *testing.T) {
	oldAll := allFlag
	oldQuick := quickFlag
	defer func() {
		allFlag = oldAll
		quickFlag = oldQuick
	}()

	dir := filepath.Join(t.TempDir(), "nope")

	_, err := runCommand(t, "watch", "-d", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}
