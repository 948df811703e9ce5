package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marknote-dev/marknote/internal/core/domain"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "marknote [path]", rootCmd.Use)
}

func TestRootCmd_AcceptsAtMostOneArg(t *testing.T) {
	err := rootCmd.Args(rootCmd, []string{"a.md", "b.md"})

	assert.Error(t, err)
}

func TestRootCmd_VerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")

	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestRootCmd_HelpOutput(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"--help"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "Markdown note-taking")
	assert.Contains(t, output, "Controls:")
}

func TestSetTUIConfig(t *testing.T) {
	config := &TUIConfig{
		SettingsService: &MockCLISettingsService{Settings: domain.DefaultAppSettings()},
	}

	SetTUIConfig(config)

	assert.Equal(t, config, tuiConfig)

	// Cleanup
	tuiConfig = nil
}

func TestLastOpenNote(t *testing.T) {
	t.Run("returns the stored last note", func(t *testing.T) {
		svc := &MockCLISettingsService{Settings: domain.DefaultAppSettings()}
		svc.Settings.Notes.LastNote = "/notes/Plan.md"
		SetTUIConfig(&TUIConfig{SettingsService: svc})
		defer SetTUIConfig(nil)

		assert.Equal(t, "/notes/Plan.md", lastOpenNote())
	})

	t.Run("empty without configuration", func(t *testing.T) {
		SetTUIConfig(nil)

		assert.Empty(t, lastOpenNote())
	})
}
