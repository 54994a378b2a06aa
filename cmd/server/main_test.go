package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletter-go/internal/config"
	"newsletter-go/internal/domain"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCommand()

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "migrate")

	flag := root.PersistentFlags().Lookup("config-dir")
	require.NotNil(t, flag)
	assert.Equal(t, "configuration", flag.DefValue)
}

func TestRootCommand_FailsOnUnsupportedEnvironment(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "staging")

	root := newRootCommand()
	root.SetArgs([]string{"migrate", "--config-dir", "../../configuration"})

	err := root.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrUnsupportedEnvironment)
}

func TestRootCommand_FailsOnMissingConfiguration(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "local")

	root := newRootCommand()
	root.SetArgs([]string{"serve", "--config-dir", t.TempDir()})

	err := root.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrReadingConfig)
}

func TestRootCommand_AcceptsServeFlags(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "local")

	root := newRootCommand()
	require.NotNil(t, root.Flags().Lookup("migrate"))

	root.SetArgs([]string{"--migrate", "--config-dir", t.TempDir()})

	err := root.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrReadingConfig)
}

func TestNewEmailClient_RejectsInvalidSender(t *testing.T) {
	client, err := newEmailClient(config.EmailClientSettings{
		BaseURL:             "http://localhost",
		SenderEmail:         "not-an-address",
		TimeoutMilliseconds: 1000,
	})
	require.Error(t, err)
	assert.Nil(t, client)
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	client, err = newEmailClient(config.EmailClientSettings{
		BaseURL:             "http://localhost",
		SenderEmail:         "test@gmail.com",
		TimeoutMilliseconds: 1000,
	})
	require.NoError(t, err)
	assert.NotNil(t, client)
}
