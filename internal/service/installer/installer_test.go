package installer

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/crmchat/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestChannelStep(t *testing.T) {
	state := NewInstallState()
	var step Step = NewChannelStep()

	// nothing selected yet
	next, _ := step.Update(key("enter"), state, 80, 24)
	require.NotNil(t, next)
	assert.Contains(t, next.View(state), "select at least one channel")

	step.Update(key("x"), state, 80, 24)
	step.Update(key("down"), state, 80, 24)
	step.Update(key("down"), state, 80, 24)
	step.Update(key("x"), state, 80, 24)

	assert.True(t, state.Channels[channelCLI])
	assert.False(t, state.Channels[channelTelegram])
	assert.True(t, state.Channels[channelHTTP])

	next, _ = step.Update(key("enter"), state, 80, 24)
	assert.Nil(t, next)
}

func TestDatabaseStep(t *testing.T) {
	t.Run("sqlite_finishes_immediately", func(t *testing.T) {
		state := NewInstallState()
		next, _ := NewDatabaseStep().Update(key("enter"), state, 80, 24)
		assert.Nil(t, next)
		assert.Equal(t, config.DriverSQLite, state.Env.DBDriver)
	})

	t.Run("postgres_asks_for_url", func(t *testing.T) {
		state := NewInstallState()
		step := NewDatabaseStep()
		step.Update(key("down"), state, 80, 24)

		next, _ := step.Update(key("enter"), state, 80, 24)
		require.NotNil(t, next)
		assert.Equal(t, config.DriverPostgres, state.Env.DBDriver)

		next, _ = step.Update(key("enter"), state, 80, 24)
		require.NotNil(t, next)
		assert.Contains(t, step.View(state), "connection URL is required")

		step.Update(key("postgres://crm@db/crm"), state, 80, 24)
		next, _ = step.Update(key("enter"), state, 80, 24)
		assert.Nil(t, next)
		assert.Equal(t, "postgres://crm@db/crm", state.Env.DatabaseURL)
	})
}

func TestTelegramSteps_Skip(t *testing.T) {
	state := NewInstallState()
	state.Channels[channelCLI] = true

	assert.True(t, NewTelegramTokenStep().(skipper).Skip(state))
	assert.True(t, NewTelegramOwnerStep().(skipper).Skip(state))

	state.Channels[channelTelegram] = true
	assert.False(t, NewTelegramTokenStep().(skipper).Skip(state))
}

func TestModel_SkipsTelegramSteps(t *testing.T) {
	dir := t.TempDir()
	m := newModel(getSteps(dir))

	// sqlite, then only the CLI channel
	next, _ := m.Update(key("enter"))
	m = next.(model)
	next, _ = m.Update(key("x"))
	m = next.(model)
	next, _ = m.Update(key("enter"))
	m = next.(model)

	_, isFinal := m.steps[m.current].(*FinalizationStep)
	assert.True(t, isFinal, "telegram steps should be passed over")

	next, _ = m.Update(nextMsg{})
	m = next.(model)
	next, _ = m.Update(nextMsg{})
	m = next.(model)

	assert.True(t, m.done())
	assert.FileExists(t, filepath.Join(dir, ".env"))
	assert.Equal(t, "true", m.state.Env.EnableCLI)
}

func TestModel_CtrlC(t *testing.T) {
	m := newModel(getSteps(t.TempDir()))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, next.(model).quitting)
	assert.Equal(t, "Installation cancelled.\n", next.View())
}

func TestTelegramOwnerStep_Validates(t *testing.T) {
	state := NewInstallState()
	state.Channels[channelTelegram] = true
	step := NewTelegramOwnerStep()

	step.Update(key("abc"), state, 80, 24)
	next, _ := step.Update(key("enter"), state, 80, 24)
	require.NotNil(t, next)
	assert.Zero(t, state.Env.TelegramOwner)

	step = NewTelegramOwnerStep()
	step.Update(key("4242"), state, 80, 24)
	next, _ = step.Update(key("enter"), state, 80, 24)
	assert.Nil(t, next)
	assert.Equal(t, int64(4242), state.Env.TelegramOwner)
}

func TestFinalizeAndSave(t *testing.T) {
	state := NewInstallState()
	state.Channels[channelHTTP] = true
	state.Env.TelegramToken = "stale"

	finalize(state)

	assert.Equal(t, config.DriverSQLite, state.Env.DBDriver)
	assert.Equal(t, "false", state.Env.EnableCLI)
	assert.Equal(t, "true", state.Env.EnableHTTP)
	assert.Equal(t, defaultHTTPAddr, state.Env.HTTPAddr)
	assert.Empty(t, state.Env.TelegramToken)

	dir := t.TempDir()
	require.NoError(t, saveEnv(dir, &state.Env))

	data, err := os.ReadFile(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, "CRMCHAT_DB_DRIVER=\"sqlite3\"\nCRMCHAT_ENABLE_CLI=\"false\"\nCRMCHAT_ENABLE_HTTP=\"true\"\nCRMCHAT_ENABLE_TELEGRAM=\"false\"\nCRMCHAT_HTTP_ADDR=\":8080\"\n", string(data))

	assert.Error(t, saveEnv(dir, &state.Env), "existing .env must not be overwritten")
}
