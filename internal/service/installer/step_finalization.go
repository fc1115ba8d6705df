package installer

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/crmchat/internal/config"
)

const defaultHTTPAddr = ":8080"

// FinalizationStep computes derived values
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	finalize(state)
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}

func finalize(state *InstallState) {
	env := &state.Env
	if env.DBDriver == "" {
		env.DBDriver = config.DriverSQLite
	}

	env.EnableCLI = strconv.FormatBool(state.Channels[channelCLI])
	env.EnableTelegram = strconv.FormatBool(state.Channels[channelTelegram])
	env.EnableHTTP = strconv.FormatBool(state.Channels[channelHTTP])

	if state.Channels[channelHTTP] && env.HTTPAddr == "" {
		env.HTTPAddr = defaultHTTPAddr
	}
	if !state.Channels[channelTelegram] {
		env.TelegramToken = ""
		env.TelegramOwner = 0
	}
}
