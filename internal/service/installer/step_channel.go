package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/crmchat/internal/service/ui"
)

const (
	channelCLI      = "cli"
	channelTelegram = "telegram"
	channelHTTP     = "http"
)

// ChannelStep lets the user switch transports on and off
type ChannelStep struct {
	choices []item
	cursor  int
	err     string
}

func NewChannelStep() Step {
	return &ChannelStep{
		choices: []item{
			{id: channelCLI, title: "CLI prompt", desc: "interactive prompt in this terminal"},
			{id: channelTelegram, title: "Telegram bot", desc: "private bot answering only you"},
			{id: channelHTTP, title: "HTTP API", desc: "POST /api/chat for other apps"},
		},
	}
}

func (s *ChannelStep) Init() tea.Cmd {
	return nil
}

func (s *ChannelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case " ", "space", "x":
			id := s.choices[s.cursor].id
			state.Channels[id] = !state.Channels[id]
			s.err = ""
		case "enter":
			if !anySelected(state.Channels) {
				s.err = "select at least one channel"
				return s, nil
			}
			return nil, nil
		}
	}
	return s, nil
}

func (s *ChannelStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("Select how you want to chat (space to toggle, enter to confirm):\n\n")
	for i, choice := range s.choices {
		mark := "[ ]"
		if state.Channels[choice.id] {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s  %s", mark, choice.title, choice.desc)
		if s.cursor == i {
			b.WriteString(ui.SelectedStyle.Render("❯ "+line) + "\n")
		} else {
			b.WriteString(ui.ItemStyle.Render("  "+line) + "\n")
		}
	}
	if s.err != "" {
		b.WriteString("\n" + ui.ErrorStyle.Render(s.err) + "\n")
	}
	return b.String()
}

func anySelected(channels map[string]bool) bool {
	for _, on := range channels {
		if on {
			return true
		}
	}
	return false
}
