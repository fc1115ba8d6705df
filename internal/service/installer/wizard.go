package installer

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/crmchat/internal/service/ui"
)

var ErrInterrupted = errors.New("crmchat installation interrupted")

// Step is one screen of the wizard. Update returns a nil Step once the step
// is done with the state.
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd)
	View(state *InstallState) string
}

// skipper is implemented by steps that only apply to some setups.
type skipper interface {
	Skip(state *InstallState) bool
}

func getSteps(runtimeDir string) []Step {
	return []Step{
		NewDatabaseStep(),
		NewChannelStep(),
		NewTelegramTokenStep(),
		NewTelegramOwnerStep(),
		NewFinalizationStep(),
		NewSaveEnvStep(runtimeDir),
	}
}

// item is a selectable row in a choice step.
type item struct {
	id    string
	title string
	desc  string
}

type nextMsg struct{}

type model struct {
	steps    []Step
	current  int
	state    *InstallState
	quitting bool
	width    int
	height   int
}

func newModel(steps []Step) model {
	return model{steps: steps, state: NewInstallState()}
}

func (m model) Init() tea.Cmd {
	if len(m.steps) == 0 {
		return tea.Quit
	}
	return m.steps[0].Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	if m.done() {
		return m, tea.Quit
	}

	next, cmd := m.steps[m.current].Update(msg, m.state, m.width, m.height)
	if next != nil {
		m.steps[m.current] = next
		return m, cmd
	}
	return m.advance()
}

// advance moves past the finished step and any step that does not apply.
func (m model) advance() (model, tea.Cmd) {
	m.current++
	for !m.done() {
		s, ok := m.steps[m.current].(skipper)
		if !ok || !s.Skip(m.state) {
			break
		}
		m.current++
	}
	if m.done() {
		return m, tea.Quit
	}
	return m, m.steps[m.current].Init()
}

func (m model) done() bool {
	return m.current >= len(m.steps)
}

func (m model) View() string {
	switch {
	case m.quitting:
		return "Installation cancelled.\n"
	case m.done():
		return "Configuration complete!\n"
	}

	return ui.HeadingStyle.Render("Setting up crmchat 💬") + "\n\n" +
		m.steps[m.current].View(m.state) + "\n" +
		ui.HintStyle.Render("ctrl+c to quit") + "\n"
}

// RunWizard runs the installer TUI and writes <runtimeDir>/.env.
func RunWizard(runtimeDir string) (*InstallState, error) {
	p := tea.NewProgram(newModel(getSteps(runtimeDir)), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return nil, err
	}

	final := m.(model)
	if final.quitting {
		return nil, ErrInterrupted
	}
	if !final.done() {
		return nil, fmt.Errorf("wizard stopped at step %d", final.current+1)
	}
	return final.state, nil
}
