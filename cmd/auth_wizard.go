package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var errAuthSetupCancelled = errors.New("token setup cancelled")

type authSetupStep int

const (
	authSetupIntro authSetupStep = iota
	authSetupTokenInput
)

type authSetupWizardModel struct {
	step      authSetupStep
	token     string
	input     textinput.Model
	message   string
	err       error
	cancelled bool
}

func newAuthSetupWizardModel() authSetupWizardModel {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "ntn_..."
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'
	input.CharLimit = 512

	return authSetupWizardModel{
		step:  authSetupIntro,
		input: input,
	}
}

func runAuthSetupWizard() (string, error) {
	model := newAuthSetupWizardModel()
	program := tea.NewProgram(model)

	finalModel, err := program.Run()
	if err != nil {
		return "", err
	}

	wizard, ok := finalModel.(authSetupWizardModel)
	if !ok {
		return "", fmt.Errorf("unexpected wizard model type %T", finalModel)
	}
	if wizard.cancelled {
		return "", errAuthSetupCancelled
	}
	if strings.TrimSpace(wizard.token) == "" {
		return "", fmt.Errorf("Notion token is required")
	}

	return wizard.token, nil
}

func (m authSetupWizardModel) Init() tea.Cmd {
	return nil
}

func (m authSetupWizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	// Cancels from any step.
	if key.String() == "ctrl+c" {
		m.cancelled = true
		return m, tea.Quit
	}

	if m.step == authSetupIntro {
		return m.updateIntro(key)
	}
	return m.updateTokenInput(key)
}

func (m authSetupWizardModel) updateIntro(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "o":
		m.err = openBrowserURL(integrationsURL)
		m.message = ""
		if m.err == nil {
			m.message = "Opened integration docs in your browser."
		}
	case "enter":
		m.step = authSetupTokenInput
		m.err = nil
		m.message = ""
		m.input.Focus()
	}
	return m, nil
}

// updateTokenInput only intercepts esc and enter; everything else, letters
// like q included, belongs to the token being typed.
func (m authSetupWizardModel) updateTokenInput(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.step = authSetupIntro
		m.err = nil
		m.message = ""
		m.input.Blur()
		return m, nil
	case "enter":
		token := strings.TrimSpace(m.input.Value())
		if token == "" {
			m.err = fmt.Errorf("token cannot be empty")
			return m, nil
		}
		m.token = token
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m authSetupWizardModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	infoStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Notion Integration Setup"))
	b.WriteString("\n\n")

	switch m.step {
	case authSetupIntro:
		b.WriteString("notecheck needs an Internal integration token to read your workspace.\n")
		b.WriteString("Share the pages and data sources you want to check with the integration.\n")
		b.WriteString("Open: " + integrationsURL + "\n\n")
		b.WriteString("Enter: continue    o: open docs    q/esc: cancel\n")
	case authSetupTokenInput:
		b.WriteString("Paste your Notion integration token:\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString("Expected: ntn_... (legacy secret_... also works)\n")
		b.WriteString("Enter: save    esc: back    ctrl+c: cancel\n")
	}

	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(infoStyle.Render(m.message))
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errStyle.Render("Error: " + m.err.Error()))
	}

	return b.String()
}
