package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vmvarela/ghoten-ui/internal/auth"
)

type LoginMode int

const (
	LoginModeMenu LoginMode = iota
	LoginModeDevice
	LoginModePAT
)

type LoginViewModel struct {
	width   int
	height  int
	Mode    LoginMode
	session *auth.Session
	polling bool
	status  string
	isError bool

	patInput textinput.Model
	spin     spinner.Model
}

func NewLoginView() *LoginViewModel {
	patInput := textinput.New()
	patInput.Placeholder = "Personal access token"
	patInput.CharLimit = 256
	patInput.EchoMode = textinput.EchoPassword

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED"))

	return &LoginViewModel{
		Mode:     LoginModeMenu,
		patInput: patInput,
		spin:     spin,
	}
}

func (m *LoginViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *LoginViewModel) SetSession(session *auth.Session) {
	m.session = session
	m.Mode = LoginModeDevice
	m.polling = true
	m.status = ""
	m.isError = false
}

func (m *LoginViewModel) SetStatus(status string, isError bool) {
	m.status = status
	m.isError = isError
	if isError {
		m.polling = false
	}
}

func (m *LoginViewModel) StopPolling() {
	m.polling = false
}

func (m *LoginViewModel) IsPolling() bool {
	return m.polling
}

func (m *LoginViewModel) EnterPATMode() {
	m.Mode = LoginModePAT
	m.patInput.SetValue("")
	m.patInput.Focus()
}

func (m *LoginViewModel) ExitPATMode() {
	m.Mode = LoginModeMenu
	m.patInput.Blur()
	m.patInput.SetValue("")
}

func (m *LoginViewModel) PATValue() string {
	return strings.TrimSpace(m.patInput.Value())
}

func (m *LoginViewModel) SpinnerTick() tea.Cmd {
	return m.spin.Tick
}

func (m *LoginViewModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case spinner.TickMsg:
		m.spin, cmd = m.spin.Update(msg)
		return cmd
	case tea.KeyMsg:
		if m.Mode == LoginModePAT {
			m.patInput, cmd = m.patInput.Update(msg)
			return cmd
		}
	}

	return nil
}

func (m *LoginViewModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	code := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F9FAFB")).
		Background(lipgloss.Color("#7C3AED")).
		Bold(true).
		Padding(0, 2)

	b.WriteString(title.Render("Sign in to GitHub"))
	b.WriteString("\n\n")

	switch m.Mode {
	case LoginModeMenu:
		b.WriteString("  d  start device authorization\n")
		b.WriteString("  t  enter a personal access token\n")

	case LoginModeDevice:
		if m.session != nil {
			b.WriteString(muted.Render("Open ") + m.session.VerificationURI + muted.Render(" and enter:"))
			b.WriteString("\n\n  ")
			b.WriteString(code.Render(m.session.UserCode))
			b.WriteString("\n\n")
		}
		if m.polling {
			b.WriteString(m.spin.View())
			b.WriteString(muted.Render(" waiting for authorization (esc to cancel)"))
			b.WriteString("\n")
		}

	case LoginModePAT:
		b.WriteString(muted.Render("The token is verified against your GitHub identity before it is saved."))
		b.WriteString("\n\n  ")
		b.WriteString(m.patInput.View())
		b.WriteString("\n\n")
		b.WriteString(muted.Render("  enter to validate, esc to go back"))
		b.WriteString("\n")
	}

	if m.status != "" {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
		if m.isError {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
		}
		b.WriteString("\n")
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m *LoginViewModel) SessionExpiry() string {
	if m.session == nil {
		return ""
	}
	return fmt.Sprintf("expires in %s", m.session.ExpiresIn)
}
