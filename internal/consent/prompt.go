package consent

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agentforge/agentforge/internal/tui/ui"
)

// option pairs a menu label with the Response it resolves to once
// selected.
type option struct {
	label    string
	response Response
}

// promptModel is a small bubbletea program presenting one consent
// Request and a vertical menu of choices. It is grounded on the shape
// of a yes/no confirmation dialog generalised into a multi-choice menu.
type promptModel struct {
	req      Request
	options  []option
	selected int
	styles   ui.Styles
	keys     ui.KeyMap
	result   Response
	done     bool
}

func newPromptModel(req Request) promptModel {
	options := []option{
		{label: "Approve once", response: Response{Choice: ChoiceApproveOnce}},
		{label: "Approve for this session", response: Response{Choice: ChoiceApproveSession}},
		{label: "Approve for this project", response: Response{Choice: ChoiceApproveProject}},
	}
	if req.Alternative != nil {
		options = append(options, option{
			label:    fmt.Sprintf("Use built-in alternative (%s)", req.Alternative.Module),
			response: Response{Choice: ChoiceUseAlternative, Alternative: req.Alternative.Module},
		})
	}
	options = append(options, option{label: "Reject", response: Response{Choice: ChoiceReject}})

	return promptModel{
		req:     req,
		options: options,
		styles:  ui.DefaultStyles(),
		keys:    ui.DefaultKeyMap(),
	}
}

func (m promptModel) Init() tea.Cmd {
	return nil
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case m.keys.IsUp(keyMsg):
		if m.selected > 0 {
			m.selected--
		}
	case m.keys.IsDown(keyMsg):
		if m.selected < len(m.options)-1 {
			m.selected++
		}
	case key.Matches(keyMsg, m.keys.Select):
		m.result = m.options[m.selected].response
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Cancel), key.Matches(keyMsg, m.keys.Quit):
		m.result = Response{Choice: ChoiceReject}
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m promptModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(fmt.Sprintf("Install %q?", m.req.Package)))
	b.WriteString("\n")

	if len(m.req.FileContext) > 0 {
		b.WriteString(m.styles.Subtitle.Render("Imported by:"))
		b.WriteString("\n")
		for _, path := range m.req.FileContext {
			b.WriteString(m.styles.Paragraph.Render("  " + path))
			b.WriteString("\n")
		}
	}

	if m.req.Alternative != nil {
		b.WriteString(m.styles.Info.Render(fmt.Sprintf("Built-in alternative: %s — %s", m.req.Alternative.Module, m.req.Alternative.Description)))
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("  " + m.req.Alternative.Example))
		b.WriteString("\n")
	}

	if len(m.req.InstallArgv) > 0 {
		b.WriteString(m.styles.Subtitle.Render("Will run: " + strings.Join(m.req.InstallArgv, " ")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for i, opt := range m.options {
		style := m.styles.ListItem
		prefix := "  "
		if i == m.selected {
			style = m.styles.ListItemActive
			prefix = "▸ "
		}
		b.WriteString(style.Render(prefix + opt.label))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("↑/↓ choose · enter confirm · esc reject"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// InteractivePrompter runs promptModel as a full bubbletea program per
// request, blocking until the user picks an option.
type InteractivePrompter struct{}

// NewInteractivePrompter creates an InteractivePrompter.
func NewInteractivePrompter() *InteractivePrompter {
	return &InteractivePrompter{}
}

// Prompt implements Prompter.
func (p *InteractivePrompter) Prompt(ctx context.Context, req Request) (Response, error) {
	program := tea.NewProgram(newPromptModel(req))
	finalModel, err := program.Run()
	if err != nil {
		return Response{}, fmt.Errorf("consent: running prompt: %w", err)
	}

	m, ok := finalModel.(promptModel)
	if !ok || !m.done {
		return Response{Choice: ChoiceReject}, nil
	}
	return m.result, nil
}

// AutoRejectPrompter is used when no interactive terminal is available
// and auto-approve was not requested; every prompt resolves to reject
// rather than blocking a non-interactive process forever.
type AutoRejectPrompter struct{}

// Prompt implements Prompter.
func (AutoRejectPrompter) Prompt(context.Context, Request) (Response, error) {
	return Response{Choice: ChoiceReject}, nil
}
