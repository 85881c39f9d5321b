// Package tui implements the interactive MCP registry browser.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aidevhq/cli/pkg/registry"
)

const uiDivider = "────────────────────────────────────────────────────────────"

var selectedStyle = lipgloss.NewStyle().Bold(true)

type browseState int

const (
	stateLoading browseState = iota
	stateList
	stateDetail
)

// fetchResult carries the registry fetch outcome back into the program.
type fetchResult struct {
	reg *registry.Registry
	err error
}

// BrowseModel is the Bubble Tea model for the registry browser. It fetches
// the registry asynchronously, renders a filterable list, and lets the user
// pick one entry to install after the program exits.
type BrowseModel struct {
	ctx    context.Context
	client *registry.Client

	state     browseState
	spinner   spinner.Model
	filter    textinput.Model
	filtering bool

	reg     *registry.Registry
	entries []registry.Entry
	idx     int
	errMsg  string

	// install holds the entry name chosen with 'i'; empty means the user
	// just browsed.
	install string
}

// NewBrowseModel creates the browser with the spinner running and the
// filter input prepared but unfocused.
func NewBrowseModel(ctx context.Context, client *registry.Client) *BrowseModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	filter := textinput.New()
	filter.Placeholder = "filter by name, description or tag"
	filter.CharLimit = 64
	filter.Width = 44

	return &BrowseModel{
		ctx:     ctx,
		client:  client,
		state:   stateLoading,
		spinner: s,
		filter:  filter,
	}
}

// Init implements [tea.Model]. Starts the spinner and the registry fetch.
func (m *BrowseModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdFetch())
}

func (m *BrowseModel) cmdFetch() tea.Cmd {
	return func() tea.Msg {
		reg, err := m.client.Fetch(m.ctx, false)
		return fetchResult{reg: reg, err: err}
	}
}

// Update implements [tea.Model].
func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchResult:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			m.state = stateList
			return m, nil
		}
		m.reg = msg.reg
		m.entries = msg.reg.Entries
		m.state = stateList
		return m, nil

	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.filtering {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *BrowseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.filtering {
		switch msg.String() {
		case "enter", "esc":
			m.filtering = false
			m.filter.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}
	}

	switch m.state {
	case stateList:
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.idx > 0 {
				m.idx--
			}
		case "down", "j":
			if m.idx < len(m.entries)-1 {
				m.idx++
			}
		case "/":
			m.filtering = true
			m.filter.Focus()
			return m, textinput.Blink
		case "enter":
			if len(m.entries) > 0 {
				m.state = stateDetail
			}
		case "i":
			if len(m.entries) > 0 {
				m.install = m.entries[m.idx].Name
				return m, tea.Quit
			}
		}

	case stateDetail:
		switch msg.String() {
		case "esc", "q":
			m.state = stateList
		case "i":
			m.install = m.entries[m.idx].Name
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *BrowseModel) applyFilter() {
	if m.reg == nil {
		return
	}
	m.entries = registry.Search(m.reg.Entries, m.filter.Value())
	if m.idx >= len(m.entries) {
		m.idx = 0
	}
}

// View implements [tea.Model].
func (m *BrowseModel) View() string {
	switch m.state {
	case stateLoading:
		return renderPage("MCP REGISTRY", m.spinner.View()+" Fetching registry...", "ctrl+c: quit")
	case stateDetail:
		return m.viewDetail()
	default:
		return m.viewList()
	}
}

func (m *BrowseModel) viewList() string {
	var b strings.Builder

	if m.errMsg != "" {
		b.WriteString("Error: " + m.errMsg + "\n\n")
	}
	if m.reg != nil {
		fmt.Fprintf(&b, "Source: %s", m.reg.Source)
		if m.reg.Updated != "" {
			fmt.Fprintf(&b, " (updated %s)", m.reg.Updated)
		}
		b.WriteString("\n")
	}
	if m.filtering || m.filter.Value() != "" {
		b.WriteString("Filter: " + m.filter.View() + "\n")
	}
	b.WriteString("\n")

	if len(m.entries) == 0 {
		b.WriteString("No servers match.\n")
	}

	nameWidth := lipgloss.Width("NAME")
	for _, e := range m.entries {
		if w := lipgloss.Width(e.Name); w > nameWidth {
			nameWidth = w
		}
	}

	for i, e := range m.entries {
		cursor := " "
		line := fmt.Sprintf("%-*s │ %s", nameWidth, e.Name, oneLine(e.Description, 50))
		if i == m.idx {
			cursor = ">"
			line = selectedStyle.Render(line)
		}
		fmt.Fprintf(&b, "%s %s\n", cursor, line)
	}

	hotkeys := "enter: details │ i: install │ /: filter │ ↑/↓: navigate │ q: quit"
	return renderPage("MCP REGISTRY", strings.TrimRight(b.String(), "\n"), hotkeys)
}

func (m *BrowseModel) viewDetail() string {
	e := m.entries[m.idx]
	var b strings.Builder

	fmt.Fprintf(&b, "Name:        %s\n", e.Name)
	fmt.Fprintf(&b, "Description: %s\n", e.Description)
	if e.Author != "" {
		fmt.Fprintf(&b, "Author:      %s\n", e.Author)
	}
	if e.Repository != "" {
		fmt.Fprintf(&b, "Repository:  %s\n", e.Repository)
	}
	if e.Version != "" {
		fmt.Fprintf(&b, "Version:     %s\n", e.Version)
	}
	if len(e.Tags) > 0 {
		fmt.Fprintf(&b, "Tags:        %s\n", strings.Join(e.Tags, ", "))
	}
	if e.Install.Command != "" {
		fmt.Fprintf(&b, "Install:     %s\n", e.Install.Command)
	}
	if len(e.Configuration.Required) > 0 {
		fmt.Fprintf(&b, "Requires:    %s\n", strings.Join(e.Configuration.Required, ", "))
	}
	if len(e.Configuration.Optional) > 0 {
		fmt.Fprintf(&b, "Optional:    %s\n", strings.Join(e.Configuration.Optional, ", "))
	}
	if len(e.Server) > 0 {
		b.WriteString("\nServer definition:\n")
		for _, line := range strings.Split(string(e.Server), "\n") {
			b.WriteString("  " + line + "\n")
		}
	}

	return renderPage("SERVER: "+strings.ToUpper(e.Name), strings.TrimRight(b.String(), "\n"), "i: install │ esc: back")
}

func oneLine(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		for _, line := range strings.Split(data, "\n") {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(hotKeys)
		b.WriteString("\n")
	}
	b.WriteString("  ctrl+c: quit")

	return b.String()
}

// Browse runs the registry browser and returns the name of the entry the
// user chose to install, or "" when they only browsed.
func Browse(ctx context.Context, client *registry.Client) (string, error) {
	final, err := tea.NewProgram(NewBrowseModel(ctx, client), tea.WithAltScreen()).Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(*BrowseModel)
	if !ok {
		return "", tea.ErrProgramKilled
	}
	return m.install, nil
}
