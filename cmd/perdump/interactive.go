package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ranforge/asn1per/internal/msgs"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#1F6FEB")).
			Padding(0, 1)

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#1F6FEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectType modelState = iota
	stateInputHex
	stateShowResult
)

type interactiveModel struct {
	err      error
	cfg      config
	types    []string
	input    textinput.Model
	result   string
	octets   int
	selected int
	state    modelState
}

func newInteractiveModel(cfg config) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "hex, e.g. 00 1e 22 00"
	ti.Prompt = "bytes: "
	ti.Width = 60

	m := &interactiveModel{
		cfg:   cfg,
		types: msgs.Names(),
		input: ti,
		state: stateSelectType,
	}
	for i, name := range m.types {
		if name == cfg.msgType {
			m.selected = i
			m.startInput()
		}
	}
	return m
}

type decodedMsg struct {
	err    error
	result string
	octets int
}

func (m *interactiveModel) Init() tea.Cmd {
	if m.state == stateInputHex {
		return textinput.Blink
	}
	return nil
}

func (m *interactiveModel) startInput() {
	m.state = stateInputHex
	m.input.SetValue("")
	m.input.Focus()
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputHex {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectType && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectType && m.selected < len(m.types)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectType:
				m.startInput()
				return m, textinput.Blink

			case stateInputHex:
				return m, m.decodeInput

			case stateShowResult:
				m.startInput()
				m.result = ""
				m.err = nil
				return m, textinput.Blink
			}

		case "esc":
			switch m.state {
			case stateInputHex:
				m.input.Blur()
				m.state = stateSelectType
			case stateShowResult:
				m.state = stateSelectType
				m.result = ""
				m.err = nil
			}
			return m, nil
		}

	case decodedMsg:
		m.result = msg.result
		m.err = msg.err
		m.octets = msg.octets
		m.input.Blur()
		m.state = stateShowResult
		return m, nil
	}

	if m.state == stateInputHex {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) decodeInput() tea.Msg {
	data, err := parseHex(m.input.Value())
	if err != nil {
		return decodedMsg{err: fmt.Errorf("parse hex: %w", err)}
	}
	cfg := m.cfg
	cfg.msgType = m.types[m.selected]
	text, err := decode(cfg, data)
	return decodedMsg{err: err, result: text, octets: len(data)}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("PER Decoder"))
	if m.cfg.strict {
		b.WriteString(" strict")
	}
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectType:
		b.WriteString("Select a message type:\n\n")
		for i, name := range m.types {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + name))
			} else {
				b.WriteString("  " + name)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter choose • q quit"))

	case stateInputHex:
		fmt.Fprintf(&b, "Decode %s\n\n", typeStyle.Render(m.types[m.selected]))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter decode • esc back"))

	case stateShowResult:
		fmt.Fprintf(&b, "%s (%d octets):\n\n", typeStyle.Render(m.types[m.selected]), m.octets)
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter decode another • esc types • q quit"))
	}

	return b.String()
}

func runInteractive(cfg config) error {
	p := tea.NewProgram(newInteractiveModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
