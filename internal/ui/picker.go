package ui

import (
	"errors"
	"os"
	"strings"

	"github.com/nconklindev/sheetcsv/internal/converter"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type pickerState int

const (
	statePicking pickerState = iota
	stateSelected
	stateDeclined
)

// PickerModel lets the user walk the filesystem and choose a directory.
// Spreadsheets are shown as the selectable kind so the user can see what a
// directory would convert before choosing it.
type PickerModel struct {
	state      pickerState
	title      string
	filepicker filepicker.Model
	selected   string
	width      int
	height     int
}

func NewPickerModel(title, startDir string) PickerModel {
	fp := filepicker.New()
	fp.AllowedTypes = converter.Extensions
	fp.DirAllowed = false
	fp.FileAllowed = false
	fp.CurrentDirectory = startDir
	if fp.CurrentDirectory == "" {
		fp.CurrentDirectory, _ = os.Getwd()
	}

	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(accent)
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(highlight)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(highlight)
	fp.Styles.File = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	fp.Styles.DisabledFile = lipgloss.NewStyle().Foreground(muted)
	fp.Styles.Permission = lipgloss.NewStyle().Foreground(muted)
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(accent).Bold(true)
	fp.Styles.FileSize = lipgloss.NewStyle().Foreground(muted)

	return PickerModel{
		state:      statePicking,
		title:      title,
		filepicker: fp,
	}
}

func (m PickerModel) Init() tea.Cmd {
	return m.filepicker.Init()
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Leave room for the title, current path and help text.
		height := msg.Height - 12
		if height < 5 {
			height = 5
		}
		m.filepicker.SetHeight(height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.state = stateDeclined
			return m, tea.Quit
		case "s":
			m.selected = m.filepicker.CurrentDirectory
			m.state = stateSelected
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.filepicker, cmd = m.filepicker.Update(msg)
	return m, cmd
}

// Selected returns the chosen directory, or "" if the user backed out.
func (m PickerModel) Selected() string {
	if m.state != stateSelected {
		return ""
	}
	return m.selected
}

func (m PickerModel) View() string {
	if m.state != statePicking {
		return ""
	}

	var s strings.Builder

	s.WriteString(TitleStyle.Render("📂 sheetcsv - " + m.title))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(truncatePath(m.filepicker.CurrentDirectory, m.width-4)))
	s.WriteString("\n\n")
	s.WriteString(m.filepicker.View())
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("↑/↓: navigate • enter/→: open • ←: up • s: use this directory • esc/q: cancel"))

	return s.String()
}

// Prompt asks for directories with a full-screen picker per question.
type Prompt struct {
	StartDir string
	// Options are passed to every tea.NewProgram call.
	Options []tea.ProgramOption
}

func (p *Prompt) SelectDirectory(title string) (string, error) {
	opts := append([]tea.ProgramOption{tea.WithAltScreen()}, p.Options...)
	final, err := tea.NewProgram(NewPickerModel(title, p.StartDir), opts...).Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(PickerModel)
	if !ok {
		return "", errors.New("directory picker returned an unexpected model")
	}
	if dir := m.Selected(); dir != "" {
		// The next question starts where this one ended.
		p.StartDir = dir
		return dir, nil
	}
	return "", nil
}
