// Package browse is a read-only terminal viewer over the persisted latest
// listing. It never writes; advisors use it to skim postings without opening
// the static site.
package browse

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jdoner02/aicyberjobs/internal/model"
)

// Lines per job item in the list pane (title + subtitle + blank separator).
const jobItemHeight = 3

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	selectedTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("24"))

	selectedSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("24"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Width(14)

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))
)

type browseModel struct {
	category model.Category
	jobs     []model.Job
	cursor   int
	detail   viewport.Model
	width    int
	height   int
	ready    bool
	status   string
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detail = viewport.New(msg.Width-4, msg.Height/2)
		m.ready = true
		m.setDetail()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.setDetail()
			}
		case "down", "j":
			if m.cursor < len(m.jobs)-1 {
				m.cursor++
				m.setDetail()
			}
		case "o", "enter":
			if len(m.jobs) > 0 {
				if err := openURL(m.jobs[m.cursor].URL); err != nil {
					m.status = "could not open browser: " + err.Error()
				} else {
					m.status = "opened " + m.jobs[m.cursor].URL
				}
			}
		default:
			// Forward other keys (pgup/pgdn/home/end) to the detail viewport.
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *browseModel) setDetail() {
	if !m.ready || len(m.jobs) == 0 {
		return
	}
	j := m.jobs[m.cursor]

	var b strings.Builder
	b.WriteString(titleStyle.Render(j.Title) + "\n\n")
	writeField := func(label, value string) {
		if value != "" {
			b.WriteString(labelStyle.Render(label) + value + "\n")
		}
	}
	writeField("Organization", j.Organization)
	writeField("Locations", strings.Join(j.Locations, ", "))
	if !j.PostedAt.IsZero() {
		writeField("Posted", j.PostedAt.Format("Jan 2, 2006"))
	}
	writeField("Grade", j.Grade)
	writeField("Salary", j.Salary)
	writeField("Apply", j.URL)
	if j.Description != "" {
		b.WriteString("\n" + j.Description + "\n")
	}
	m.detail.SetContent(b.String())
	m.detail.SetYOffset(0)
}

func (m browseModel) View() string {
	if !m.ready {
		return "loading..."
	}
	if len(m.jobs) == 0 {
		return fmt.Sprintf("No %s jobs in the latest listing. Run `aicyberjobs scrape` first.\n", m.category.DisplayName())
	}

	header := headerStyle.Render(fmt.Sprintf("%s jobs on USAJOBS — %d listed", m.category.DisplayName(), len(m.jobs)))

	listHeight := m.height - m.detail.Height - 6
	if listHeight < jobItemHeight {
		listHeight = jobItemHeight
	}
	list := m.renderList(listHeight / jobItemHeight)

	status := m.status
	if status == "" {
		status = "↑/↓ select · o open apply link · pgup/pgdn scroll description · q quit"
	}

	return strings.Join([]string{
		header,
		list,
		borderStyle.Render(m.detail.View()),
		statusBarStyle.Width(m.width).Render(status),
	}, "\n")
}

// renderList draws a window of the job list around the cursor.
func (m browseModel) renderList(visible int) string {
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(m.jobs) {
		end = len(m.jobs)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		j := m.jobs[i]
		subtitle := strings.Join(j.Locations, ", ")
		if !j.PostedAt.IsZero() {
			subtitle += " · " + j.PostedAt.Format("2006-01-02")
		}
		if i == m.cursor {
			b.WriteString(selectedTitleStyle.Render("▸ "+j.Title) + "\n")
			b.WriteString(selectedSubtitleStyle.Render("  "+j.Organization+" — "+subtitle) + "\n\n")
		} else {
			b.WriteString(titleStyle.Render("  "+j.Title) + "\n")
			b.WriteString(subtitleStyle.Render("  "+j.Organization+" — "+subtitle) + "\n\n")
		}
	}
	return b.String()
}

// Run starts the viewer over the given listing and blocks until quit.
func Run(category model.Category, jobs []model.Job) error {
	m := browseModel{category: category, jobs: jobs}
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browse ui: %w", err)
	}
	return nil
}

func openURL(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
