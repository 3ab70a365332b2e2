package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/ytget/yt-grabber/internal/download"
	"github.com/ytget/yt-grabber/internal/model"
)

const (
	padding     = 2
	minBarWidth = 10
	maxBarWidth = 60
)

var (
	ColorRed       = lipgloss.Color("#FF0033")
	ColorGreen     = lipgloss.Color("#2EA043")
	ColorLightGray = lipgloss.Color("#A0A0A0")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorRed)
	mutedStyle   = lipgloss.NewStyle().Foreground(ColorLightGray)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorGreen)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorRed)
)

// eventMsg carries a task event into the bubbletea loop
type eventMsg download.Event

type progressModel struct {
	url      string
	title    string
	status   model.TaskStatus
	progress download.Progress
	stopping bool

	bar    progress.Model
	cancel context.CancelFunc

	result *download.Result
	err    error
}

func newProgressModel(url string, cancel context.CancelFunc) progressModel {
	return progressModel{
		url:    url,
		status: model.TaskStatusPending,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		cancel: cancel,
	}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if !m.stopping && m.cancel != nil {
				m.cancel()
			}
			m.stopping = true
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.bar.Width = max(min(msg.Width-padding*2-8, maxBarWidth), minBarWidth)
		return m, nil

	case eventMsg:
		ev := download.Event(msg)
		if ev.Task.Title != "" {
			m.title = ev.Task.Title
		}
		if ev.Task.Status != "" {
			m.status = ev.Task.Status
		}
		switch ev.Kind {
		case download.EventProgress:
			m.progress = ev.Progress
		case download.EventCompleted:
			m.progress.Percent = download.MaxPercent
			m.progress.Finished = true
			m.result = ev.Result
			return m, tea.Quit
		case download.EventFailed:
			m.err = ev.Err
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m progressModel) View() string {
	pad := strings.Repeat(" ", padding)

	name := m.title
	if name == "" {
		name = m.url
	}

	var b strings.Builder
	b.WriteString("\n" + pad + titleStyle.Render(name) + "\n\n")
	b.WriteString(pad + m.bar.ViewAs(m.progress.Fraction()) + fmt.Sprintf(" %6s", m.progress.String()) + "\n")

	status := m.status.String()
	if m.stopping && m.status.IsActive() {
		status = "Stopping"
	}
	if m.progress.Total > 0 {
		status += " · " + humanize.Bytes(uint64(m.progress.Downloaded)) + " / " + humanize.Bytes(uint64(m.progress.Total))
	}
	b.WriteString(pad + mutedStyle.Render(status) + "\n")

	if m.err != nil {
		b.WriteString(pad + errorStyle.Render(m.err.Error()) + "\n")
	}
	if m.status.IsActive() {
		b.WriteString("\n" + pad + mutedStyle.Render("q: stop") + "\n")
	}
	return b.String()
}
