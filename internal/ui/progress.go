package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"logdoc/internal/levels"
	"logdoc/internal/scan"
)

type progressModel struct {
	title   string
	events  <-chan scan.Event
	spinner spinner.Model
	prog    progress.Model
	items   []passItem
	index   map[levels.Level]int
	files   int // всего файлов за все проходы, 0 - неизвестно
	seen    int
	width   int
	done    bool
}

type passItem struct {
	level   levels.Level
	status  scan.Status
	records int
	current string // файл, который сейчас разбирается
	err     error
}

type eventMsg scan.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders one line per
// severity pass. filesPerPass may be 0 when the tree was not listed up front.
func NewProgressModel(title string, lvls []levels.Level, filesPerPass int, events <-chan scan.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]passItem, 0, len(lvls))
	index := make(map[levels.Level]int, len(lvls))
	for i, lvl := range lvls {
		items = append(items, passItem{level: lvl, status: scan.StatusQueued})
		index[lvl] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		files:   filesPerPass * len(lvls),
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(scan.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	const levelWidth, statusWidth = 10, 10
	detailWidth := max(m.width-levelWidth-statusWidth-6, 20)

	for _, item := range m.items {
		status := statusLabel(item.status)
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%*s", statusWidth, status))
		fmt.Fprintf(&b, "  %-*s %s %s\n", levelWidth, item.level.Name(), statusStyled, truncate(item.detail(), detailWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev scan.Event) tea.Cmd {
	idx, ok := m.index[ev.Level]
	if !ok {
		return nil
	}
	item := &m.items[idx]

	if ev.File == "" {
		item.status = ev.Status
		item.current = ""
		switch ev.Status {
		case scan.StatusDone:
			item.records = ev.Records
		case scan.StatusError:
			item.err = ev.Err
		}
		return m.prog.SetPercent(m.percent())
	}

	// события по файлам двигают прогресс внутри прохода
	item.status = scan.StatusWorking
	item.current = ev.File
	if ev.Status == scan.StatusDone || ev.Status == scan.StatusError {
		m.seen++
		item.records += ev.Records
	}
	return m.prog.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if m.files > 0 {
		return min(float64(m.seen)/float64(m.files), 1.0)
	}
	finished := 0
	for _, item := range m.items {
		if item.status == scan.StatusDone || item.status == scan.StatusError {
			finished++
		}
	}
	return float64(finished) / float64(len(m.items))
}

func (it passItem) detail() string {
	switch it.status {
	case scan.StatusDone:
		if it.records == 1 {
			return "1 record"
		}
		return fmt.Sprintf("%d records", it.records)
	case scan.StatusError:
		if it.err != nil {
			return it.err.Error()
		}
	case scan.StatusWorking:
		return it.current
	}
	return ""
}

func statusLabel(status scan.Status) string {
	if status == scan.StatusWorking {
		return "scanning"
	}
	return string(status)
}

func styleStatus(status scan.Status) lipgloss.Style {
	switch status {
	case scan.StatusDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case scan.StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case scan.StatusWorking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	// начало пути менее информативно, чем имя файла
	return "..." + truncateLeft(value, width-3)
}

func truncateLeft(value string, width int) string {
	runes := []rune(value)
	w := 0
	i := len(runes)
	for i > 0 {
		rw := runewidth.RuneWidth(runes[i-1])
		if w+rw > width {
			break
		}
		w += rw
		i--
	}
	return string(runes[i:])
}
