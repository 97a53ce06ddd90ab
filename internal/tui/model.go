package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mcdonaldj/textgather/internal/adapters/collectsvc"
	"github.com/mcdonaldj/textgather/internal/adapters/osfs"
	"github.com/mcdonaldj/textgather/internal/aggregate"
	"github.com/mcdonaldj/textgather/internal/config"
	"github.com/mcdonaldj/textgather/internal/ports"
)

// Step is the wizard's current screen
type Step int

const (
	RootsStep     Step = iota // entering directories, one per line
	ExtensionStep             // entering the file extension
	ModeStep                  // choosing sequential vs concurrent
	OverwriteStep             // destination exists: overwrite / rename / cancel
	RenameStep                // entering a new destination name
	RunningStep               // collection in flight
	DoneStep                  // summary or failure
)

// Model is the wizard TUI model
type Model struct {
	svc ports.CollectorService
	cfg *config.Config

	step   Step
	input  textinput.Model
	roots  []string
	errMsg string

	// Mode selection
	concurrent bool

	// Running state
	bar    progress.Model
	events chan progressMsg
	done   int
	total  int

	// Outcome
	summary ports.CollectSummary
	runErr  error

	width    int
	height   int
	quitting bool
}

// NewModel creates the wizard over a collector service and a starting config.
func NewModel(svc ports.CollectorService, cfg *config.Config) *Model {
	ti := textinput.New()
	ti.Placeholder = "/home/user/docs"
	ti.Focus()
	ti.CharLimit = 512

	return &Model{
		svc:        svc,
		cfg:        cfg,
		step:       RootsStep,
		input:      ti,
		concurrent: cfg.Concurrent,
		bar:        progress.New(progress.WithDefaultGradient()),
	}
}

// Run launches the interactive wizard.
func Run() error {
	svc := collectsvc.New(osfs.New())
	cfg, err := svc.LoadConfig()
	if err != nil {
		return err
	}
	p := tea.NewProgram(NewModel(svc, cfg), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// progressMsg carries one progress update out of the collect goroutine.
type progressMsg struct {
	done  int
	total int
}

// collectDoneMsg carries the run outcome.
type collectDoneMsg struct {
	summary ports.CollectSummary
	err     error
}

// progressReporter implements ports.Progress over a message channel. Updates
// are dropped rather than blocking the workers when the UI falls behind.
type progressReporter struct {
	mu     sync.Mutex
	done   int
	total  int
	events chan progressMsg
}

func (p *progressReporter) Start(total int) {
	p.mu.Lock()
	p.total = total
	msg := progressMsg{p.done, p.total}
	p.mu.Unlock()
	p.send(msg)
}

func (p *progressReporter) Advance() {
	p.mu.Lock()
	p.done++
	msg := progressMsg{p.done, p.total}
	p.mu.Unlock()
	p.send(msg)
}

func (p *progressReporter) Done() {}

func (p *progressReporter) send(msg progressMsg) {
	select {
	case p.events <- msg:
	default:
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = msg.Width - 8
		return m, nil

	case progressMsg:
		m.done = msg.done
		m.total = msg.total
		cmds := []tea.Cmd{waitForProgress(m.events)}
		if m.total > 0 {
			cmds = append(cmds, m.bar.SetPercent(float64(m.done)/float64(m.total)))
		}
		return m, tea.Batch(cmds...)

	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd

	case collectDoneMsg:
		m.summary = msg.summary
		m.runErr = msg.err
		m.step = DoneStep
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.step {
	case RootsStep:
		return m.updateRoots(msg)
	case ExtensionStep:
		return m.updateExtension(msg)
	case ModeStep:
		return m.updateMode(msg)
	case OverwriteStep:
		return m.updateOverwrite(msg)
	case RenameStep:
		return m.updateRename(msg)
	case DoneStep:
		switch msg.String() {
		case "q", "enter", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) updateRoots(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		m.errMsg = ""
		value := strings.TrimSpace(m.input.Value())
		if value != "" {
			m.roots = append(m.roots, value)
			m.input.SetValue("")
			return m, nil
		}
		if len(m.roots) == 0 {
			m.errMsg = "Enter at least one directory."
			return m, nil
		}
		m.cfg.Roots = m.roots
		m.input.SetValue(m.cfg.Extension)
		m.step = ExtensionStep
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateExtension(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		value := strings.TrimSpace(m.input.Value())
		if !strings.HasPrefix(value, ".") {
			m.errMsg = "The extension must begin with a dot, e.g. '.txt'."
			return m, nil
		}
		m.errMsg = ""
		m.cfg.Extension = value
		m.step = ModeStep
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k", "down", "j", "tab", "left", "right":
		m.concurrent = !m.concurrent
		return m, nil
	case "enter":
		m.cfg.Concurrent = m.concurrent
		if m.svc.OutputExists(m.cfg) {
			m.step = OverwriteStep
			return m, nil
		}
		return m.startRun()
	}
	return m, nil
}

func (m *Model) updateOverwrite(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "o", "y", "enter":
		return m.startRun()
	case "r", "n":
		m.input.SetValue("")
		m.input.Placeholder = "new-output-name"
		m.step = RenameStep
		return m, nil
	case "c", "q", "esc":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		value := strings.TrimSpace(m.input.Value())
		if value == "" {
			m.errMsg = "The name must not be empty."
			return m, nil
		}
		m.errMsg = ""
		if filepath.Ext(value) == "" {
			value += m.cfg.Extension
		}
		m.cfg.Output = value
		if m.svc.OutputExists(m.cfg) {
			m.step = OverwriteStep
			return m, nil
		}
		return m.startRun()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) startRun() (tea.Model, tea.Cmd) {
	m.step = RunningStep
	m.events = make(chan progressMsg, 64)
	reporter := &progressReporter{events: m.events}

	svc := m.svc
	cfg := m.cfg
	collect := func() tea.Msg {
		summary, err := svc.Collect(context.Background(), cfg, reporter)
		return collectDoneMsg{summary: summary, err: err}
	}
	return m, tea.Batch(collect, waitForProgress(m.events))
}

func waitForProgress(events chan progressMsg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("textgather"))
	b.WriteString("\n\n")

	switch m.step {
	case RootsStep:
		b.WriteString(normalStyle.Render("Which directories should be searched?"))
		b.WriteString("\n\n")
		for _, root := range m.roots {
			b.WriteString(dimStyle.Render("  • " + root))
			b.WriteString("\n")
		}
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter: add directory • empty enter: continue • ctrl+c: quit"))

	case ExtensionStep:
		b.WriteString(normalStyle.Render("Which file extension should be collected?"))
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter: continue • ctrl+c: quit"))

	case ModeStep:
		b.WriteString(normalStyle.Render("How should files be read?"))
		b.WriteString("\n\n")
		b.WriteString(m.renderModeChoice("sequential (keeps file order)", !m.concurrent))
		b.WriteString(m.renderModeChoice("concurrent (faster, completion order)", m.concurrent))
		b.WriteString(helpStyle.Render("arrows: switch • enter: start • ctrl+c: quit"))

	case OverwriteStep:
		b.WriteString(normalStyle.Render(fmt.Sprintf("The file '%s' already exists.", m.cfg.Output)))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("o: overwrite • r: new name • c: cancel"))

	case RenameStep:
		b.WriteString(normalStyle.Render("Enter a new output file name:"))
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter: continue • ctrl+c: quit"))

	case RunningStep:
		b.WriteString(normalStyle.Render("Processing files..."))
		b.WriteString("\n\n")
		b.WriteString(m.bar.View())
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d/%d files", m.done, m.total)))

	case DoneStep:
		if m.runErr != nil {
			if errors.Is(m.runErr, aggregate.ErrNoMatches) {
				b.WriteString(errorBadge.Render("No matching content found."))
				b.WriteString("\n")
				b.WriteString(dimStyle.Render("No output file was created."))
			} else {
				b.WriteString(errorBadge.Render("Collection failed"))
				b.WriteString("\n")
				b.WriteString(normalStyle.Render(m.runErr.Error()))
			}
		} else {
			b.WriteString(successBadge.Render("Done!"))
			b.WriteString("\n")
			b.WriteString(normalStyle.Render(fmt.Sprintf("Collected %d files (%s) into %s",
				m.summary.Blocks, aggregate.FormatSize(m.summary.Bytes), m.summary.OutputPath)))
			if m.summary.Blocks < m.summary.FilesFound {
				b.WriteString("\n")
				b.WriteString(dimStyle.Render(fmt.Sprintf("%d files skipped, see %s",
					m.summary.FilesFound-m.summary.Blocks, m.cfg.Log)))
			}
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter/q: quit"))
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorBadge.Render(m.errMsg))
	}

	return appStyle.Render(b.String())
}

func (m *Model) renderModeChoice(label string, selected bool) string {
	if selected {
		return selectedStyle.Render("> "+label) + "\n"
	}
	return dimStyle.Render("  "+label) + "\n"
}
