package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/mcdonaldj/textgather/internal/aggregate"
	"github.com/mcdonaldj/textgather/internal/config"
	"github.com/mcdonaldj/textgather/internal/mocks"
	"github.com/mcdonaldj/textgather/internal/ports"
)

func enter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func keyRune(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testModel(svc ports.CollectorService) *Model {
	cfg := config.DefaultConfig()
	return NewModel(svc, cfg)
}

// step the model through the directory and extension prompts
func advanceToMode(t *testing.T, m *Model) {
	t.Helper()
	m.input.SetValue("/docs")
	m.Update(enter())
	m.input.SetValue("")
	m.Update(enter())
	if m.step != ExtensionStep {
		t.Fatalf("step = %v, expected ExtensionStep", m.step)
	}
	m.input.SetValue(".txt")
	m.Update(enter())
	if m.step != ModeStep {
		t.Fatalf("step = %v, expected ModeStep", m.step)
	}
}

func TestWizardStartsAtRoots(t *testing.T) {
	m := testModel(mocks.NewMockCollectorService())
	if m.step != RootsStep {
		t.Errorf("step = %v, expected RootsStep", m.step)
	}
	if !strings.Contains(m.View(), "Which directories") {
		t.Error("initial view should prompt for directories")
	}
}

func TestRootsRequireAtLeastOne(t *testing.T) {
	m := testModel(mocks.NewMockCollectorService())

	m.input.SetValue("")
	m.Update(enter())

	if m.step != RootsStep {
		t.Errorf("step = %v, expected to stay on RootsStep", m.step)
	}
	if m.errMsg == "" {
		t.Error("expected a validation message for zero directories")
	}
}

func TestRootsCollectsMultiple(t *testing.T) {
	m := testModel(mocks.NewMockCollectorService())

	m.input.SetValue("/docs")
	m.Update(enter())
	m.input.SetValue("/notes")
	m.Update(enter())
	m.input.SetValue("")
	m.Update(enter())

	if m.step != ExtensionStep {
		t.Fatalf("step = %v, expected ExtensionStep", m.step)
	}
	if len(m.cfg.Roots) != 2 || m.cfg.Roots[0] != "/docs" || m.cfg.Roots[1] != "/notes" {
		t.Errorf("Roots = %v, expected [/docs /notes]", m.cfg.Roots)
	}
}

func TestExtensionValidation(t *testing.T) {
	m := testModel(mocks.NewMockCollectorService())
	m.input.SetValue("/docs")
	m.Update(enter())
	m.input.SetValue("")
	m.Update(enter())

	m.input.SetValue("txt")
	m.Update(enter())

	if m.step != ExtensionStep {
		t.Errorf("step = %v, expected to stay on ExtensionStep", m.step)
	}
	if !strings.Contains(m.errMsg, "dot") {
		t.Errorf("errMsg = %q, expected dot hint", m.errMsg)
	}

	m.input.SetValue(".md")
	m.Update(enter())
	if m.step != ModeStep {
		t.Errorf("step = %v, expected ModeStep", m.step)
	}
	if m.cfg.Extension != ".md" {
		t.Errorf("Extension = %q, expected .md", m.cfg.Extension)
	}
}

func TestModeToggleAndStart(t *testing.T) {
	svc := mocks.NewMockCollectorService()
	m := testModel(svc)
	advanceToMode(t, m)

	if m.concurrent {
		t.Error("mode should default to sequential")
	}
	m.Update(keyRune("j"))
	if !m.concurrent {
		t.Error("j should toggle to concurrent")
	}

	_, cmd := m.Update(enter())
	if m.step != RunningStep {
		t.Errorf("step = %v, expected RunningStep", m.step)
	}
	if cmd == nil {
		t.Error("starting a run should return a command")
	}
	if !m.cfg.Concurrent {
		t.Error("chosen mode not applied to config")
	}
}

func TestOverwriteNegotiation(t *testing.T) {
	svc := mocks.NewMockCollectorService()
	svc.Exists = true
	m := testModel(svc)
	advanceToMode(t, m)

	m.Update(enter())
	if m.step != OverwriteStep {
		t.Fatalf("step = %v, expected OverwriteStep", m.step)
	}
	if !strings.Contains(m.View(), "already exists") {
		t.Error("overwrite view should name the conflict")
	}

	m.Update(keyRune("r"))
	if m.step != RenameStep {
		t.Fatalf("step = %v, expected RenameStep", m.step)
	}

	m.input.SetValue("")
	m.Update(enter())
	if m.errMsg == "" {
		t.Error("empty name should be rejected")
	}

	// A new name without an extension gets the collected one appended,
	// and an existing destination loops back to the overwrite prompt.
	m.input.SetValue("bundle")
	m.Update(enter())
	if m.cfg.Output != "bundle.txt" {
		t.Errorf("Output = %q, expected bundle.txt", m.cfg.Output)
	}
	if m.step != OverwriteStep {
		t.Errorf("step = %v, expected OverwriteStep again while the name exists", m.step)
	}

	svc.Exists = false
	m.Update(keyRune("r"))
	m.input.SetValue("fresh.out")
	m.Update(enter())
	if m.step != RunningStep {
		t.Errorf("step = %v, expected RunningStep", m.step)
	}
	if m.cfg.Output != "fresh.out" {
		t.Errorf("Output = %q, expected fresh.out", m.cfg.Output)
	}
}

func TestDoneViewSuccess(t *testing.T) {
	m := testModel(mocks.NewMockCollectorService())
	m.step = RunningStep

	m.Update(collectDoneMsg{summary: ports.CollectSummary{
		FilesFound: 2,
		Blocks:     2,
		Bytes:      11,
		OutputPath: "output.txt",
	}})

	if m.step != DoneStep {
		t.Fatalf("step = %v, expected DoneStep", m.step)
	}
	view := m.View()
	if !strings.Contains(view, "Done!") || !strings.Contains(view, "output.txt") {
		t.Errorf("done view = %q, expected summary", view)
	}
}

func TestDoneViewNoMatches(t *testing.T) {
	m := testModel(mocks.NewMockCollectorService())
	m.step = RunningStep

	m.Update(collectDoneMsg{err: aggregate.ErrNoMatches})

	view := m.View()
	if !strings.Contains(view, "No matching content") {
		t.Errorf("view = %q, expected no-matches notice", view)
	}
	if !strings.Contains(view, "No output file was created") {
		t.Errorf("view = %q, expected no-artifact notice", view)
	}
}

func TestDoneViewFailure(t *testing.T) {
	m := testModel(mocks.NewMockCollectorService())
	m.step = RunningStep

	m.Update(collectDoneMsg{err: errors.New("renaming output: disk full")})

	view := m.View()
	if !strings.Contains(view, "Collection failed") || !strings.Contains(view, "disk full") {
		t.Errorf("view = %q, expected failure details", view)
	}
}

func TestProgressUpdates(t *testing.T) {
	m := testModel(mocks.NewMockCollectorService())
	m.step = RunningStep
	m.events = make(chan progressMsg, 1)

	m.Update(progressMsg{done: 3, total: 10})

	if m.done != 3 || m.total != 10 {
		t.Errorf("progress = %d/%d, expected 3/10", m.done, m.total)
	}
	if !strings.Contains(m.View(), "3/10 files") {
		t.Errorf("running view = %q, expected counter", m.View())
	}
}

func TestProgressReporterDropsWhenFull(t *testing.T) {
	r := &progressReporter{events: make(chan progressMsg, 1)}
	r.Start(5)
	// Channel full; further updates must not block the worker.
	done := make(chan struct{})
	go func() {
		r.Advance()
		r.Advance()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("progress reporter blocked on a full channel")
	}
}

func TestWizardEndToEnd(t *testing.T) {
	svc := mocks.NewMockCollectorService()
	svc.Summary = ports.CollectSummary{FilesFound: 1, Blocks: 1, Bytes: 5, OutputPath: "output.txt"}
	svc.ProgressTotal = 1

	tm := teatest.NewTestModel(t, testModel(svc), teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Which directories"))
	}, teatest.WithDuration(3*time.Second))

	tm.Type("/docs")
	tm.Send(enter())
	tm.Send(enter()) // finish directory entry
	tm.Send(enter()) // accept default extension
	tm.Send(enter()) // sequential mode, start

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Done!"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(enter())
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	if len(svc.CollectCalls) != 1 {
		t.Errorf("Collect called %d times, expected 1", len(svc.CollectCalls))
	}
}
