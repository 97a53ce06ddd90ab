package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mcdonaldj/textgather/internal/aggregate"
	"github.com/mcdonaldj/textgather/internal/config"
	"github.com/mcdonaldj/textgather/internal/mocks"
	"github.com/mcdonaldj/textgather/internal/ports"
)

// stubConfigService implements ConfigService without touching the filesystem.
type stubConfigService struct {
	cfg     *config.Config
	loadErr error
	saved   *config.Config
	saveErr error
}

func (s *stubConfigService) Load() (*config.Config, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.cfg, nil
}
func (s *stubConfigService) Save(cfg *config.Config) error {
	s.saved = cfg
	return s.saveErr
}
func (s *stubConfigService) ConfigPath() string            { return "/home/test/.textgather/config.yaml" }
func (s *stubConfigService) DefaultConfig() *config.Config { return config.DefaultConfig() }

func newTestCLI(args ...string) (*CLI, *bytes.Buffer, *bytes.Buffer, *int) {
	var out, errOut bytes.Buffer
	c := NewForTesting(&out, &errOut, append([]string{"textgather"}, args...))
	exitCode := 0
	c.Exit = func(code int) { exitCode = code }
	return c, &out, &errOut, &exitCode
}

func TestVersion(t *testing.T) {
	c, out, _, _ := newTestCLI("version")
	c.Run()
	if got := out.String(); got != "textgather vtest\n" {
		t.Errorf("output = %q, expected %q", got, "textgather vtest\n")
	}
}

func TestUnknownCommand(t *testing.T) {
	c, out, errOut, exitCode := newTestCLI("bogus")
	c.Run()

	if !strings.Contains(errOut.String(), "Unknown command: bogus") {
		t.Errorf("errOut = %q, expected unknown command message", errOut.String())
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Error("usage not printed after unknown command")
	}
	if *exitCode != 1 {
		t.Errorf("exit code = %d, expected 1", *exitCode)
	}
}

func TestNoCommand(t *testing.T) {
	c, out, _, _ := newTestCLI()
	c.Run()
	if !strings.Contains(out.String(), "No command specified") {
		t.Errorf("output = %q, expected hint", out.String())
	}
}

func TestRunCollectSuccess(t *testing.T) {
	c, out, _, exitCode := newTestCLI("run", "/docs")

	cfgSvc := &stubConfigService{cfg: config.DefaultConfig()}
	collectSvc := mocks.NewMockCollectorService()
	collectSvc.Summary = ports.CollectSummary{
		FilesFound: 3,
		Blocks:     3,
		Bytes:      2048,
		OutputPath: "output.txt",
	}
	c.ConfigSvc = cfgSvc
	c.CollectSvc = collectSvc

	c.Run()

	if *exitCode != 0 {
		t.Fatalf("exit code = %d, expected 0; err output: %q", *exitCode, out.String())
	}
	if len(collectSvc.CollectCalls) != 1 {
		t.Fatalf("Collect called %d times, expected 1", len(collectSvc.CollectCalls))
	}
	if got := collectSvc.CollectCalls[0].Roots; len(got) != 1 || got[0] != "/docs" {
		t.Errorf("roots = %v, expected [/docs]", got)
	}
	if !strings.Contains(out.String(), "Collected 2.0 KB from 3 files into output.txt") {
		t.Errorf("output = %q, expected summary line", out.String())
	}
}

func TestRunCollectFlags(t *testing.T) {
	c, _, _, _ := newTestCLI("run", "/a", "/b",
		"--ext=.MD", "--out=bundle.txt", "--log=fail.log", "--concurrent", "--workers=7")

	c.ConfigSvc = &stubConfigService{cfg: config.DefaultConfig()}
	collectSvc := mocks.NewMockCollectorService()
	c.CollectSvc = collectSvc

	c.Run()

	if len(collectSvc.CollectCalls) != 1 {
		t.Fatalf("Collect called %d times, expected 1", len(collectSvc.CollectCalls))
	}
	cfg := collectSvc.CollectCalls[0]
	if len(cfg.Roots) != 2 || cfg.Roots[0] != "/a" || cfg.Roots[1] != "/b" {
		t.Errorf("Roots = %v, expected [/a /b]", cfg.Roots)
	}
	if cfg.Extension != ".MD" {
		t.Errorf("Extension = %q, expected .MD", cfg.Extension)
	}
	if cfg.Output != "bundle.txt" || cfg.Log != "fail.log" {
		t.Errorf("Output/Log = %q/%q, expected bundle.txt/fail.log", cfg.Output, cfg.Log)
	}
	if !cfg.Concurrent || cfg.MaxWorkers != 7 {
		t.Errorf("Concurrent/MaxWorkers = %v/%d, expected true/7", cfg.Concurrent, cfg.MaxWorkers)
	}
}

func TestRunCollectFlagErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad workers", []string{"run", "/docs", "--workers=lots"}, "invalid --workers"},
		{"unknown flag", []string{"run", "/docs", "--frobnicate"}, "unknown flag"},
		{"bad extension", []string{"run", "/docs", "--ext=txt"}, "extension"},
		{"no roots", []string{"run"}, "root directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, errOut, exitCode := newTestCLI(tt.args...)
			c.ConfigSvc = &stubConfigService{cfg: config.DefaultConfig()}
			c.CollectSvc = mocks.NewMockCollectorService()

			c.Run()

			if *exitCode != 1 {
				t.Errorf("exit code = %d, expected 1", *exitCode)
			}
			if !strings.Contains(errOut.String(), tt.want) {
				t.Errorf("errOut = %q, expected message containing %q", errOut.String(), tt.want)
			}
		})
	}
}

func TestRunCollectNoMatches(t *testing.T) {
	c, _, errOut, exitCode := newTestCLI("run", "/docs")
	c.ConfigSvc = &stubConfigService{cfg: config.DefaultConfig()}
	collectSvc := mocks.NewMockCollectorService()
	collectSvc.CollectErr = aggregate.ErrNoMatches
	c.CollectSvc = collectSvc

	c.Run()

	if *exitCode != 1 {
		t.Errorf("exit code = %d, expected 1", *exitCode)
	}
	if !strings.Contains(errOut.String(), "No files with extension .txt") {
		t.Errorf("errOut = %q, expected the no-matches notice", errOut.String())
	}
}

func TestRunCollectReportsSkipped(t *testing.T) {
	c, out, _, _ := newTestCLI("run", "/docs")
	c.ConfigSvc = &stubConfigService{cfg: config.DefaultConfig()}
	collectSvc := mocks.NewMockCollectorService()
	collectSvc.Summary = ports.CollectSummary{
		FilesFound: 5,
		Blocks:     3,
		Bytes:      100,
		OutputPath: "output.txt",
	}
	c.CollectSvc = collectSvc

	c.Run()

	if !strings.Contains(out.String(), "2 files skipped") {
		t.Errorf("output = %q, expected skipped-files notice", out.String())
	}
}

func TestInitConfig(t *testing.T) {
	c, out, _, _ := newTestCLI("init")
	cfgSvc := &stubConfigService{cfg: config.DefaultConfig()}
	c.ConfigSvc = cfgSvc

	c.Run()

	if cfgSvc.saved == nil {
		t.Fatal("init did not save a config")
	}
	if !strings.Contains(out.String(), "Created config at") {
		t.Errorf("output = %q, expected confirmation", out.String())
	}
}

func TestShowStatus(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Roots = []string{"/docs", "/notes"}
	cfg.Concurrent = true

	c, out, _, _ := newTestCLI("status")
	c.ConfigSvc = &stubConfigService{cfg: cfg}

	c.Run()

	for _, want := range []string{"/docs, /notes", ".txt", "concurrent (4 workers)", "output.txt"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("status output missing %q: %q", want, out.String())
		}
	}
}

func TestTextProgress(t *testing.T) {
	var buf bytes.Buffer
	p := newTextProgress(&buf)

	p.Start(2)
	p.Advance()
	p.Advance()
	p.Done()

	got := buf.String()
	if !strings.Contains(got, "1/2") || !strings.Contains(got, "2/2") {
		t.Errorf("progress output = %q, expected counter updates", got)
	}
}
