// Package cli provides the command-line interface with injectable io.Writer for testing.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mcdonaldj/textgather/internal/adapters/collectsvc"
	"github.com/mcdonaldj/textgather/internal/adapters/osfs"
	"github.com/mcdonaldj/textgather/internal/aggregate"
	"github.com/mcdonaldj/textgather/internal/config"
	"github.com/mcdonaldj/textgather/internal/ports"
)

// ConfigService provides configuration operations for the CLI.
type ConfigService interface {
	Load() (*config.Config, error)
	Save(cfg *config.Config) error
	ConfigPath() string
	DefaultConfig() *config.Config
}

// CLI represents the command-line interface with injectable dependencies.
type CLI struct {
	Out     io.Writer // Standard output
	Err     io.Writer // Standard error
	Version string    // Application version
	Args    []string  // Command arguments (like os.Args)

	// Exit function for testability (defaults to os.Exit)
	Exit func(code int)

	// Injectable dependencies (nil means use defaults)
	ConfigSvc  ConfigService
	CollectSvc ports.CollectorService

	// Progress reporter for the run command (nil means a text counter on Err)
	Progress ports.Progress

	// Color functions (can be disabled for testing)
	green  func(a ...interface{}) string
	yellow func(a ...interface{}) string
	cyan   func(a ...interface{}) string
	gray   func(a ...interface{}) string
	red    func(a ...interface{}) string
}

// New creates a new CLI with default settings.
func New(version string) *CLI {
	return &CLI{
		Out:     os.Stdout,
		Err:     os.Stderr,
		Version: version,
		Args:    os.Args,
		Exit:    os.Exit,
		green:   color.New(color.FgGreen, color.Bold).SprintFunc(),
		yellow:  color.New(color.FgYellow).SprintFunc(),
		cyan:    color.New(color.FgCyan).SprintFunc(),
		gray:    color.New(color.FgHiBlack).SprintFunc(),
		red:     color.New(color.FgRed).SprintFunc(),
	}
}

// NewForTesting creates a CLI configured for testing (no colors, captured output).
func NewForTesting(out, errOut io.Writer, args []string) *CLI {
	noColor := func(a ...interface{}) string { return fmt.Sprint(a...) }
	return &CLI{
		Out:      out,
		Err:      errOut,
		Version:  "test",
		Args:     args,
		Exit:     func(code int) {},
		Progress: ports.NopProgress{},
		green:    noColor,
		yellow:   noColor,
		cyan:     noColor,
		gray:     noColor,
		red:      noColor,
	}
}

// defaultConfigService wraps the config package functions.
type defaultConfigService struct{}

func (d *defaultConfigService) Load() (*config.Config, error) { return config.Load() }
func (d *defaultConfigService) Save(cfg *config.Config) error { return cfg.Save() }
func (d *defaultConfigService) ConfigPath() string            { return config.ConfigPath() }
func (d *defaultConfigService) DefaultConfig() *config.Config { return config.DefaultConfig() }

// Helper methods to get the service or default
func (c *CLI) configSvc() ConfigService {
	if c.ConfigSvc != nil {
		return c.ConfigSvc
	}
	return &defaultConfigService{}
}

func (c *CLI) collectSvc() ports.CollectorService {
	if c.CollectSvc != nil {
		return c.CollectSvc
	}
	return collectsvc.New(osfs.New())
}

func (c *CLI) progress() ports.Progress {
	if c.Progress != nil {
		return c.Progress
	}
	return newTextProgress(c.Err)
}

// Run executes the CLI with the configured arguments.
func (c *CLI) Run() {
	if len(c.Args) < 2 {
		fmt.Fprintln(c.Out, "No command specified. Use 'textgather help' for usage.")
		return
	}

	switch c.Args[1] {
	case "run":
		c.RunCollect()
	case "init":
		c.InitConfig()
	case "status":
		c.ShowStatus()
	case "version", "-v", "--version":
		fmt.Fprintf(c.Out, "textgather v%s\n", c.Version)
	case "help", "-h", "--help":
		c.PrintUsage()
	default:
		fmt.Fprintf(c.Err, "Unknown command: %s\n", c.Args[1])
		c.PrintUsage()
		c.Exit(1)
	}
}

// PrintUsage prints the help message.
func (c *CLI) PrintUsage() {
	fmt.Fprintln(c.Out, `textgather - Text File Aggregator

Usage:
  textgather                               Launch interactive wizard
  textgather ui                            Launch interactive wizard
  textgather run [dir ...] [flags]         Collect matching files into one output file
  textgather status                        Show effective configuration
  textgather init                          Create default config file
  textgather version, -v                   Show version
  textgather help, -h                      Show this help

Run flags:
  --ext=.txt          File extension to match (case-insensitive)
  --out=FILE          Output file (default from config)
  --log=FILE          Failure log file (default from config)
  --concurrent        Read files on a worker pool
  --sequential        Read files one at a time, in order
  --workers=N         Worker pool size (default 4)

Config: ~/.textgather/config.yaml`)
}

// parseRunFlags applies positional directories and --flags on top of cfg.
func (c *CLI) parseRunFlags(cfg *config.Config, args []string) error {
	var roots []string
	for _, arg := range args {
		switch {
		case arg == "--concurrent":
			cfg.Concurrent = true
		case arg == "--sequential":
			cfg.Concurrent = false
		case strings.HasPrefix(arg, "--ext="):
			cfg.Extension = strings.TrimPrefix(arg, "--ext=")
		case strings.HasPrefix(arg, "--out="):
			cfg.Output = strings.TrimPrefix(arg, "--out=")
		case strings.HasPrefix(arg, "--log="):
			cfg.Log = strings.TrimPrefix(arg, "--log=")
		case strings.HasPrefix(arg, "--workers="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--workers="))
			if err != nil {
				return fmt.Errorf("invalid --workers value: %q", strings.TrimPrefix(arg, "--workers="))
			}
			cfg.MaxWorkers = n
		case strings.HasPrefix(arg, "--"):
			return fmt.Errorf("unknown flag: %s", arg)
		default:
			roots = append(roots, arg)
		}
	}
	if len(roots) > 0 {
		cfg.Roots = roots
	}
	return nil
}

// RunCollect runs the collection command.
func (c *CLI) RunCollect() {
	cfgSvc := c.configSvc()
	svc := c.collectSvc()

	cfg, err := cfgSvc.Load()
	if err != nil {
		fmt.Fprintf(c.Err, "Error loading config: %v\n", err)
		c.Exit(1)
		return
	}

	if err := c.parseRunFlags(cfg, c.Args[2:]); err != nil {
		fmt.Fprintf(c.Err, "Error: %v\n", err)
		c.Exit(1)
		return
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(c.Err, "Error: %v\n", err)
		c.Exit(1)
		return
	}

	mode := "sequential"
	if cfg.Concurrent {
		mode = fmt.Sprintf("concurrent, %d workers", cfg.MaxWorkers)
	}
	fmt.Fprintf(c.Out, "%s Collecting %s files from %d directories (%s)...\n",
		c.cyan("=>"), cfg.Extension, len(cfg.Roots), mode)

	summary, err := svc.Collect(context.Background(), cfg, c.progress())
	if err != nil {
		if errors.Is(err, aggregate.ErrNoMatches) {
			fmt.Fprintf(c.Err, "No files with extension %s produced any content in the given directories.\n", cfg.Extension)
		} else {
			fmt.Fprintf(c.Err, "Error: %v\n", err)
		}
		c.Exit(1)
		return
	}

	fmt.Fprintf(c.Out, "%s Collected %s from %s into %s %s\n",
		c.green("*"),
		c.yellow(aggregate.FormatSize(summary.Bytes)),
		fmt.Sprintf("%d files", summary.Blocks),
		summary.OutputPath,
		c.gray(fmt.Sprintf("(%d matched)", summary.FilesFound)))
	if summary.Blocks < summary.FilesFound {
		fmt.Fprintf(c.Out, "%s %d files skipped, see %s\n",
			c.yellow("!"), summary.FilesFound-summary.Blocks, cfg.Log)
	}
}

// InitConfig creates the default config file.
func (c *CLI) InitConfig() {
	svc := c.configSvc()
	cfg := svc.DefaultConfig()
	if err := svc.Save(cfg); err != nil {
		fmt.Fprintf(c.Err, "Error saving config: %v\n", err)
		c.Exit(1)
		return
	}
	fmt.Fprintf(c.Out, "Created config at %s\n", svc.ConfigPath())
}

// ShowStatus shows the effective configuration.
func (c *CLI) ShowStatus() {
	svc := c.configSvc()

	cfg, err := svc.Load()
	if err != nil {
		fmt.Fprintf(c.Err, "Error loading config: %v\n", err)
		c.Exit(1)
		return
	}

	mode := "sequential"
	if cfg.Concurrent {
		mode = fmt.Sprintf("concurrent (%d workers)", cfg.MaxWorkers)
	}

	fmt.Fprintln(c.Out, "textgather status:")
	fmt.Fprintf(c.Out, "  Roots:     %s\n", strings.Join(cfg.Roots, ", "))
	fmt.Fprintf(c.Out, "  Extension: %s\n", cfg.Extension)
	fmt.Fprintf(c.Out, "  Mode:      %s\n", mode)
	fmt.Fprintf(c.Out, "  Output:    %s\n", cfg.Output)
	fmt.Fprintf(c.Out, "  Log:       %s\n", cfg.Log)
	fmt.Fprintf(c.Out, "  Config:    %s\n", svc.ConfigPath())
}
