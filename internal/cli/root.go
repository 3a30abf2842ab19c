// Package cli implements the codeinput command line tool.
package cli

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-codeinput/internal/prompt"
	"github.com/goliatone/go-codeinput/pkg/codeinput"
	"github.com/goliatone/go-codeinput/pkg/config"
)

//go:embed defaults.yaml
var defaultConfig []byte

// Option customises the command tree, mostly for tests.
type Option func(*app)

// WithIO replaces the standard streams.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(a *app) {
		if in != nil {
			a.in = in
		}
		if out != nil {
			a.out = out
		}
		if errOut != nil {
			a.errOut = errOut
		}
	}
}

// WithPromptDriver replaces the terminal prompts used by edit.
func WithPromptDriver(driver prompt.Driver) Option {
	return func(a *app) {
		a.driver = driver
	}
}

// WithCreateFile replaces how --output files are opened.
func WithCreateFile(create func(path string) (io.WriteCloser, error)) Option {
	return func(a *app) {
		if create != nil {
			a.create = create
		}
	}
}

type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	driver prompt.Driver
	create func(path string) (io.WriteCloser, error)

	configPath string
	logLevel   string

	logger   *slog.Logger
	config   *config.Config
	registry *codeinput.Registry
}

// Execute runs the command tree against the process arguments.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand assembles the codeinput command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &app{in: os.Stdin, out: os.Stdout, errOut: os.Stderr, create: createFile}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	root := &cobra.Command{
		Use:   "codeinput",
		Short: "Render code-input widgets to static HTML",
		Long: `codeinput sets up code-input widgets outside the browser: it builds the
editable surface and the highlighted overlay for single snippets, for every
<code-input> element of an HTML page, or interactively.

Templates come from a YAML or JSON file passed with --config; without one a
built-in set is registered (code, prism, plain, limited, rainbow).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.prepare()
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "template configuration file (YAML or JSON)")
	root.PersistentFlags().StringVarP(&a.logLevel, "log-level", "l", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		a.renderCommand(),
		a.pageCommand(),
		a.previewCommand(),
		a.editCommand(),
		a.templatesCommand(),
	)
	return root
}

func (a *app) prepare() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(a.logLevel))); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", a.logLevel, err)
	}
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	reg, err := a.newRegistry(cfg)
	if err != nil {
		return err
	}
	a.config, a.registry = cfg, reg
	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	if a.configPath == "" {
		return config.Parse(defaultConfig, "built-in defaults")
	}
	return config.LoadFile(a.configPath)
}

func (a *app) newRegistry(cfg *config.Config) (*codeinput.Registry, error) {
	reg := codeinput.NewRegistry(codeinput.WithLogger(a.logger))
	if err := cfg.Apply(reg, config.WithLogger(a.logger)); err != nil {
		return nil, err
	}
	return reg, nil
}

func (a *app) prompts() prompt.Driver {
	if a.driver == nil {
		a.driver = prompt.NewSurveyDriver(a.out)
	}
	return a.driver
}

// readInput reads path, or the input stream when path is "-".
func (a *app) readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(a.in)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// output returns the writer for path, or the output stream when path is
// empty. The returned close func is always safe to call.
func (a *app) output(path string) (io.Writer, func() error, error) {
	if path == "" {
		return a.out, func() error { return nil }, nil
	}
	file, err := a.create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return file, file.Close, nil
}

func createFile(path string) (io.WriteCloser, error) {
	return os.Create(path)
}
