package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/example/annotator/internal/config"
	"github.com/example/annotator/internal/logging"
	"github.com/example/annotator/internal/notify"
	"github.com/example/annotator/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs       *flag.FlagSet
	program  string
	ctx      context.Context
	stdout   io.Writer
	stderr   io.Writer
	config   *config.Config
	loader   *config.Loader
	log      *slog.Logger
	notifier *notify.Notifier
	theme    *theme.Theme

	configPath string
	logLevel   string
	themeName  string
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func (r *root) subcommand(name string) string {
	return strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
}

func newRoot(ctx context.Context) *root {
	r := &root{
		fs:      flag.NewFlagSet("annotator", flag.ExitOnError),
		program: "annotator",
		ctx:     ctx,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	r.fs.StringVar(&r.configPath, "config", configPathOverride, "configuration file to use instead of the search path")
	r.fs.StringVar(&r.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides the config)")
	r.fs.StringVar(&r.themeName, "theme", "", "decoration theme: "+strings.Join(theme.Names(), ", "))
	r.fs.Usage = usageFunc(r)
	return r
}

// setup loads the configuration and builds the logger, theme and
// notifier the subcommands share.
func (r *root) setup() error {
	r.loader = config.NewLoader(version, r.configPath)
	cfg, err := r.loader.Load()
	if err != nil {
		fmt.Fprintf(r.stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	r.config = cfg

	level := cfg.LogLevel
	if r.logLevel != "" {
		level = r.logLevel
	}
	r.log, err = logging.New(level, r.stderr)
	if err != nil {
		return err
	}
	for _, key := range cfg.Unknown {
		r.log.Warn("unknown config key", "key", key)
	}

	// Precedence: CLI > Env > Config > Default
	if r.themeName == "" {
		r.themeName = os.Getenv("ANNOTATOR_THEME")
	}
	if r.themeName != "" {
		cfg.Theme.Name = r.themeName
	}
	th, err := cfg.LoadTheme(theme.NewLoader())
	if err != nil {
		r.log.Warn("failed to load theme, using default", "theme", cfg.Theme.Name, "err", err)
		th = theme.Default()
	}
	r.theme = th

	r.notifier = notify.New(cfg.Notify.Title, r.log)
	r.notifier.Enable(notify.EventCapture, cfg.Notify.Capture)
	r.notifier.Enable(notify.EventSave, cfg.Notify.Save)
	r.notifier.Enable(notify.EventCopy, cfg.Notify.Copy)
	return nil
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if err := r.setup(); err != nil {
		return err
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "annotate":
		cmd, err = parseAnnotateCmd(subArgs, r)
	case "replay":
		cmd, err = parseReplayCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{root: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	r := newRoot(ctx)
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
