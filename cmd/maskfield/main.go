// Package main is the entry point for the maskfield form demo.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/maskfield/internal/config"
	"github.com/dshills/maskfield/internal/form"
	"github.com/dshills/maskfield/internal/logging"
	"github.com/dshills/maskfield/internal/preset"
	"github.com/dshills/maskfield/internal/tui"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	ConfigPath  string
	LogLevel    string
	LogFile     string
	PrefillPath string
	Format      string
	Output      string
}

const (
	outputJSON    = "json"
	outputMsgpack = "msgpack"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	levelName := cfg.LogLevel
	if opts.LogLevel != "" {
		levelName = opts.LogLevel
	}
	level, ok := logging.ParseLevel(levelName)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", levelName)
		return 1
	}

	builderOpts := []preset.Option{preset.WithBaseDir(configDir(opts.ConfigPath))}

	if opts.Format != "" {
		logger := logging.New(logging.Config{Level: level, Prefix: "maskfield"})
		if err := formatValue(os.Stdout, cfg, opts.Format, logger, builderOpts...); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	// The terminal owns stderr while the form is shown.
	var logOut io.Writer = io.Discard
	if opts.LogFile != "" {
		file, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
			return 1
		}
		defer file.Close()
		logOut = file
	}
	logger := logging.New(logging.Config{Level: level, Output: logOut, Prefix: "maskfield"})

	newForm := func(c *config.Config) (*form.Form, error) {
		return form.New(c, form.WithLogger(logger), form.WithBuilderOptions(builderOpts...))
	}

	f, err := newForm(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.PrefillPath != "" {
		doc, err := os.ReadFile(opts.PrefillPath)
		if err != nil {
			f.Close()
			fmt.Fprintf(os.Stderr, "Error: reading prefill: %v\n", err)
			return 1
		}
		if err := f.Prefill(doc); err != nil {
			f.Close()
			fmt.Fprintf(os.Stderr, "Error: prefill %s: %v\n", opts.PrefillPath, err)
			return 1
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}

	var submitted []byte
	app := tui.NewApp(screen, f,
		tui.WithAppLogger(logger),
		tui.WithSubmit(func(doc []byte, err error) {
			if err == nil {
				submitted = doc
			}
		}),
	)
	defer func() { app.Form().Close() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		_ = screen.PostEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) // best-effort; screen may be gone
	}()

	if opts.ConfigPath != "" {
		go watchConfig(ctx, opts.ConfigPath, screen, logger, newForm)
	}

	runErr := app.Run()
	screen.Fini()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		return 1
	}

	if submitted == nil {
		return 0
	}
	if opts.Output == outputMsgpack {
		packed, err := app.Form().SubmitMsgpack()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if _, err := os.Stdout.Write(packed); err != nil {
			return 1
		}
		return 0
	}
	fmt.Println(string(submitted))
	return 0
}

// watchConfig rebuilds the form on every config change and hands it to the
// UI goroutine through the screen's event queue.
func watchConfig(ctx context.Context, path string, screen tcell.Screen, logger *logging.Logger, newForm func(*config.Config) (*form.Form, error)) {
	logger = logger.WithComponent("watch")
	err := config.Watch(ctx, path, func(cfg *config.Config, err error) {
		if err != nil {
			logger.Warn("reload failed: %v", err)
			return
		}
		f, err := newForm(cfg)
		if err != nil {
			logger.Warn("reload failed: %v", err)
			return
		}
		if err := screen.PostEvent(tcell.NewEventInterrupt(f)); err != nil {
			f.Close()
			logger.Warn("dropping reload: %v", err)
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("config watcher stopped: %v", err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg := config.Default()
	config.ApplyEnv(cfg, os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configDir(path string) string {
	if path == "" {
		return "."
	}
	return filepath.Dir(path)
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to a TOML or YAML form definition")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to a TOML or YAML form definition (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.LogFile, "log-file", "", "Write logs to this file while the form is shown")
	flag.StringVar(&opts.PrefillPath, "prefill", "", "JSON document used to prefill the form")
	flag.StringVar(&opts.Format, "format", "", "Format one value and exit (type=value or field=value)")
	flag.StringVar(&opts.Output, "output", outputJSON, "Submission encoding printed on exit (json, msgpack)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "maskfield - masked input fields in the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: maskfield [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  maskfield                              Show the default form\n")
		fmt.Fprintf(os.Stderr, "  maskfield -c form.toml -prefill a.json Edit a form with initial values\n")
		fmt.Fprintf(os.Stderr, "  maskfield -format date=2024-03-07      Print display and foreign values\n")
		fmt.Fprintf(os.Stderr, "  maskfield -format currency=1234.5\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("maskfield %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.Output {
	case outputJSON, outputMsgpack:
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid output %q (must be json or msgpack)\n", opts.Output)
		os.Exit(1)
	}

	return opts
}
