// Package main is the entry point for the Plume editor core.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plumetext/plume/internal/app"
	"github.com/plumetext/plume/internal/config"
	"github.com/plumetext/plume/internal/outline"
	"github.com/plumetext/plume/internal/vfs"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// frameInterval paces the headless frame loop that evaluates auto-save
// and settings reloads.
const frameInterval = 200 * time.Millisecond

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(opts.logLevel),
		Output: os.Stderr,
		Prefix: "plume",
	})

	configPath := opts.configPath
	if configPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot determine config path: %v\n", err)
			return 1
		}
		configPath = p
	}

	store := config.NewStore(&vfs.OSFS{}, configPath)
	settings, err := store.Load()
	if err != nil {
		logger.Warn("config load failed, using defaults: %v", err)
		settings = config.Default()
	}

	session := app.NewSession(settings, app.Options{Logger: logger})

	for _, path := range opts.files {
		// Failures are logged by the session; remaining files still open.
		_, _ = session.OpenFile(path)
	}
	if session.Count() == 0 {
		session.NewDocument()
	}
	printSummary(session)
	logger.Info("ready with %d document(s)", session.Count())

	// Settings changed on disk are applied on the frame loop, keeping
	// all session access on one goroutine.
	updates := make(chan config.Settings, 1)
	watcher, err := config.NewWatcher(store, func(s config.Settings) {
		select {
		case updates <- s:
		default:
		}
	}, config.WithErrorHandler(func(err error) {
		logger.Error("config watch: %v", err)
	}))
	if err != nil {
		logger.Warn("config watching disabled: %v", err)
	} else {
		defer watcher.Close()
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	frames := time.NewTicker(frameInterval)
	defer frames.Stop()

	for {
		select {
		case <-signals:
			logger.Info("shutting down")
			if err := store.Save(session.Settings()); err != nil {
				logger.Warn("saving settings: %v", err)
			}
			return 0
		case s := <-updates:
			session.ApplySettings(s)
			logger.Info("settings reloaded from %s", store.Path())
		case <-frames.C:
			if _, err := session.AutoSaveTick(time.Now()); err != nil {
				logger.Warn("auto-save: %v", err)
			}
		}
	}
}

// printSummary writes each open document's name, line count, and
// declaration outline to stdout, the headless stand-in for the
// editor's navigation panels.
func printSummary(session *app.Session) {
	for _, doc := range session.Documents() {
		header := fmt.Sprintf("%s: %d line(s)", doc.Name(), doc.LineCount())
		if hint := doc.SyntaxHint(); hint != "" {
			header += ", " + hint
		}
		fmt.Println(header)
		for _, entry := range outline.Scan(doc.Text()) {
			fmt.Printf("  %4d  %s\n", entry.Line+1, entry.Text)
		}
	}
}

type cliOptions struct {
	configPath string
	logLevel   string
	files      []string
}

func parseFlags() cliOptions {
	var opts cliOptions
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Plume - text editor core\n\n")
		fmt.Fprintf(os.Stderr, "Usage: plume [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  plume                       Start with an empty document\n")
		fmt.Fprintf(os.Stderr, "  plume notes.md              Open a file\n")
		fmt.Fprintf(os.Stderr, "  plume -c ./plume.toml *.go  Use a specific config file\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Plume %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	opts.files = flag.Args()
	return opts
}
