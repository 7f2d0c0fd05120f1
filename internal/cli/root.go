package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"Encrypty/internal/api"
	"Encrypty/internal/config"
	"Encrypty/internal/errors"
	"Encrypty/internal/log"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version is set by main.go
var Version = "dev"

// rootCmd is the base command when called without subcommands
var rootCmd = &cobra.Command{
	Use:   "encrypty",
	Short: "Client for the Encrypty file encryption service",
	Long: `Encrypty submits files or a server-side directory to the Encrypty
backend for encryption or decryption and reports the outcome.

Without a subcommand the graphical interface is started.`,
	Version:           Version,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
}

// Global flags
var (
	configPath string
	backendURL string
	logLevel   string
	logFormat  string
	verbose    bool
)

// cfg is the configuration after flags were applied.
var cfg = config.Default()

// logCloser is set when logs go to a file.
var logCloser io.Closer

// subcommands recognized by Execute; anything else starts the GUI.
var subcommands = map[string]bool{
	"upload": true, "directory": true, "download": true, "serve": true, "version": true,
	"help": true, "--help": true, "-h": true, "--version": true,
}

// Execute runs the CLI application.
// Returns true if CLI mode was activated, false if GUI should run instead.
func Execute(version string) bool {
	Version = version
	rootCmd.Version = version

	if !subcommands[firstCommand(os.Args[1:])] {
		return false
	}

	// Ctrl+C cancels the in-flight request instead of killing the process
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var shown *renderedError
		if !errors.As(err, &shown) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
	return true
}

// firstCommand returns the first argument that is not a persistent flag or
// a persistent flag's value. Help and version flags count as commands.
func firstCommand(args []string) string {
	flags := rootCmd.PersistentFlags()
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return ""
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			return arg
		}
		if subcommands[arg] {
			return arg
		}
		if strings.Contains(arg, "=") {
			continue
		}

		var flag *pflag.Flag
		if name, ok := strings.CutPrefix(arg, "--"); ok {
			flag = flags.Lookup(name)
		} else if len(arg) == 2 {
			flag = flags.ShorthandLookup(arg[1:])
		}
		if flag == nil {
			return ""
		}
		if flag.NoOptDefVal == "" {
			i++
		}
	}
	return ""
}

// LoadConfig reads the configuration file at path, or the default location
// when path is empty. Used by the GUI host, which has no flags.
func LoadConfig(path string) (config.Config, error) {
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

func init() {
	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/encrypty/config.yaml)")
	flags.StringVarP(&backendURL, "backend", "b", "", "Backend base URL (overrides backend_url)")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", "", "Log format: text or json")
	flags.BoolVar(&verbose, "verbose", false, "Log to stderr at debug level")
}

// setup loads the configuration, applies flag overrides and enables logging.
func setup(cmd *cobra.Command, args []string) error {
	c, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		c.BackendURL = backendURL
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		c.LogFormat = logFormat
	}
	if verbose {
		c.LogLevel = "debug"
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	level, _ := log.ParseLevel(cfg.LogLevel)
	format := log.ParseFormat(cfg.LogFormat)
	switch {
	case cfg.LogFile != "":
		closer, err := log.EnableFileLogging(cfg.LogFile, level, format)
		if err != nil {
			return errors.NewFileError("open log", cfg.LogFile, err)
		}
		logCloser = closer
	case verbose || flags.Changed("log-level") || cmd.Name() == "serve":
		log.EnableConsoleLogging(level, format)
	}
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
}

// newClient creates a backend client for the configured URL.
func newClient() (*api.Client, error) {
	return api.NewClient(cfg.BackendURL, api.WithLogger(log.GetLogger()))
}

// renderedError marks a failure the reporter already displayed.
type renderedError struct {
	err error
}

func (e *renderedError) Error() string { return e.err.Error() }
func (e *renderedError) Unwrap() error { return e.err }
