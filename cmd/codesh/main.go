package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atinylittleshell/codesh/internal/agent"
	"github.com/atinylittleshell/codesh/internal/config"
	"github.com/atinylittleshell/codesh/internal/core"
	"github.com/atinylittleshell/codesh/internal/executor"
	"github.com/atinylittleshell/codesh/internal/model"
	"github.com/atinylittleshell/codesh/internal/render"
	"github.com/atinylittleshell/codesh/internal/repl"
	"github.com/atinylittleshell/codesh/internal/session"
	"github.com/atinylittleshell/codesh/internal/styles"
	"github.com/atinylittleshell/codesh/internal/tools"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

var BUILD_VERSION = "dev"

// errTaskFailed reports a -c task whose error the agent has already printed.
var errTaskFailed = errors.New("task did not complete")

var command = flag.String("c", "", "run a single task and exit")
var modeFlag = flag.String("mode", "", "tool set to use: files or shell")
var modelFlag = flag.String("model", "", "model name (overrides config and CODESH_MODEL)")

var helpFlag = flag.Bool("h", false, "display help information")
var versionFlag = flag.Bool("ver", false, "display build version")

const helpText = `codesh - A natural-language code generation and shell assistant

USAGE:
  codesh [options]

MODES:
  codesh                  Start an interactive session
  codesh -c "task"        Run a single task and exit
  codesh -mode shell      Work with shell commands instead of file tools

CONFIGURATION:
  Settings are read from ~/.codesh/config.yaml, then from OPENAI_API_KEY,
  OPENAI_BASE_URL, CODESH_MODEL, CODESH_MODE and CODESH_LOG_LEVEL, then from
  the flags below. Logs are written to ~/.codesh/codesh.log.

OPTIONS:
`

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if *helpFlag {
		fmt.Print(helpText)
		flag.PrintDefaults()
		return
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, styles.ERROR("codesh: "+err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig(config.NewLoader(zap.NewNop()), core.ConfigFile(), config.Overrides{
		Model: *modelFlag,
		Mode:  *modeFlag,
	})
	if err != nil {
		return err
	}

	logger, err := initializeLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync() // Flush any buffered log entries

	logger.Info("-------- new codesh session --------",
		zap.Any("args", os.Args),
		zap.String("mode", cfg.Mode),
		zap.String("model", cfg.Model))

	gateway, err := model.NewOpenAIGateway(model.OpenAIOptions{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
	}, logger)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	a, err := newAgent(cfg, gateway, cwd, os.Stdout, logger)
	if err != nil {
		return err
	}

	r, err := repl.New(repl.Options{
		Reader: repl.NewLineReader(),
		Agent:  a,
		Out:    os.Stdout,
		Mode:   cfg.Mode,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}

	ctx := context.Background()

	// codesh -c "create a hello world script"
	if *command != "" {
		if err := r.RunOnce(ctx, *command); err != nil {
			logger.Info("task did not complete", zap.Error(err))
			return errTaskFailed
		}
		return nil
	}

	render.RenderWelcome(os.Stdout, render.WelcomeInfo{
		Version: BUILD_VERSION,
		Model:   cfg.Model,
		Mode:    cfg.Mode,
	}, terminalWidth())
	return r.Run(ctx)
}

// loadConfig layers the config file, the environment and the flags.
func loadConfig(loader *config.Loader, path string, overrides config.Overrides) (*config.Config, error) {
	cfg, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Apply(overrides)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newAgent wires the session, executor and tool registry for cfg.Mode.
func newAgent(cfg *config.Config, gateway model.Gateway, dir string, out io.Writer, logger *zap.Logger) (*agent.Agent, error) {
	sess, err := session.New(dir)
	if err != nil {
		return nil, err
	}

	registry, err := tools.ForMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	renderer := render.New(out, terminalWidth)
	exec := executor.New(out, logger.Named("executor"),
		executor.WithSpinnerInterval(cfg.SpinnerInterval))

	return agent.New(agent.Options{
		Mode:     cfg.Mode,
		Gateway:  gateway,
		Registry: registry,
		Renderer: renderer,
		Logger:   logger.Named("agent"),
		MaxSteps: cfg.MaxSteps,
		Env: &tools.Env{
			Session:         sess,
			Gateway:         gateway,
			Executor:        exec,
			Renderer:        renderer,
			Logger:          logger.Named("tools"),
			ScaffoldTimeout: cfg.ScaffoldTimeout,
		},
	})
}

func initializeLogger(level string) (*zap.Logger, error) {
	logLevel, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil || level == "" {
		logLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	if BUILD_VERSION == "dev" {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	if os.Getenv("CODESH_CLEAN_LOG") == "1" {
		os.Remove(core.LogFile())
	}

	// Logs only go to file so they never interleave with agent output.
	// Use `tail -f ~/.codesh/codesh.log` to monitor logs in real-time.
	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{
		core.LogFile(),
	}

	return loggerConfig.Build()
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // Default fallback
	}
	return width
}
