package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"fsbot/cmd/fsbot/chat"
	"fsbot/internal/config"
	"fsbot/internal/engine"
	"fsbot/internal/files"
	"fsbot/internal/logging"
)

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fsbot",
	Short: "fsbot - a chat assistant for everyday file operations",
	Long: `fsbot turns plain sentences into file operations.

Ask it to create, delete, find or read files in the current directory:

  create file notes.txt
  find Python files
  read notes.txt

Run without arguments to start the interactive chat interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip logger init for interactive mode (it has its own UI)
		if cmd == cmd.Root() {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractiveChat(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Starting directory (default: workspace.root from config)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: .fsbot/config.yaml)")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads .env, the config file and the command line overrides,
// then starts category logging.
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if workspace != "" {
		cfg.Workspace.Root = workspace
	}
	if verbose {
		cfg.Logging.DebugMode = true
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := logging.Initialize(cfg.LogsDir(), logging.Options{
		DebugMode:  cfg.Logging.DebugMode,
		Level:      cfg.Logging.Level,
		JSONFormat: cfg.Logging.JSONFormat,
		Categories: cfg.Logging.Categories,
	}); err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	logging.Boot("fsbot %s starting (config=%s root=%s)", cfg.Version, path, cfg.Workspace.Root)
	return cfg, nil
}

// newEngine opens the workspace and wraps it in an engine. The returned
// close func releases the filesystem watcher and index.
func newEngine(ctx context.Context, cfg *config.Config) (*engine.Engine, func(), error) {
	fsys, err := files.NewLocal(ctx, cfg.FileOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("open workspace: %w", err)
	}
	eng, err := engine.New(fsys, nil)
	if err != nil {
		fsys.Close()
		return nil, nil, err
	}
	return eng, fsys.Close, nil
}

// runInteractiveChat runs the TUI until the user quits. Quitting by key or
// by interrupt both exit with status 0.
func runInteractiveChat(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logging.CloseAll()

	eng, closeFS, err := newEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFS()

	m, err := chat.InitChat(chat.Config{
		Engine:         eng,
		Theme:          cfg.UI.Theme,
		RenderMarkdown: cfg.UI.RenderMarkdown,
		WordWrap:       cfg.UI.WordWrap,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("chat: %w", err)
	}
	logging.Session("session %s ended after %d turns", eng.State().ID(), eng.State().Turns())
	return nil
}
