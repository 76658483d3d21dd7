package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/wonky/internal/config"
	"github.com/sandeepkv93/wonky/internal/console"
	"github.com/sandeepkv93/wonky/internal/logging"
	"github.com/sandeepkv93/wonky/internal/session"
	"github.com/sandeepkv93/wonky/internal/storage"
	"github.com/sandeepkv93/wonky/internal/update"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	driver     string
	dbPath     string
	logLevel   string
	exitDelay  int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "wonky [gui|cli|test]",
		Short: "Wonky, a chatty task tracker",
		Long: `Wonky keeps a list of todos, deadlines and events and answers short
commands such as "todo read book", "mark 1" or "list".

Modes:
  gui   chat window in the terminal (default)
  cli   plain line-by-line console
  test  console without persistence`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "wonky.toml", "path to the TOML config file")
	flags.StringVar(&opts.driver, "storage", "", "storage driver: sqlite or yaml")
	flags.StringVar(&opts.dbPath, "db", "", "path of the task storage file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.IntVar(&opts.exitDelay, "exit-delay-ms", -1, "pause after the farewell before exiting")
	return cmd
}

func resolveConfig(cmd *cobra.Command, opts *rootOptions, args []string) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if len(args) == 1 {
		mode, ok := config.ParseMode(args[0])
		if !ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "unknown mode %q, starting the chat window\n", args[0])
		}
		cfg.Mode = mode
	}
	if opts.driver != "" {
		cfg.Storage.Driver = opts.driver
	}
	if opts.dbPath != "" {
		cfg.Storage.Path = opts.dbPath
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.exitDelay >= 0 {
		cfg.ExitDelayMS = opts.exitDelay
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, opts *rootOptions, args []string) error {
	cfg, err := resolveConfig(cmd, opts, args)
	if err != nil {
		return err
	}

	logger, closer, err := logging.Open(cfg.Logging(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, cleanup, err := openSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("starting", "mode", cfg.Mode, "storage", cfg.Storage.Driver, "tasks", len(s.Tasks()))
	if cfg.Mode == config.ModeGUI {
		return runChat(ctx, s, cmd.InOrStdin(), cmd.OutOrStdout())
	}
	return console.Run(ctx, s, cmd.InOrStdin(), cmd.OutOrStdout())
}

func openSession(ctx context.Context, cfg config.Config, logger *log.Logger) (*session.Session, func(), error) {
	opts := session.Options{Logger: logger, ExitDelay: cfg.ExitDelay()}
	cleanup := func() {}
	if cfg.Persistent() {
		repo, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		opts.Repository = repo
		cleanup = func() {
			if err := repo.Close(); err != nil {
				logger.Error("close storage", "err", err)
			}
		}
	}
	s := session.New(opts)
	if err := s.Load(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	return s, cleanup, nil
}

func runChat(ctx context.Context, s *session.Session, in io.Reader, out io.Writer) error {
	program := tea.NewProgram(
		update.NewModel(ctx, s),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	final, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(update.Model); ok && m.LastError != nil {
		return m.LastError
	}
	return nil
}
