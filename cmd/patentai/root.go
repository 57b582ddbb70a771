package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/csheth/patentai/internal/config"
	"github.com/csheth/patentai/internal/ideafile"
	"github.com/csheth/patentai/internal/logging"
	"github.com/csheth/patentai/internal/search"
	"github.com/csheth/patentai/internal/tui"
	"github.com/csheth/patentai/internal/version"
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	configPath string
	endpoint   string
	logLevel   string
	logFile    string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	var (
		noAltScreen bool
		ideaFile    string
	)

	root := &cobra.Command{
		Use:   "patentai",
		Short: "PatentAI Analyst terminal client",
		Long: `Describe an invention and PatentAI Analyst finds conceptually similar
patents, then compares your idea with any of them.

Without a command the interactive analyst starts in the current terminal.`,
		Version:       version.Full(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts, noAltScreen, ideaFile)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&opts.endpoint, "endpoint", "", "base URL of the patent search service")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file")

	root.Flags().BoolVar(&noAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")
	root.Flags().StringVar(&ideaFile, "idea-file", "", "pre-fill the composer from a .txt, .md or .pdf file")

	root.AddCommand(
		newAnalyzeCmd(opts),
		newFixtureServerCmd(opts),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// load resolves file, environment and flag settings, in increasing priority.
func (o *globalOptions) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.API.BaseURL = o.endpoint
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = o.logFile
	}
	config.ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

func newSearchClient(cfg *config.Config) (*search.HTTPClient, error) {
	return search.New(search.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Logger:  logging.Named("search"),
	})
}

func runTUI(cmd *cobra.Command, opts *globalOptions, noAltScreen bool, ideaPath string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("patentai needs an interactive terminal; use 'patentai analyze' for scripted runs")
	}
	cfg, err := opts.load(cmd)
	if err != nil {
		return err
	}
	// The program owns the terminal, so logs only go to a file.
	if cfg.Log.File != "" {
		if _, err := logging.Initialize(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File}); err != nil {
			return err
		}
		defer logging.Sync()
	}
	logger := logging.L()

	client, err := newSearchClient(cfg)
	if err != nil {
		return err
	}

	var idea string
	if ideaPath != "" {
		idea, err = ideafile.Load(ideaPath)
		if err != nil {
			return err
		}
	}

	programOpts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if cfg.UI.UseAltScreen() && !noAltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	logger.Info("starting analyst", zap.String("endpoint", client.Endpoint()))
	program := tea.NewProgram(
		tui.New(tui.Config{
			Search:             client,
			Endpoint:           client.Endpoint(),
			RequestTimeout:     cfg.API.Timeout,
			AnalysisDelay:      cfg.UI.AnalysisDelay,
			TypewriterInterval: cfg.UI.RevealInterval(),
			InitialIdea:        idea,
			Logger:             logging.Named("tui"),
		}),
		programOpts...,
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "patentai %s\n", version.Full())
		},
	}
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write a configuration file with the default settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "patentai.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	})
	return configCmd
}
