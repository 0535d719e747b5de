// Package cmd wires the bump CLI: flag parsing, configuration, logging, and
// the release workflow behind a single root command.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bcomnes/bump/internal/config"
	"github.com/bcomnes/bump/internal/gitops"
	"github.com/bcomnes/bump/internal/manifest"
	"github.com/bcomnes/bump/internal/release"
	"github.com/bcomnes/bump/internal/semver"
)

var (
	flagMajor     bool
	flagMinor     bool
	flagDryRun    bool
	flagMessage   string
	flagAutomatic bool
	flagVerbose   bool
)

// errBatchFailed signals that every directory in the batch failed; the
// per-directory errors were already printed.
var errBatchFailed = fmt.Errorf("all directories failed")

var rootCmd = &cobra.Command{
	Use:   "bump [directories...]",
	Short: "Bump semantic versions in the manifest, commit, and tag",
	Long: `bump reconciles the version in a Cargo-style TOML manifest with the newest
v<major>.<minor>.<patch> tag, decides the next version, updates the manifest
and its lock file, and commits and tags the release.

With no directories, the current directory is processed. Each directory is
handled independently; one failure does not stop the rest.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBump,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if err != errBatchFailed {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Version = Version

	rootCmd.Flags().BoolVarP(&flagMajor, "major", "M", false, "bump major version (X.0.0)")
	rootCmd.Flags().BoolVarP(&flagMinor, "minor", "m", false, "bump minor version (x.Y.0)")
	rootCmd.Flags().BoolVarP(&flagDryRun, "dry-run", "n", false, "preview changes without applying")
	rootCmd.Flags().StringVar(&flagMessage, "message", "", "commit message to use")
	rootCmd.Flags().BoolVarP(&flagAutomatic, "automatic", "a", false, "generate automatic commit message")
	rootCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "debug logging")

	rootCmd.MarkFlagsMutuallyExclusive("major", "minor")
	rootCmd.MarkFlagsMutuallyExclusive("message", "automatic")

	_ = viper.BindPFlag("verbose", rootCmd.Flags().Lookup("verbose"))

	// Diagnostics text is computed once here, not lazily at help time.
	if path, err := logFilePath(); err == nil {
		rootCmd.Long += "\n\nLogs are written to: " + path
	}
}

func initConfig() {
	viper.SetConfigName(".bump")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}

	viper.SetEnvPrefix("BUMP")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

func logFilePath() (string, error) {
	return xdg.DataFile("bump/logs/bump.log")
}

// setupLogging appends structured logs to the user's data directory, the
// same trail every invocation shares.
func setupLogging(verbose bool) (*slog.Logger, io.Closer, error) {
	path, err := logFilePath()
	if err != nil {
		return nil, nil, fmt.Errorf("resolving log path: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, f, nil
}

func runBump(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	logger, closer, err := setupLogging(cfg.Verbose)
	if err != nil {
		return err
	}
	defer closer.Close()

	dirs := args
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	git := &gitops.Git{
		CommitterName:  cfg.CommitterName,
		CommitterEmail: cfg.CommitterEmail,
	}
	workflow := &release.Workflow{
		Manifest:  &manifest.Store{Filename: cfg.Manifest},
		Tags:      git,
		Tree:      git,
		Prompt:    release.InteractivePrompter{},
		Bump:      semver.GranularityFromFlags(flagMajor, flagMinor),
		DryRun:    flagDryRun,
		Message:   flagMessage,
		Automatic: flagAutomatic,
		Out:       cmd.OutOrStdout(),
		Log:       logger,
	}
	runner := &release.Runner{
		Workflow: workflow,
		Out:      cmd.OutOrStdout(),
		ErrOut:   cmd.ErrOrStderr(),
	}

	logger.Info("starting bump", "granularity", workflow.Bump.String(), "dry_run", flagDryRun, "dirs", dirs)

	if result := runner.Run(dirs); result.Failed() {
		return errBatchFailed
	}
	return nil
}
