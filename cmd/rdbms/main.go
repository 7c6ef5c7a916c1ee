// rdbms - a small relational query engine over .tbl files
// Main entry point for the interactive shell

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/moojink/RDBMS/internal/cli"
	"github.com/moojink/RDBMS/internal/config"
	"github.com/moojink/RDBMS/internal/logger"
	"github.com/moojink/RDBMS/pkg/catalog"
	"github.com/moojink/RDBMS/pkg/sql"
	"github.com/moojink/RDBMS/pkg/storage"
)

var (
	buildDate = "dev"
	cfgFile   string
	dataDir   string
	logLevel  string
	display   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rdbms",
		Short: "rdbms - a small relational query engine",
		Long: `rdbms keeps typed tables in memory, loads and stores them as
.tbl text files, and answers select queries with joins, computed
columns and where filters.

Start the interactive shell:
  rdbms

Run commands from a script:
  rdbms exec -f queries.sql`,
		Run: runShell,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "directory holding .tbl files (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&display, "display", "", "result display: csv or table (overrides config)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("rdbms %s (built %s)\n", cli.Version, buildDate)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "init [directory]",
		Short: "Create a data directory with a default config file",
		Args:  cobra.MaximumNArgs(1),
		Run:   initDataDir,
	})

	var scriptFile string
	execCmd := &cobra.Command{
		Use:   "exec [command...]",
		Short: "Run commands without the interactive shell",
		Long: `Run each argument as one command, or every ;-terminated command in
the file given with -f ("-" reads stdin). Exits with status 1 if any
command reports an error.`,
		Run: func(cmd *cobra.Command, args []string) {
			os.Exit(runExec(scriptFile, args))
		},
	}
	execCmd.Flags().StringVarP(&scriptFile, "file", "f", "", "script file to run")
	rootCmd.AddCommand(execCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration, applies flag overrides and builds a session.
func setup() (*config.Config, *logger.Logger, *sql.Session) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if dataDir != "" {
		cfg.Storage.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if display != "" {
		cfg.Shell.Display = display
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	if err := config.ValidateDataDir(cfg.Storage.DataDir); err != nil {
		log.Error("Data directory validation failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Run 'rdbms init %s' to create it\n", cfg.Storage.DataDir)
		os.Exit(1)
	}

	cat := catalog.New(storage.NewFileStore(cfg.Storage.DataDir), log)
	return cfg, log, sql.NewSession(cat, log)
}

func runShell(cmd *cobra.Command, args []string) {
	cfg, log, session := setup()
	defer func() { _ = log.Sync() }()

	log.Debug("Starting rdbms", "version", cli.Version, "data_dir", cfg.Storage.DataDir)

	repl := cli.NewREPL(cfg, session, log)
	if err := repl.Run(); err != nil {
		log.Error("REPL error", "error", err)
		os.Exit(1)
	}
}

func runExec(scriptFile string, args []string) int {
	cfg, log, session := setup()
	defer func() { _ = log.Sync() }()

	runner := cli.NewRunner(session, os.Stdout, cfg.Shell.Display, log)

	var (
		failed int
		err    error
	)
	switch {
	case scriptFile != "":
		var src io.Reader = os.Stdin
		if scriptFile != "-" {
			f, openErr := os.Open(scriptFile)
			if openErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", openErr)
				return 1
			}
			defer f.Close()
			src = f
		}
		failed, err = runner.RunScript(src)
	case len(args) > 0:
		failed, err = runner.Run(args)
	default:
		fmt.Fprintln(os.Stderr, "Error: give commands as arguments or a script with -f")
		return 1
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if failed > 0 {
		return 1
	}
	return 0
}

func initDataDir(cmd *cobra.Command, args []string) {
	dir := "./data"
	if len(args) > 0 {
		dir = args[0]
	}

	fmt.Printf("Initializing data directory: %s\n", dir)
	cfgPath, err := config.InitDataDir(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Config file: %s\n", cfgPath)
	fmt.Printf("Start the shell with: rdbms --config %s\n", cfgPath)
}
