// ABOUTME: Entry point for the coven-notes CLI
// ABOUTME: Migrates the database, loads the note list, then runs one command or an interactive shell

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"

	"github.com/2389/coven-notes/internal/config"
	"github.com/2389/coven-notes/internal/notes"
	"github.com/2389/coven-notes/internal/store"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
                                                 _
  ___ _____   _____ _ __        _ __   ___ | |_ ___  ___
 / __/ _ \ \ / / _ \ '_ \ _____| '_ \ / _ \| __/ _ \/ __|
| (_| (_) \ V /  __/ | | |_____| | | | (_) | ||  __/\__ \
 \___\___/ \_/ \___|_| |_|     |_| |_|\___/ \__\___||___/
`

// exitMigration is the exit status when the schema could not be migrated.
const exitMigration = 2

// getConfigPath returns the path to the notes config file.
// Priority: COVEN_NOTES_CONFIG env var > XDG_CONFIG_HOME/coven/notes.yaml > ~/.config/coven/notes.yaml
func getConfigPath() string {
	if envPath := os.Getenv("COVEN_NOTES_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "notes.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "coven", "notes.yaml")
}

// getDataPath returns the path to the coven data directory.
// Priority: XDG_DATA_HOME/coven > ~/.local/share/coven
func getDataPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "data" // fallback
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "coven")
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "help", "-h", "--help":
		printUsage()
		return
	case "version":
		fmt.Println(version)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := runCommand(ctx, cmd, args)
	if err != nil {
		color.Red("Error: %v\n", err)
		var merr *store.MigrationError
		if errors.As(err, &merr) {
			os.Exit(exitMigration)
		}
		os.Exit(1)
	}
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()
	fmt.Println("Usage: coven-notes <command> [args]")
	fmt.Println()
	yellow.Println("Commands:")
	fmt.Println("  list                              List all notes, newest first")
	fmt.Println("  count                             Show how many notes exist")
	fmt.Println("  add <title> <note>                Create a note")
	fmt.Println("  edit <id> <title> <note>          Replace a note's title and text")
	fmt.Println("  delete <id>                       Delete a note")
	fmt.Println("  share <id> [--html]               Print a note as share text (or HTML)")
	fmt.Println("  shell                             Interactive session")
	fmt.Println("  migrate                           Migrate the database and print its schema version")
	fmt.Println("  version                           Print the version")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  COVEN_NOTES_CONFIG    Config file (default: ~/.config/coven/notes.yaml)")
	fmt.Println()
}

// runCommand performs startup (config, logger, migration, initial load) and
// then dispatches cmd. No command runs unless migration succeeded.
func runCommand(ctx context.Context, cmd string, args []string) error {
	cfg, err := config.LoadOrDefault(getConfigPath(), filepath.Join(getDataPath(), "notes.db"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging, os.Stderr)
	slog.SetDefault(logger)

	a, err := openApp(ctx, cfg, os.Stdout, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.run(ctx, cmd, args, os.Stdin)
}

// app wires the store and the coordinator for one CLI invocation.
type app struct {
	store   store.NoteStore
	svc     *notes.Service
	version int
	out     io.Writer
	logger  *slog.Logger
}

// openApp opens the database, migrates it and loads the note list.
func openApp(ctx context.Context, cfg *config.Config, out io.Writer, logger *slog.Logger) (*app, error) {
	if logger == nil {
		logger = slog.Default()
	}

	st, err := store.OpenSQLiteStore(cfg.Database.Driver, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	v, err := st.Migrate(ctx)
	if err != nil {
		logger.Error("schema migration failed; refusing to start", "error", err)
		st.Close()
		return nil, err
	}

	svc := notes.NewService(st, logger)
	if err := svc.Load(ctx); err != nil {
		svc.Close()
		st.Close()
		return nil, err
	}

	return &app{
		store:   st,
		svc:     svc,
		version: v,
		out:     out,
		logger:  logger.With("component", "cli"),
	}, nil
}

// Close releases the coordinator and the database.
func (a *app) Close() {
	a.svc.Close()
	if err := a.store.Close(); err != nil {
		a.logger.Error("closing store", "error", err)
	}
}
