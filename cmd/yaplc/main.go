package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/nucleron/yaplc/internal/cli"
)

// envFile provides defaults for the YAPLC_* environment variables.
const envFile = ".env"

// main is the entrypoint for the yaplc command.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run loads the optional env file and executes the command line.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	if err := loadEnv(envFile); err != nil {
		return &cli.ExitError{Code: cli.ExitUsage, Message: err.Error()}
	}
	return cli.Run(ctx, args, outW, errW)
}

// loadEnv applies path without overriding variables that are already set.
// A missing file is not an error.
func loadEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}
