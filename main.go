package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/adrg/xdg"

	app "github.com/rocketscienceinc/tictactoe-timetravel/internal"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/config"
)

const logFile = "tictactoe/tictactoe.log"

// main - is the entry point of the application. It initializes the configuration, logger, and runs the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := initConfig()

	out := logOutput(conf)
	defer out.Close()

	logger := initLogger(conf, out)

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// initialize config.
func initConfig() *config.Config {
	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(config.Locate(baseDir))
}

// logOutput - the terminal frontend owns the screen, so its logs go to a state file.
func logOutput(conf *config.Config) io.WriteCloser {
	if conf.Frontend != config.FrontendTerminal {
		return nopCloser{os.Stdout}
	}

	path, err := xdg.StateFile(logFile)
	if err != nil {
		panic(fmt.Errorf("failed to resolve log file: %w", err))
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		panic(fmt.Errorf("failed to open log file: %w", err))
	}

	return file
}

// initialize logger.
func initLogger(conf *config.Config, out io.Writer) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
