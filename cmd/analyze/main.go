package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"steam-analysis/internal/client"
	"steam-analysis/internal/config"
	"steam-analysis/internal/domain"
	"steam-analysis/internal/logger"
	"steam-analysis/internal/render"
	"steam-analysis/internal/service"
	"steam-analysis/pkg/taskmanager"

	"go.uber.org/zap"
)

// analyze - разовый запуск: описание из аргументов или stdin, результат в stdout.
func main() {
	envFile := flag.String("env-file", ".env", "Path to .env file")
	gameID := flag.Int("game", -1, "ID of the similar game whose reviews are printed (default: first game)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [description...]\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Reads the description from stdin when no arguments are given.")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.LoadConfig(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:          cfg.LogLevel,
		Encoding:       cfg.LogEncoding,
		OutputPath:     cfg.LogOutput,
		Service:        "analyze-cli",
		StdoutReserved: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	description := strings.Join(flag.Args(), " ")
	if description == "" {
		description, err = readDescription(os.Stdin)
		if err != nil {
			log.Fatal("Failed to read description from stdin", zap.Error(err))
		}
	}

	analysisClient, err := client.NewAnalysisServiceClient(cfg.Analysis.BaseURL, cfg.Analysis.Path, cfg.Analysis.ClientTimeout, log)
	if err != nil {
		log.Fatal("Failed to create analysis service client", zap.Error(err))
	}
	taskManager := taskmanager.New(taskmanager.Config{MaxTasks: 1}, log)
	controller := service.NewRequestController(analysisClient, taskManager, log)

	ctx := context.Background()
	if err := controller.Submit(ctx, description); err != nil {
		if errors.Is(err, domain.ErrEmptyInput) {
			flag.Usage()
			os.Exit(2)
		}
		log.Fatal("Failed to submit description", zap.Error(err))
	}

	state, err := controller.Wait(ctx)
	if err != nil {
		log.Fatal("Failed waiting for analysis result", zap.Error(err))
	}

	if state.Status == domain.StatusSuccess && *gameID >= 0 {
		if err := controller.SelectGame(*gameID); err != nil {
			log.Warn("Failed to select game", zap.Int("game_id", *gameID), zap.Error(err))
		}
	}

	if err := render.Text(os.Stdout, controller.Display()); err != nil {
		log.Fatal("Failed to render result", zap.Error(err))
	}

	if state.Status == domain.StatusError {
		os.Exit(1)
	}
}

func readDescription(r io.Reader) (string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}
