package main

import (
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"yashubustudio/sentiview/internal/app"
)

func main() {
	configPath := flag.String("config", app.DefaultConfigPath, "path to config.json or config.yaml")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("load .env", slog.Any("error", err))
	}
	if err := app.Run(*configPath); err != nil {
		slog.Error("sentiview failed", slog.Any("error", err))
		app.ShowFatal(err)
		os.Exit(1)
	}
}
