package app

import (
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"

	"yashubustudio/sentiview/internal/logging"
	"yashubustudio/sentiview/sentiment"
)

const (
	fyneAppID         = "yashubustudio.sentiview"
	DefaultConfigPath = "config.json"
)

// Run loads configuration and starts the desktop UI.
func Run(configPath string) error {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	created, err := sentiment.EnsureConfigFile(configPath)
	if err != nil {
		return err
	}
	cfg, err := sentiment.ResolveConfig(configPath)
	if err != nil {
		return err
	}

	a := fyneapp.NewWithID(fyneAppID)
	logBind := binding.NewString()
	capture := newLogCapture(logBind, logLineLimit)
	capture.start()
	logging.Init(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, os.Stderr, capture)

	logger := logging.New("app")
	if created {
		logger.Info("wrote default config", slog.String("path", configPath))
	}
	logger.Info("starting", slog.String("endpoint", cfg.Endpoint()), slog.Duration("timeout", cfg.Timeout()))

	u, err := buildUI(a, cfg, configPath, logBind)
	if err != nil {
		return err
	}
	u.w.ShowAndRun()
	return nil
}

// ShowFatal opens a window reporting err and blocks until it is closed.
func ShowFatal(err error) {
	a := fyneapp.NewWithID(fyneAppID)
	w := a.NewWindow("Sentiment Analysis")
	msg := widget.NewLabel(err.Error())
	msg.Wrapping = fyne.TextWrapWord
	w.SetContent(container.NewBorder(nil, widget.NewButton("Quit", a.Quit), nil, nil, msg))
	w.Resize(fyne.NewSize(480, 200))
	w.ShowAndRun()
}
