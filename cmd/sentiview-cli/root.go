package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"yashubustudio/sentiview/internal/logging"
	"yashubustudio/sentiview/sentiment"
)

type rootOptions struct {
	configPath  string
	baseURL     string
	predictPath string
	timeout     int
	logLevel    string
	logFormat   string

	cfg sentiment.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "sentiview-cli",
		Short: "Sentiment analysis from the terminal",
		Long: "sentiview-cli posts text to a sentiment prediction endpoint, normalizes\n" +
			"whatever response shape comes back and prints the result.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.resolve(cmd)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "config file (.json, .yaml or .yml; default config.json)")
	f.StringVar(&opts.baseURL, "base-url", "", "prediction server base URL")
	f.StringVar(&opts.predictPath, "predict-path", "", "prediction endpoint path")
	f.IntVar(&opts.timeout, "timeout", 0, "request timeout in seconds (negative disables)")
	f.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	f.StringVar(&opts.logFormat, "log-format", "", "text or json")

	cmd.AddCommand(newAnalyzeCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	return cmd
}

// resolve builds the effective configuration: file, then .env and the
// environment, then flags.
func (o *rootOptions) resolve(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, err := sentiment.LoadConfig(o.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = o.baseURL
	}
	if flags.Changed("predict-path") {
		cfg.PredictPath = o.predictPath
	}
	if flags.Changed("timeout") {
		cfg.TimeoutSeconds = o.timeout
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.Init(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, cmd.ErrOrStderr())
	o.cfg = cfg
	return nil
}
