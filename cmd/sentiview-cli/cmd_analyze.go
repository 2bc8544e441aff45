package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"yashubustudio/sentiview/internal/logging"
	"yashubustudio/sentiview/sentiment"
)

type analyzeOptions struct {
	input   string
	jsonOut bool
	noColor bool
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Analyze the sentiment of a text",
		Long: "Analyze sends the text to the prediction endpoint. The text comes from the\n" +
			"arguments, from --input, or from stdin when it is piped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, root, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "read the text from a file (- for stdin)")
	f.BoolVar(&opts.jsonOut, "json", false, "print the normalized result as JSON")
	f.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, root *rootOptions, opts *analyzeOptions) error {
	text, err := readText(cmd, args, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	view := newTerminalView(out, cmd.ErrOrStderr(), colorEnabled(opts.noColor, out), opts.jsonOut)
	client := sentiment.NewClient(root.cfg, logging.New("client"))
	analyzer, err := sentiment.NewAnalyzer(client, view, root.cfg, logging.New("analyzer"))
	if err != nil {
		return err
	}

	analysis, err := analyzer.Analyze(cmd.Context(), text)
	if err != nil {
		return reportedError{err: err}
	}
	if analysis.Language.Suspicious() {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: input looks like %s; the model expects English\n", analysis.Language.Name)
	}
	if opts.jsonOut {
		return writeJSON(out, analysis)
	}
	return nil
}

func readText(cmd *cobra.Command, args []string, opts *analyzeOptions) (string, error) {
	switch {
	case len(args) > 0 && opts.input != "":
		return "", errors.New("pass the text as arguments or with --input, not both")
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case opts.input == "-":
		return sentiment.ReadInput(cmd.InOrStdin())
	case opts.input != "":
		return sentiment.ReadInputFile(opts.input)
	case stdinPiped(cmd.InOrStdin()):
		return sentiment.ReadInput(cmd.InOrStdin())
	default:
		return "", nil
	}
}

func stdinPiped(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return true
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}

type jsonResult struct {
	Text       string             `json:"text"`
	Label      *string            `json:"label"`
	Confidence *float64           `json:"confidence"`
	Scores     sentiment.ScoreMap `json:"scores"`
	Badge      string             `json:"badge"`
	Language   string             `json:"language,omitempty"`
	RequestID  string             `json:"requestId"`
	ElapsedMS  int64              `json:"elapsedMs"`
}

func writeJSON(w io.Writer, a sentiment.Analysis) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonResult{
		Text:       a.Text,
		Label:      a.Result.Label,
		Confidence: a.Result.Confidence,
		Scores:     a.Result.Scores,
		Badge:      string(a.Display.Badge),
		Language:   a.Language.Code,
		RequestID:  a.RequestID,
		ElapsedMS:  a.Elapsed.Milliseconds(),
	})
}
