package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"yashubustudio/sentiview/sentiment"
)

const barCells = 30

// terminalView renders analyses as text. In quiet mode results are left to
// the JSON writer and only errors are printed.
type terminalView struct {
	out    io.Writer
	errOut io.Writer
	color  bool
	quiet  bool
}

func newTerminalView(out, errOut io.Writer, useColor, quiet bool) *terminalView {
	return &terminalView{out: out, errOut: errOut, color: useColor, quiet: quiet}
}

func colorEnabled(noColor bool, w io.Writer) bool {
	if noColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice == 0 {
		return false
	}
	return color.SupportColor()
}

func (v *terminalView) ShowLoading() {
	if v.quiet {
		return
	}
	fmt.Fprintln(v.errOut, "Analyzing...")
}

func (v *terminalView) ShowError(err error) {
	msg := "Error analyzing text: " + err.Error()
	if errors.Is(err, sentiment.ErrEmptyInput) {
		msg = "Please enter text to analyze."
	}
	if v.color {
		msg = color.Red.Render(msg)
	}
	fmt.Fprintln(v.errOut, msg)
}

func (v *terminalView) ShowResult(state sentiment.DisplayState) {
	if v.quiet {
		return
	}
	fmt.Fprintf(v.out, "Sentiment:  %s\n", v.badge(state))
	fmt.Fprintf(v.out, "%s %s\n", bar(state.BarWidth), state.BarText)
	fmt.Fprintln(v.out, state.ConfidenceText)
	if !state.ShowScores {
		return
	}
	fmt.Fprintln(v.out)
	table := tablewriter.NewWriter(v.out)
	table.SetHeader([]string{"Class", "Score"})
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, line := range state.Scores {
		table.Append([]string{line.DisplayClass, line.Percent + "%"})
	}
	table.Render()
}

// Ready has nothing to restore in a terminal.
func (v *terminalView) Ready() {}

func (v *terminalView) badge(state sentiment.DisplayState) string {
	text := " " + state.Label + " "
	if !v.color {
		return "[" + state.Label + "]"
	}
	switch state.Badge {
	case sentiment.BadgeSuccess:
		return color.New(color.FgWhite, color.BgGreen, color.OpBold).Render(text)
	case sentiment.BadgeDanger:
		return color.New(color.FgWhite, color.BgRed, color.OpBold).Render(text)
	case sentiment.BadgeWarning:
		return color.New(color.FgBlack, color.BgYellow, color.OpBold).Render(text)
	default:
		return color.New(color.FgBlack, color.BgWhite).Render(text)
	}
}

func bar(width float64) string {
	filled := int(math.Round(width / 100 * barCells))
	filled = max(0, min(barCells, filled))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barCells-filled) + "]"
}
