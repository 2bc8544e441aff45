package app

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"runtime"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"yashubustudio/sentiview/internal/logging"
	"yashubustudio/sentiview/sentiment"
)

const (
	analyzeLabel = "Analyze Sentiment"
	loadingLabel = "Analyzing..."
)

var dimColor = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x80}

type uiState struct {
	analyzer *sentiment.Analyzer
	client   *sentiment.Client
	cfg      sentiment.Config
	cfgPath  string

	w           fyne.Window
	input       *submitEntry
	analyzeBtn  *widget.Button
	settingsBtn *widget.Button
	spinner     *widget.ProgressBarInfinite
	status      *widget.Label
	statusBind  binding.String
	log         *widget.Entry

	result     *fyne.Container
	dim        *canvas.Rectangle
	badgeBg    *canvas.Rectangle
	badgeText  *canvas.Text
	bar        *widget.ProgressBar
	barText    string
	confidence *widget.Label
	scoresBox  *fyne.Container
	scoreList  *fyne.Container
	scroll     *container.Scroll
}

func buildUI(a fyne.App, cfg sentiment.Config, cfgPath string, logBind binding.String) (*uiState, error) {
	u := &uiState{cfg: cfg, cfgPath: cfgPath}
	u.client = sentiment.NewClient(cfg, logging.New("client"))
	analyzer, err := sentiment.NewAnalyzer(u.client, u, cfg, logging.New("analyzer"))
	if err != nil {
		return nil, fmt.Errorf("create analyzer: %w", err)
	}
	u.analyzer = analyzer

	u.w = a.NewWindow("Sentiment Analysis")
	u.statusBind = binding.NewString()
	_ = u.statusBind.Set("Ready")

	u.input = newSubmitEntry(runtime.GOOS, u.onAnalyze)
	u.input.SetPlaceHolder(fmt.Sprintf("Enter text to analyze (%s to submit)", shortcutHint(runtime.GOOS)))

	u.analyzeBtn = widget.NewButtonWithIcon(analyzeLabel, theme.ConfirmIcon(), u.onAnalyze)
	u.analyzeBtn.Importance = widget.HighImportance
	u.settingsBtn = widget.NewButtonWithIcon("Settings", theme.SettingsIcon(), u.openSettings)
	u.spinner = widget.NewProgressBarInfinite()
	u.spinner.Stop()
	u.spinner.Hide()
	u.status = widget.NewLabelWithData(u.statusBind)

	u.badgeBg = canvas.NewRectangle(theme.DisabledColor())
	u.badgeBg.CornerRadius = 6
	u.badgeText = canvas.NewText(sentiment.UnknownLabel, color.White)
	u.badgeText.TextStyle = fyne.TextStyle{Bold: true}
	badge := container.NewStack(u.badgeBg, container.NewPadded(u.badgeText))

	u.bar = widget.NewProgressBar()
	u.bar.Max = 100
	u.bar.TextFormatter = func() string { return u.barText }
	u.confidence = widget.NewLabel("")
	u.scoreList = container.NewVBox()
	u.scoresBox = container.NewVBox(
		widget.NewLabelWithStyle("All scores", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		u.scoreList,
	)
	body := container.NewVBox(
		container.NewHBox(widget.NewLabel("Sentiment:"), badge),
		u.bar,
		u.confidence,
		u.scoresBox,
	)
	u.dim = canvas.NewRectangle(dimColor)
	u.dim.Hide()
	u.result = container.NewStack(body, u.dim)
	u.result.Hide()

	u.log = widget.NewEntryWithData(logBind)
	u.log.MultiLine = true
	u.log.Wrapping = fyne.TextWrapWord
	u.log.SetPlaceHolder("Log")
	u.log.Disable()

	page := container.NewVBox(
		widget.NewLabelWithStyle("Text", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		u.input,
		container.NewHBox(u.analyzeBtn, u.settingsBtn),
		u.spinner,
		u.status,
		widget.NewSeparator(),
		u.result,
	)
	u.scroll = container.NewVScroll(page)
	logPane := container.NewBorder(
		widget.NewLabelWithStyle("Log", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil, u.log,
	)
	split := container.NewVSplit(u.scroll, logPane)
	split.Offset = 0.75

	u.w.SetContent(split)
	u.w.Resize(fyne.NewSize(760, 720))
	u.w.Canvas().Focus(u.input)
	return u, nil
}

// onAnalyze is the single submit action behind the button and the shortcut.
func (u *uiState) onAnalyze() {
	text := u.input.Text
	if strings.TrimSpace(text) == "" {
		u.showError(sentiment.ErrEmptyInput)
		return
	}
	if u.analyzer.Busy() {
		return
	}
	go u.runAnalysis(text)
}

func (u *uiState) runAnalysis(text string) {
	analysis, err := u.analyzer.Analyze(context.Background(), text)
	switch {
	case errors.Is(err, sentiment.ErrBusy), errors.Is(err, sentiment.ErrEmptyInput):
		return
	case err != nil:
		u.setStatus("Error")
		return
	}
	u.setStatus(statusText(analysis))
}

func (u *uiState) setStatus(text string) {
	_ = u.statusBind.Set(text)
}

// ShowLoading implements sentiment.ResultView.
func (u *uiState) ShowLoading() { fyne.Do(u.applyLoading) }

// ShowError implements sentiment.ResultView.
func (u *uiState) ShowError(err error) { fyne.Do(func() { u.showError(err) }) }

// ShowResult implements sentiment.ResultView.
func (u *uiState) ShowResult(state sentiment.DisplayState) {
	fyne.Do(func() { u.applyResult(state) })
}

// Ready implements sentiment.ResultView.
func (u *uiState) Ready() { fyne.Do(u.applyReady) }

func (u *uiState) applyLoading() {
	u.analyzeBtn.SetText(loadingLabel)
	u.analyzeBtn.SetIcon(nil)
	u.analyzeBtn.Disable()
	u.settingsBtn.Disable()
	u.spinner.Show()
	u.spinner.Start()
	u.dim.Show()
	u.setStatus(loadingLabel)
}

func (u *uiState) applyReady() {
	u.analyzeBtn.SetText(analyzeLabel)
	u.analyzeBtn.SetIcon(theme.ConfirmIcon())
	u.analyzeBtn.Enable()
	u.settingsBtn.Enable()
	u.spinner.Stop()
	u.spinner.Hide()
	u.dim.Hide()
}

func (u *uiState) showError(err error) {
	if errors.Is(err, sentiment.ErrEmptyInput) {
		dialog.ShowInformation("Nothing to analyze", "Please enter text to analyze.", u.w)
		u.w.Canvas().Focus(u.input)
		return
	}
	dialog.ShowError(fmt.Errorf("Error analyzing text: %w", err), u.w)
}

func (u *uiState) applyResult(state sentiment.DisplayState) {
	u.badgeText.Text = state.Label
	u.badgeText.Refresh()
	u.badgeBg.FillColor = badgeColor(state.Badge)
	u.badgeBg.Refresh()

	u.barText = state.BarText
	u.bar.SetValue(state.BarWidth)
	u.confidence.SetText(state.ConfidenceText)

	objects := make([]fyne.CanvasObject, 0, len(state.Scores))
	for _, line := range state.Scores {
		objects = append(objects, widget.NewLabel(scoreLineText(line)))
	}
	u.scoreList.Objects = objects
	u.scoreList.Refresh()
	if state.ShowScores {
		u.scoresBox.Show()
	} else {
		u.scoresBox.Hide()
	}

	u.dim.Hide()
	u.result.Show()
	u.scroll.ScrollToBottom()
}

func (u *uiState) openSettings() {
	baseEntry := widget.NewEntry()
	baseEntry.SetText(u.cfg.BaseURL)
	pathEntry := widget.NewEntry()
	pathEntry.SetText(u.cfg.PredictPath)
	timeoutEntry := widget.NewEntry()
	timeoutEntry.SetText(strconv.Itoa(u.cfg.TimeoutSeconds))

	items := []*widget.FormItem{
		{Text: "Server URL", Widget: baseEntry},
		{Text: "Predict path", Widget: pathEntry},
		{Text: "Timeout (s)", Widget: timeoutEntry, HintText: "negative disables the timeout"},
	}
	dialog.ShowForm("Settings", "Save", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		if err := u.applySettings(baseEntry.Text, pathEntry.Text, timeoutEntry.Text); err != nil {
			dialog.ShowError(err, u.w)
		}
	}, u.w)
}

// applySettings validates and persists new connection settings.
func (u *uiState) applySettings(baseURL, predictPath, timeout string) error {
	cfg := u.cfg.Clone()
	cfg.BaseURL = strings.TrimSpace(baseURL)
	cfg.PredictPath = strings.TrimSpace(predictPath)
	seconds, err := strconv.Atoi(strings.TrimSpace(timeout))
	if err != nil {
		return fmt.Errorf("timeout must be a whole number of seconds: %w", err)
	}
	cfg.TimeoutSeconds = seconds
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := sentiment.SaveConfig(u.cfgPath, cfg); err != nil {
		return err
	}
	u.cfg = cfg
	u.client.Endpoint = cfg.Endpoint()
	u.analyzer.UpdateConfig(cfg)
	u.setStatus("Settings saved")
	return nil
}
