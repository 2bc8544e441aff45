package sentiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// ResultView is the surface an Analyzer reports to.
type ResultView interface {
	// ShowLoading disables the trigger, shows a busy indicator and dims the previous result.
	ShowLoading()
	// ShowError surfaces a failure. The result display is left alone.
	ShowError(err error)
	// ShowResult applies a display state and brings the result into view.
	ShowResult(state DisplayState)
	// Ready restores the trigger. It runs after every analysis that reached ShowLoading.
	Ready()
}

// Analyzer runs one analysis at a time: predict, normalize, render.
type Analyzer struct {
	predictor Predictor
	view      ResultView

	cfgMu sync.RWMutex
	cfg   Config

	inflight *semaphore.Weighted
	logger   *slog.Logger
}

// NewAnalyzer wires a predictor to a view.
func NewAnalyzer(predictor Predictor, view ResultView, cfg Config, logger *slog.Logger) (*Analyzer, error) {
	if predictor == nil {
		return nil, errors.New("predictor is required")
	}
	if view == nil {
		return nil, errors.New("result view is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cfg.ApplyDefaults()
	return &Analyzer{
		predictor: predictor,
		view:      view,
		cfg:       cfg,
		inflight:  semaphore.NewWeighted(1),
		logger:    logger,
	}, nil
}

// Config returns a copy of the current configuration.
func (a *Analyzer) Config() Config {
	a.cfgMu.RLock()
	defer a.cfgMu.RUnlock()
	return a.cfg.Clone()
}

// UpdateConfig replaces the configuration used by later analyses.
func (a *Analyzer) UpdateConfig(cfg Config) {
	cfg.ApplyDefaults()
	a.cfgMu.Lock()
	a.cfg = cfg
	a.cfgMu.Unlock()
}

// Busy reports whether an analysis is in flight.
func (a *Analyzer) Busy() bool {
	if a.inflight.TryAcquire(1) {
		a.inflight.Release(1)
		return false
	}
	return true
}

// Analyze sends text to the predictor and renders the outcome on the view.
// Blank text is rejected with ErrEmptyInput before anything else happens, and
// a call made while another is in flight returns ErrBusy.
func (a *Analyzer) Analyze(ctx context.Context, text string) (analysis Analysis, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		a.view.ShowError(ErrEmptyInput)
		return Analysis{}, ErrEmptyInput
	}
	if !a.inflight.TryAcquire(1) {
		return Analysis{}, ErrBusy
	}
	defer a.inflight.Release(1)

	cfg := a.Config()
	requestID := RequestIDFrom(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = WithRequestID(ctx, requestID)
	}
	logger := a.logger.With(slog.String("request_id", requestID))

	a.view.ShowLoading()
	defer a.view.Ready()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("analysis panicked", slog.Any("panic", r))
			analysis = Analysis{}
			err = &AnalyzeError{Kind: ErrParse, Message: fmt.Sprint(r)}
			a.view.ShowError(err)
		}
	}()

	if timeout := cfg.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	lang := DetectLanguage(text)
	if lang.Suspicious() {
		logger.Warn("input does not look like English; results may be unreliable",
			slog.String("language", lang.Name))
	}

	start := time.Now()
	raw, err := a.predictor.Predict(ctx, text)
	elapsed := time.Since(start)
	if err != nil {
		return Analysis{}, a.fail(logger, a.describe(err, cfg))
	}
	if msg, ok := raw.ErrorMessage(); ok {
		return Analysis{}, a.fail(logger, &AnalyzeError{Kind: ErrLogic, Message: msg})
	}

	result := NormalizeWith(raw, cfg.Aliases.WithDefaults())
	state := BuildDisplayState(result)
	a.view.ShowResult(state)

	logger.Info("analysis complete",
		slog.String("label", state.Label),
		slog.String("confidence", state.BarText),
		slog.Duration("elapsed", elapsed),
	)
	return Analysis{
		RequestID: requestID,
		Text:      text,
		Result:    result,
		Display:   state,
		Language:  lang,
		Elapsed:   elapsed,
	}, nil
}

func (a *Analyzer) fail(logger *slog.Logger, err *AnalyzeError) error {
	logger.Error("analysis failed", slog.Any("kind", err.Kind), slog.String("error", err.Error()))
	a.view.ShowError(err)
	return err
}

// describe turns a predictor error into an AnalyzeError with a readable message.
func (a *Analyzer) describe(err error, cfg Config) *AnalyzeError {
	ae := asAnalyzeError(err, ErrTransport)
	if errors.Is(err, context.DeadlineExceeded) && ae.Message == "" {
		ae.Message = fmt.Sprintf("no response from %s within %s", cfg.Endpoint(), cfg.Timeout())
	}
	return ae
}
