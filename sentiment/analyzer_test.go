package sentiment

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type predictFunc func(ctx context.Context, text string) (RawResponse, error)

func (f predictFunc) Predict(ctx context.Context, text string) (RawResponse, error) {
	return f(ctx, text)
}

type recordingView struct {
	mu     sync.Mutex
	calls  []string
	errs   []error
	states []DisplayState

	onResult func(DisplayState)
}

func (v *recordingView) record(call string) {
	v.mu.Lock()
	v.calls = append(v.calls, call)
	v.mu.Unlock()
}

func (v *recordingView) ShowLoading() { v.record("loading") }

func (v *recordingView) ShowError(err error) {
	v.record("error")
	v.mu.Lock()
	v.errs = append(v.errs, err)
	v.mu.Unlock()
}

func (v *recordingView) ShowResult(state DisplayState) {
	v.record("result")
	v.mu.Lock()
	v.states = append(v.states, state)
	v.mu.Unlock()
	if v.onResult != nil {
		v.onResult(state)
	}
}

func (v *recordingView) Ready() { v.record("ready") }

func (v *recordingView) Calls() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.calls...)
}

func respond(body string) predictFunc {
	return func(context.Context, string) (RawResponse, error) {
		return ParseRawResponse([]byte(body))
	}
}

func newTestAnalyzer(t *testing.T, p Predictor, view ResultView, cfg Config) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(p, view, cfg, nil)
	require.NoError(t, err)
	return a
}

func TestNewAnalyzerRequiresCollaborators(t *testing.T) {
	_, err := NewAnalyzer(nil, &recordingView{}, Config{}, nil)
	assert.Error(t, err)
	_, err = NewAnalyzer(respond(`{}`), nil, Config{}, nil)
	assert.Error(t, err)
}

func TestAnalyzeSuccess(t *testing.T) {
	var sent string
	view := &recordingView{}
	a := newTestAnalyzer(t, predictFunc(func(_ context.Context, text string) (RawResponse, error) {
		sent = text
		return ParseRawResponse([]byte(`{"scores":{"0":0.3,"1":0.7}}`))
	}), view, Config{})

	analysis, err := a.Analyze(context.Background(), "  loved it  \n")
	require.NoError(t, err)

	assert.Equal(t, "loved it", sent)
	assert.Equal(t, []string{"loading", "result", "ready"}, view.Calls())
	assert.Equal(t, "positive", analysis.Display.Label)
	assert.Equal(t, BadgeSuccess, analysis.Display.Badge)
	assert.Equal(t, "70.00%", analysis.Display.BarText)
	assert.Equal(t, 70.0, *analysis.Result.Confidence)
	assert.NotEmpty(t, analysis.RequestID)
	require.Len(t, view.states, 1)
	assert.Equal(t, analysis.Display, view.states[0])
}

func TestAnalyzeEmptyInputNeverCallsPredictor(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t "} {
		called := false
		view := &recordingView{}
		a := newTestAnalyzer(t, predictFunc(func(context.Context, string) (RawResponse, error) {
			called = true
			return RawResponse{}, nil
		}), view, Config{})

		_, err := a.Analyze(context.Background(), text)
		assert.ErrorIs(t, err, ErrEmptyInput)
		assert.False(t, called)
		assert.Equal(t, []string{"error"}, view.Calls())
		assert.False(t, a.Busy())
	}
}

func TestAnalyzeFailuresAlwaysFinish(t *testing.T) {
	tests := []struct {
		name      string
		predictor predictFunc
		kind      error
		message   string
	}{
		{
			name:      "error field",
			predictor: respond(`{"error":"No text provided"}`),
			kind:      ErrLogic,
			message:   "No text provided",
		},
		{
			name: "transport",
			predictor: func(context.Context, string) (RawResponse, error) {
				return RawResponse{}, &AnalyzeError{Kind: ErrTransport, Message: "Server error: 500"}
			},
			kind:    ErrTransport,
			message: "Server error: 500",
		},
		{
			name: "plain error",
			predictor: func(context.Context, string) (RawResponse, error) {
				return RawResponse{}, errors.New("connection reset")
			},
			kind:    ErrTransport,
			message: "connection reset",
		},
		{
			name: "panic",
			predictor: func(context.Context, string) (RawResponse, error) {
				panic("decoder exploded")
			},
			kind:    ErrParse,
			message: "decoder exploded",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := &recordingView{}
			a := newTestAnalyzer(t, tt.predictor, view, Config{})

			_, err := a.Analyze(context.Background(), "text")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, []string{"loading", "error", "ready"}, view.Calls())
			assert.False(t, a.Busy())
		})
	}
}

func TestAnalyzeRecoversFromViewPanic(t *testing.T) {
	view := &recordingView{onResult: func(DisplayState) { panic("render failed") }}
	a := newTestAnalyzer(t, respond(`{"label":"positive"}`), view, Config{})

	_, err := a.Analyze(context.Background(), "text")
	assert.ErrorIs(t, err, ErrParse)
	assert.Equal(t, []string{"loading", "result", "error", "ready"}, view.Calls())
}

func TestAnalyzeRejectsReentry(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	view := &recordingView{}
	a := newTestAnalyzer(t, predictFunc(func(context.Context, string) (RawResponse, error) {
		close(entered)
		<-release
		return ParseRawResponse([]byte(`{"label":"neutral","confidence":0.5}`))
	}), view, Config{})

	done := make(chan error, 1)
	go func() {
		_, err := a.Analyze(context.Background(), "first")
		done <- err
	}()
	<-entered

	assert.True(t, a.Busy())
	_, err := a.Analyze(context.Background(), "second")
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, []string{"loading"}, view.Calls())

	close(release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("first analysis did not finish")
	}
	assert.Equal(t, []string{"loading", "result", "ready"}, view.Calls())
}

func TestAnalyzeAppliesTimeout(t *testing.T) {
	var deadline time.Time
	var hasDeadline bool
	a := newTestAnalyzer(t, predictFunc(func(ctx context.Context, _ string) (RawResponse, error) {
		deadline, hasDeadline = ctx.Deadline()
		return RawResponse{}, context.DeadlineExceeded
	}), &recordingView{}, Config{BaseURL: "http://sentiment.test", TimeoutSeconds: 5})

	start := time.Now()
	_, err := a.Analyze(context.Background(), "text")
	require.True(t, hasDeadline)
	assert.WithinDuration(t, start.Add(5*time.Second), deadline, time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, "no response from http://sentiment.test/api/predict within 5s", err.Error())
}

func TestAnalyzeWithoutTimeout(t *testing.T) {
	hasDeadline := true
	a := newTestAnalyzer(t, predictFunc(func(ctx context.Context, _ string) (RawResponse, error) {
		_, hasDeadline = ctx.Deadline()
		return ParseRawResponse([]byte(`{}`))
	}), &recordingView{}, Config{TimeoutSeconds: -1})

	analysis, err := a.Analyze(context.Background(), "text")
	require.NoError(t, err)
	assert.False(t, hasDeadline)
	assert.Equal(t, UnknownLabel, analysis.Display.Label)
}

func TestAnalyzeUsesConfiguredAliases(t *testing.T) {
	a := newTestAnalyzer(t, respond(`{"verdict":"negative","confidence":0.2}`), &recordingView{}, Config{})
	analysis, err := a.Analyze(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, UnknownLabel, analysis.Display.Label)

	cfg := a.Config()
	cfg.Aliases.Label = []string{"verdict"}
	a.UpdateConfig(cfg)
	analysis, err = a.Analyze(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "negative", analysis.Display.Label)
	assert.Equal(t, BadgeDanger, analysis.Display.Badge)
}

func TestAnalyzeLogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	a, err := NewAnalyzer(respond(`{"label":"positive"}`), &recordingView{}, Config{}, logger)
	require.NoError(t, err)

	_, err = a.Analyze(WithRequestID(context.Background(), "abc-123"), "text")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "request_id=abc-123")
	assert.Contains(t, buf.String(), "analysis complete")
}
