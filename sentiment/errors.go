package sentiment

import "errors"

var (
	// ErrEmptyInput rejects blank text before any request is made.
	ErrEmptyInput = errors.New("please enter text to analyze")
	// ErrBusy is returned while another analysis is in flight.
	ErrBusy = errors.New("analysis already in progress")

	ErrTransport = errors.New("transport error")
	ErrLogic     = errors.New("prediction error")
	ErrParse     = errors.New("parse error")
)

// AnalyzeError is a failed analysis. Message is what users see; errors.Is
// matches both Kind and the wrapped cause.
type AnalyzeError struct {
	Kind    error
	Message string
	Err     error
}

func (e *AnalyzeError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	case e.Kind != nil:
		return e.Kind.Error()
	default:
		return "analysis failed"
	}
}

func (e *AnalyzeError) Unwrap() []error {
	var errs []error
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// asAnalyzeError keeps AnalyzeErrors as they are and files anything else
// under kind.
func asAnalyzeError(err error, kind error) *AnalyzeError {
	var ae *AnalyzeError
	if errors.As(err, &ae) {
		return ae
	}
	return &AnalyzeError{Kind: kind, Err: err}
}
