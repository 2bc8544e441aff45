package sentiment

import (
	"bytes"
	"encoding/json"
	"time"
)

// UnknownLabel is shown when a response carries no usable label.
const UnknownLabel = "unknown"

// ClassScore is a single entry of a ScoreMap.
type ClassScore struct {
	Class string  `json:"class"`
	Value float64 `json:"value"`
}

// ScoreMap maps class names to scores and keeps first-insertion order.
type ScoreMap []ClassScore

// Get returns the score recorded for class.
func (m ScoreMap) Get(class string) (float64, bool) {
	for _, s := range m {
		if s.Class == class {
			return s.Value, true
		}
	}
	return 0, false
}

// set overwrites an existing class in place or appends a new one.
func (m ScoreMap) set(class string, value float64) ScoreMap {
	for i := range m {
		if m[i].Class == class {
			m[i].Value = value
			return m
		}
	}
	return append(m, ClassScore{Class: class, Value: value})
}

// Classes lists the class names in order.
func (m ScoreMap) Classes() []string {
	out := make([]string, len(m))
	for i, s := range m {
		out[i] = s.Class
	}
	return out
}

// MarshalJSON encodes the map as a JSON object preserving entry order.
func (m ScoreMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Class)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(s.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Result is the canonical, normalized prediction.
// Confidence and every score are percentages in [0,100] rounded to two decimals.
type Result struct {
	Label      *string  `json:"label"`
	Confidence *float64 `json:"confidence"`
	Scores     ScoreMap `json:"scores"`
}

// Analysis is what a successful Analyze call produced.
type Analysis struct {
	RequestID string        `json:"-"`
	Text      string        `json:"text"`
	Result    Result        `json:"result"`
	Display   DisplayState  `json:"-"`
	Language  Language      `json:"language"`
	Elapsed   time.Duration `json:"-"`
}
