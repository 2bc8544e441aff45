package sentiment

import (
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

// probabilityCeiling is the upper bound of values treated as probabilities.
// It sits slightly above 1 to absorb float noise.
const probabilityCeiling = 1.01

var fallbackLabels = map[string]string{
	"0": "negative",
	"1": "positive",
}

// Normalize reconciles a raw response into the canonical Result using the
// default key aliases. It never fails; malformed input yields empty fields.
func Normalize(raw RawResponse) Result {
	return NormalizeWith(raw, defaultKeyAliases())
}

// NormalizeWith is Normalize with a custom alias table.
func NormalizeWith(raw RawResponse, aliases KeyAliases) Result {
	var (
		label         string
		hasLabel      bool
		confidence    float64
		hasConfidence bool
	)
	if v, ok := raw.Lookup(aliases.Label); ok {
		label, hasLabel = labelValue(v)
	}
	if v, ok := raw.Lookup(aliases.Confidence); ok {
		confidence, hasConfidence = numericValue(v)
	}
	scores := rawScores(raw, aliases.Scores)

	if !hasLabel {
		label, hasLabel = argmax(scores)
	}
	classKey := label
	if hasLabel {
		label = RemapLabel(label)
	}
	if !hasConfidence && len(scores) > 0 {
		confidence, hasConfidence = inferConfidence(scores, label, classKey)
	}

	res := Result{Scores: make(ScoreMap, 0, len(scores))}
	for _, s := range scores {
		res.Scores = append(res.Scores, ClassScore{Class: s.Class, Value: NormalizePercent(s.Value)})
	}
	if hasLabel {
		res.Label = lo.ToPtr(label)
	}
	if hasConfidence {
		res.Confidence = lo.ToPtr(NormalizePercent(confidence))
	}
	return res
}

// rawScores collects the numeric entries of the first scores alias that holds
// an object. Values are left unscaled.
func rawScores(raw RawResponse, aliases []string) ScoreMap {
	v, ok := raw.Lookup(aliases)
	if !ok || !v.IsObject() {
		return nil
	}
	var out ScoreMap
	v.ForEach(func(k, item gjson.Result) bool {
		if f, ok := numericValue(item); ok {
			out = out.set(k.String(), f)
		}
		return true
	})
	return out
}

// argmax returns the class with the largest value; the first one wins ties.
func argmax(scores ScoreMap) (string, bool) {
	if len(scores) == 0 {
		return "", false
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Value > best.Value {
			best = s
		}
	}
	return best.Class, true
}

func inferConfidence(scores ScoreMap, label, classKey string) (float64, bool) {
	if v, ok := scores.Get(label); ok {
		return v, true
	}
	if v, ok := scores.Get(classKey); ok {
		return v, true
	}
	return scores[0].Value, true
}

// RemapLabel replaces numeric class ids with their names from the fallback table.
func RemapLabel(label string) string {
	if _, err := strconv.ParseFloat(strings.TrimSpace(label), 64); err != nil {
		return label
	}
	if mapped, ok := fallbackLabels[label]; ok {
		return mapped
	}
	return label
}

// DisplayClass resolves a score key for display.
func DisplayClass(class string) string {
	if mapped, ok := fallbackLabels[class]; ok {
		return mapped
	}
	return class
}

// NormalizePercent rescales probabilities to percent, clamps to [0,100]
// and rounds to two decimals.
func NormalizePercent(v float64) float64 {
	return round2(clampPercent(rescale(v)))
}

func rescale(v float64) float64 {
	if v > 0 && v <= probabilityCeiling {
		return v * 100
	}
	return v
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
