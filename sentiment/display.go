package sentiment

import (
	"fmt"
	"math"
	"sort"

	"github.com/samber/lo"
)

// BadgeStyle is the visual style of the sentiment badge.
type BadgeStyle string

const (
	BadgeSuccess   BadgeStyle = "success"
	BadgeDanger    BadgeStyle = "danger"
	BadgeWarning   BadgeStyle = "warning"
	BadgeSecondary BadgeStyle = "secondary"
)

var badgeStyles = map[string]BadgeStyle{
	"positive": BadgeSuccess,
	"negative": BadgeDanger,
	"neutral":  BadgeWarning,
}

// BadgeFor picks the badge style for a label.
func BadgeFor(label string) BadgeStyle {
	if style, ok := badgeStyles[foldLabel(label)]; ok {
		return style
	}
	return BadgeSecondary
}

// ScoreLine is one row of the sorted score list.
type ScoreLine struct {
	Class        string
	DisplayClass string
	Value        float64
	Percent      string
}

// DisplayState is everything a view needs to render a result.
type DisplayState struct {
	Label          string
	Badge          BadgeStyle
	BarWidth       float64
	BarText        string
	ConfidenceText string
	Scores         []ScoreLine
	ShowScores     bool
}

// BuildDisplayState maps a canonical result onto display values.
func BuildDisplayState(res Result) DisplayState {
	label := lo.FromPtrOr(res.Label, UnknownLabel)
	width := clampPercent(lo.FromPtr(res.Confidence))
	pct := FormatPercent(width)

	lines := lo.Map(res.Scores, func(s ClassScore, _ int) ScoreLine {
		return ScoreLine{
			Class:        s.Class,
			DisplayClass: DisplayClass(s.Class),
			Value:        s.Value,
			Percent:      FormatPercent(s.Value),
		}
	})
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Value > lines[j].Value
	})

	return DisplayState{
		Label:          label,
		Badge:          BadgeFor(label),
		BarWidth:       width,
		BarText:        pct + "%",
		ConfidenceText: fmt.Sprintf("Confidence: %s%%", pct),
		Scores:         lines,
		ShowScores:     len(lines) > 0,
	}
}

// FormatPercent renders a value as a percentage string with two decimals.
// Values in (0, 1.01] are read as probabilities; NaN renders as 0.
func FormatPercent(v float64) string {
	if math.IsNaN(v) {
		v = 0
	}
	return fmt.Sprintf("%.2f", clampPercent(rescale(v)))
}

// FormatPercentPtr is FormatPercent with nil treated as 0.
func FormatPercentPtr(v *float64) string {
	if v == nil {
		return FormatPercent(0)
	}
	return FormatPercent(*v)
}
