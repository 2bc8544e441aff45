package app

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2/theme"

	"yashubustudio/sentiview/sentiment"
)

func scoreLineText(line sentiment.ScoreLine) string {
	return fmt.Sprintf("%s: %s%%", line.DisplayClass, line.Percent)
}

func badgeColor(style sentiment.BadgeStyle) color.Color {
	switch style {
	case sentiment.BadgeSuccess:
		return theme.SuccessColor()
	case sentiment.BadgeDanger:
		return theme.ErrorColor()
	case sentiment.BadgeWarning:
		return theme.WarningColor()
	default:
		return theme.DisabledColor()
	}
}

func statusText(a sentiment.Analysis) string {
	text := fmt.Sprintf("Done in %.1fs", a.Elapsed.Seconds())
	if a.Language.Suspicious() {
		text += fmt.Sprintf(" (input looks like %s; the model expects English)", a.Language.Name)
	}
	return text
}
