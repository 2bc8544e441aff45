package sentiment

import (
	"github.com/abadojack/whatlanggo"
)

// minLanguageRunes is the shortest text worth running detection on.
const minLanguageRunes = 12

// Language is a best-effort guess at the language of the analyzed text.
type Language struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Reliable bool    `json:"reliable"`
	Score    float64 `json:"score"`
}

// English reports whether the text was detected as English.
func (l Language) English() bool {
	return l.Code == whatlanggo.Eng.Iso6393()
}

// Suspicious reports a reliable detection of a language other than English.
// The backing model is trained on English text only.
func (l Language) Suspicious() bool {
	return l.Reliable && l.Code != "" && !l.English()
}

// DetectLanguage guesses the language of text. Short texts yield an empty Language.
func DetectLanguage(text string) Language {
	if len([]rune(text)) < minLanguageRunes {
		return Language{}
	}
	info := whatlanggo.Detect(text)
	return Language{
		Code:     info.Lang.Iso6393(),
		Name:     info.Lang.String(),
		Reliable: info.IsReliable(),
		Score:    info.Confidence,
	}
}
