package sentiment

// KeyAliases lists, per canonical field, the response keys accepted for it.
// The first alias present in a response wins.
type KeyAliases struct {
	Label      []string `json:"label,omitempty" yaml:"label,omitempty"`
	Confidence []string `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	Scores     []string `json:"scores,omitempty" yaml:"scores,omitempty"`
}

func defaultKeyAliases() KeyAliases {
	return KeyAliases{
		Label:      []string{"sentiment", "label"},
		Confidence: []string{"confidence", "score"},
		Scores:     []string{"all_scores", "scores"},
	}
}

// DefaultKeyAliases returns the built-in response key aliases.
func DefaultKeyAliases() KeyAliases {
	return defaultKeyAliases()
}

// WithDefaults fills nil alias lists from the built-in table, so callers can
// override only the parts they need.
func (k KeyAliases) WithDefaults() KeyAliases {
	defaults := defaultKeyAliases()
	return KeyAliases{
		Label:      pickStrings(k.Label, defaults.Label),
		Confidence: pickStrings(k.Confidence, defaults.Confidence),
		Scores:     pickStrings(k.Scores, defaults.Scores),
	}
}

func (k KeyAliases) clone() KeyAliases {
	return KeyAliases{
		Label:      cloneStrings(k.Label),
		Confidence: cloneStrings(k.Confidence),
		Scores:     cloneStrings(k.Scores),
	}
}

func pickStrings(custom, fallback []string) []string {
	if custom == nil {
		return cloneStrings(fallback)
	}
	return cloneStrings(custom)
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
