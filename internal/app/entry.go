package app

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// submitEntry is a multi-line entry that submits on Cmd+Enter (macOS) or
// Ctrl+Enter (elsewhere) instead of inserting a newline.
type submitEntry struct {
	widget.Entry

	modifier fyne.KeyModifier
	onSubmit func()
}

func newSubmitEntry(goos string, onSubmit func()) *submitEntry {
	e := &submitEntry{modifier: submitModifier(goos), onSubmit: onSubmit}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	e.ExtendBaseWidget(e)
	e.SetMinRowsVisible(6)
	return e
}

func submitModifier(goos string) fyne.KeyModifier {
	if goos == "darwin" {
		return fyne.KeyModifierSuper
	}
	return fyne.KeyModifierControl
}

func shortcutHint(goos string) string {
	if goos == "darwin" {
		return "Cmd+Enter"
	}
	return "Ctrl+Enter"
}

// TypedShortcut catches the submit chord and hands everything else to the entry.
func (e *submitEntry) TypedShortcut(s fyne.Shortcut) {
	if e.isSubmit(s) {
		if e.onSubmit != nil {
			e.onSubmit()
		}
		return
	}
	e.Entry.TypedShortcut(s)
}

func (e *submitEntry) isSubmit(s fyne.Shortcut) bool {
	cs, ok := s.(*desktop.CustomShortcut)
	if !ok || cs.Modifier != e.modifier {
		return false
	}
	return cs.KeyName == fyne.KeyReturn || cs.KeyName == fyne.KeyEnter
}
