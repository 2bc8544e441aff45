package sentiment

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var labelFolder = cases.Fold()

// foldLabel returns a case- and width-insensitive form of a label.
func foldLabel(label string) string {
	return labelFolder.String(norm.NFKC.String(strings.TrimSpace(label)))
}
