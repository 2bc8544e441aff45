package sentiment

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const maxInputBytes = 1 << 20

// ReadInput reads all of r as one text, dropping a leading BOM and surrounding space.
func ReadInput(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInputBytes+1))
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	if len(data) > maxInputBytes {
		return "", fmt.Errorf("read input: more than %d bytes", maxInputBytes)
	}
	return cleanText(string(data)), nil
}

// ReadInputFile reads a text file as a single input. Binary files are rejected.
func ReadInputFile(path string) (string, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("detect input type: %w", err)
	}
	if !isText(mtype) {
		return "", fmt.Errorf("input %s is %s, not text", path, mtype.String())
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return ReadInput(f)
}

func isText(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

func cleanText(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
}
