package app

import (
	"fmt"
	"testing"
	"time"

	"fyne.io/fyne/v2/data/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogCaptureKeepsLastLines(t *testing.T) {
	b := binding.NewString()
	capture := newLogCapture(b, 3)

	for i := 1; i <= 5; i++ {
		_, err := fmt.Fprintf(capture, "line %d\r\n", i)
		require.NoError(t, err)
	}

	got, err := b.Get()
	require.NoError(t, err)
	assert.Equal(t, "line 3\nline 4\nline 5", got)
}

func TestLogCaptureDebouncedFlush(t *testing.T) {
	b := binding.NewString()
	capture := newLogCapture(b, 10)
	capture.start()

	_, _ = capture.Write([]byte("first\nsecond\n"))

	assert.Eventually(t, func() bool {
		got, _ := b.Get()
		return got == "first\nsecond"
	}, 2*time.Second, 20*time.Millisecond)
}
