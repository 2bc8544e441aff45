// sentiview-cli sends text to a sentiment prediction endpoint and prints the
// normalized result.
//
// Usage:
//
//	sentiview-cli analyze "I loved this film"
//	sentiview-cli analyze --input review.txt --json
//	echo "meh" | sentiview-cli analyze
//	sentiview-cli config show --format yaml
//	sentiview-cli config init config.yaml
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		var shown reportedError
		if !errors.As(err, &shown) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

// reportedError wraps failures the result view already printed.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }
