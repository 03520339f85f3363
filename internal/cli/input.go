package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// ErrEmptyInput is returned when no roster text was provided.
var ErrEmptyInput = errors.New("no text provided")

// ReadText reads all of r, returning early with ErrInputCancelled when ctx
// is done. The read itself keeps running until r yields EOF.
func ReadText(ctx context.Context, r io.Reader) (string, error) {
	type result struct {
		err  error
		text string
	}
	resultCh := make(chan result, 1)

	go func() {
		data, err := io.ReadAll(r)
		resultCh <- result{text: string(data), err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		if res.err != nil {
			return "", fmt.Errorf("failed to read input: %w", res.err)
		}
		if strings.TrimSpace(res.text) == "" {
			return "", ErrEmptyInput
		}
		return res.text, nil
	}
}

// ReadSource reads roster text from a file path, or from stdin when path is
// empty or "-".
func ReadSource(ctx context.Context, path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		return ReadText(ctx, stdin)
	}

	f, err := os.Open(path) //nolint:gosec // user-supplied input file
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return ReadText(ctx, f)
}
