package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadText(t *testing.T) {
	text, err := ReadText(context.Background(), strings.NewReader("1. Ana\n2. Luis\n"))
	require.NoError(t, err)
	assert.Equal(t, "1. Ana\n2. Luis\n", text)

	_, err = ReadText(context.Background(), strings.NewReader(" \n\t"))
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestReadText_Cancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadText(ctx, pr)
	assert.ErrorIs(t, err, ErrInputCancelled)
}

func TestReadSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.txt")
	require.NoError(t, os.WriteFile(path, []byte("partido"), 0o600))

	text, err := ReadSource(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, "partido", text)

	text, err = ReadSource(context.Background(), "-", strings.NewReader("desde stdin"))
	require.NoError(t, err)
	assert.Equal(t, "desde stdin", text)

	_, err = ReadSource(context.Background(), filepath.Join(t.TempDir(), "missing.txt"), nil)
	assert.Error(t, err)
}
