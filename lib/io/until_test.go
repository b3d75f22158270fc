package iolib

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadUntil(t *testing.T) {
	testcases := []struct {
		desc     string
		input    string
		delim    string
		expected string
		wantErr  error
	}{
		{
			desc:     "single byte delim",
			input:    "hello\nworld",
			delim:    "\n",
			expected: "hello\n",
		},
		{
			desc:     "multi byte delim",
			input:    "a\rb\r\nc",
			delim:    "\r\n",
			expected: "a\rb\r\n",
		},
		{
			desc:     "delim never arrives",
			input:    "hello",
			delim:    "\n",
			expected: "hello",
			wantErr:  io.EOF,
		},
		{
			desc:    "empty delim",
			input:   "hello",
			wantErr: ErrZeroLenDelim,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			ur := NewUntilReader(strings.NewReader(tc.input))

			b, err := ur.ReadUntil([]byte(tc.delim))
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, tc.expected, string(b))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, string(b))
		})
	}
}

func TestReadUntilThenRead(t *testing.T) {
	ur := NewUntilReader(strings.NewReader("head\r\nbody"))

	b, err := ur.ReadUntil([]byte("\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "head\r\n", string(b))

	rest, err := io.ReadAll(ur)
	require.NoError(t, err)
	assert.Equal(t, "body", string(rest))
}

func TestReadUntilConsecutive(t *testing.T) {
	ur := NewUntilReader(strings.NewReader("a\r\nb\r\n\r\n"))

	for _, expected := range []string{"a\r\n", "b\r\n", "\r\n"} {
		b, err := ur.ReadUntil([]byte("\r\n"))
		require.NoError(t, err)
		assert.Equal(t, expected, string(b))
	}
}

func TestReadUntilLimit(t *testing.T) {
	ur := NewUntilReader(strings.NewReader("way too long line\r\n"))

	b, err := ur.ReadUntilLimit([]byte("\r\n"), 4)
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "way ", string(b))

	// The underlying reader is restored afterwards.
	b, err = ur.ReadUntil([]byte("\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "too long line\r\n", string(b))
}

func TestLimitedReader(t *testing.T) {
	r := LimitReader(strings.NewReader("abcdef"), 4)

	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(b))
}
