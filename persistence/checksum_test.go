package persistence

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumWriterReaderAgree(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChecksumWriter(&buf)
	_, err := cw.Write([]byte("hierarchical clustering forest"))
	require.NoError(t, err)

	cr := NewChecksumReader(bytes.NewReader(buf.Bytes()))
	_, err = io.ReadAll(cr)
	require.NoError(t, err)

	assert.Equal(t, cw.Sum(), cr.Sum())
	assert.NoError(t, cr.Verify(cw.Sum()))
}

func TestChecksumReaderVerifyDetectsMismatch(t *testing.T) {
	cr := NewChecksumReader(bytes.NewReader([]byte("payload")))
	_, err := io.ReadAll(cr)
	require.NoError(t, err)

	err = cr.Verify(cr.Sum() + 1)
	require.Error(t, err)
	assert.True(t, IsChecksumMismatch(err))
}

func TestIsChecksumMismatchRejectsOtherErrors(t *testing.T) {
	assert.False(t, IsChecksumMismatch(assert.AnError))
}

func TestChecksumWriterResetClearsState(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChecksumWriter(&buf)
	_, err := cw.Write([]byte("abc"))
	require.NoError(t, err)
	nonZero := cw.Sum()
	require.NotZero(t, nonZero)

	cw.Reset()
	assert.Zero(t, cw.Sum())
}

func TestChecksumReaderResetClearsState(t *testing.T) {
	cr := NewChecksumReader(bytes.NewReader([]byte("abc")))
	_, err := io.ReadAll(cr)
	require.NoError(t, err)
	require.NotZero(t, cr.Sum())

	cr.Reset()
	assert.Zero(t, cr.Sum())
}
