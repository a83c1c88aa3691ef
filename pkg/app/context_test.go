package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextLogging(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		quiet     bool
		wantDebug bool
		wantError bool
	}{
		{name: "default", wantError: true},
		{name: "verbose", verbose: true, wantDebug: true, wantError: true},
		{name: "quiet", quiet: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ctx := NewContext()
			ctx.Verbose = tt.verbose
			ctx.Quiet = tt.quiet
			ctx.ConfigureLogging(&buf)

			ctx.Log("walking directory", "root", 0x400)
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("walking directory")))

			ctx.Error("read failed", "id", "0x06000001")
			assert.Equal(t, tt.wantError, bytes.Contains(buf.Bytes(), []byte("read failed")))
		})
	}
}

func TestContextProgressAndCancel(t *testing.T) {
	ctx := NewContext()
	ctx.Progress("ignored", 10)

	var got []int
	ctx.SetProgress(func(_ string, percent int) { got = append(got, percent) })
	ctx.Progress("a", 50)
	ctx.Progress("b", 100)
	assert.Equal(t, []int{50, 100}, got)

	child, cancel := ctx.WithCancel()
	assert.NoError(t, child.Err())
	cancel()
	assert.Error(t, child.Err())
	assert.NoError(t, ctx.Err())
	assert.Equal(t, ctx.OutputFormat, child.OutputFormat)
}
