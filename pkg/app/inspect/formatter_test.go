package inspect

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatInfo(t *testing.T) {
	entries := 12
	response := &InfoResponse{
		Container:      "portal.dat",
		Magic:          "BT",
		MagicValid:     true,
		BlockSize:      1024,
		PayloadSize:    1020,
		FileVersion:    2,
		FileVersion2:   7,
		FreeHead:       0x1000,
		FreeTail:       0x2000,
		FreeBlockCount: 3,
		RootPosition:   0x400,
		Entries:        &entries,
	}

	var buf bytes.Buffer
	require.NoError(t, FormatInfo(&buf, response, "table"))
	out := buf.String()
	assert.Contains(t, out, "Payload size:")
	assert.Contains(t, out, "2.7")
	assert.Contains(t, out, "0x00001000 .. 0x00002000 (3 sectors)")
	assert.Contains(t, out, "0x00000400")
	assert.Contains(t, out, "12")

	buf.Reset()
	require.NoError(t, FormatInfo(&buf, response, "json"))
	assert.Contains(t, buf.String(), `"payload_size": 1020`)

	response.MagicValid = false
	buf.Reset()
	require.NoError(t, FormatInfo(&buf, response, "table"))
	assert.Contains(t, buf.String(), "(unexpected)")
}

func TestFormatFind(t *testing.T) {
	response := &FindResponse{ID: "0x06000001", Type: "texture", Source: "portal.dat", Location: 0x800, Size: 99}

	var buf bytes.Buffer
	require.NoError(t, FormatFind(&buf, response, "table"))
	assert.Equal(t, "0x06000001 texture location=0x00000800 size=99 source=portal.dat\n", buf.String())

	buf.Reset()
	require.NoError(t, FormatFind(&buf, response, "yaml"))
	assert.Contains(t, buf.String(), "location: 2048")

	assert.Error(t, FormatFind(&buf, response, "xml"))
}

func TestMagicString(t *testing.T) {
	assert.Equal(t, "BT", magicString(0x5442))
	assert.Equal(t, "0x00000000", magicString(0))
	assert.Equal(t, "0x12345442", magicString(0x12345442))
}
