package list

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func createTestResponse() *Response {
	return &Response{
		Container: "client_portal.dat",
		Entries: []EntryResult{
			{ID: "0x06000001", Type: "texture", Location: 0x400, Size: 4096},
			{ID: "0x0E000007", Type: "ui-text", Location: 0x2400, Size: 64},
		},
		TotalFound: 3,
		Scanned:    10,
		ScanTime:   15 * time.Millisecond,
		Truncated:  true,
		Query:      Query{MaxResults: 2},
	}
}

func TestFormatOutput(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		wantErr  bool
		validate func(*testing.T, string)
	}{
		{
			name:   "table format",
			format: "table",
			validate: func(t *testing.T, output string) {
				assert.Contains(t, output, "ID")
				assert.Contains(t, output, "0x06000001")
				assert.Contains(t, output, "0x00002400")
				assert.Contains(t, output, "4.0 KB")
				assert.Contains(t, output, "Found 3 of 10 entries (showing first 2)")
			},
		},
		{
			name:   "json format",
			format: "json",
			validate: func(t *testing.T, output string) {
				var decoded Response
				require.NoError(t, json.Unmarshal([]byte(output), &decoded))
				assert.Equal(t, createTestResponse().Entries, decoded.Entries)
				assert.True(t, decoded.Truncated)
			},
		},
		{
			name:   "yaml format",
			format: "yaml",
			validate: func(t *testing.T, output string) {
				var decoded map[string]interface{}
				require.NoError(t, yaml.Unmarshal([]byte(output), &decoded))
				assert.Equal(t, "client_portal.dat", decoded["container"])
				assert.Len(t, decoded["entries"], 2)
			},
		},
		{
			name:    "unsupported format",
			format:  "xml",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := FormatOutput(&buf, createTestResponse(), tt.format)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, buf.String())
		})
	}
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatOutput(&buf, &Response{}, "table"))
	assert.Contains(t, buf.String(), "No entries found")
}

func TestFormatSummary(t *testing.T) {
	assert.Equal(t, "No entries found", FormatSummary(&Response{}))

	summary := FormatSummary(createTestResponse())
	assert.Contains(t, summary, "Found 3 entries (showing 2)")
	assert.Contains(t, summary, "totaling 4.1 KB")

	single := &Response{TotalFound: 1, Entries: []EntryResult{{Size: 10}}}
	assert.Contains(t, FormatSummary(single), "Found 1 entry totaling 10 B")
}
