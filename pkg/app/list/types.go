package list

import (
	"fmt"
	"time"

	"github.com/deploymenttheory/go-dat/internal/types"
	"github.com/deploymenttheory/go-dat/pkg/app"
)

// Request represents a directory listing request
type Request struct {
	Target      app.ContainerTarget
	VerifyMagic bool

	// Filters
	Type       string
	MinID      string
	MaxID      string
	MaxResults int
}

// Response represents listing results
type Response struct {
	Container  string        `json:"container" yaml:"container"`
	Entries    []EntryResult `json:"entries" yaml:"entries"`
	TotalFound int           `json:"total_found" yaml:"total_found"`
	Scanned    int           `json:"scanned" yaml:"scanned"`
	ScanTime   time.Duration `json:"scan_time" yaml:"scan_time"`
	Truncated  bool          `json:"truncated" yaml:"truncated"`
	Query      Query         `json:"query" yaml:"query"`
}

// EntryResult represents one directory entry
type EntryResult struct {
	ID       string `json:"id" yaml:"id"`
	Type     string `json:"type" yaml:"type"`
	Location uint32 `json:"location" yaml:"location"`
	Size     uint32 `json:"size" yaml:"size"`
}

// Query represents the executed filter parameters
type Query struct {
	Type       string `json:"type,omitempty" yaml:"type,omitempty"`
	MinID      string `json:"min_id,omitempty" yaml:"min_id,omitempty"`
	MaxID      string `json:"max_id,omitempty" yaml:"max_id,omitempty"`
	MaxResults int    `json:"max_results" yaml:"max_results"`
}

// newEntryResult converts a directory entry for output
func newEntryResult(entry types.DirectoryEntry) EntryResult {
	return EntryResult{
		ID:       app.FormatResourceID(entry.ID),
		Type:     types.ResourceTypeOf(entry.ID).String(),
		Location: entry.Location,
		Size:     entry.Size,
	}
}

// FormatSize returns a human-readable size string
func (e *EntryResult) FormatSize() string {
	return formatBytes(int64(e.Size))
}

// formatBytes formats byte count as human readable
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
