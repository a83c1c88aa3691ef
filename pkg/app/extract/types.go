package extract

import (
	"time"

	"github.com/deploymenttheory/go-dat/pkg/app"
)

// Compression modes for extracted files
const (
	CompressionNone = "none"
	CompressionZstd = "zstd"
)

// Request represents a resource extraction request
type Request struct {
	Target app.ContainerTarget
	IDs    []string

	// Dest is the output directory. Empty writes the single requested
	// resource to the context's output writer.
	Dest        string
	Compression string
	Digest      bool
	Overwrite   bool

	Workers     int
	CacheSize   int
	VerifyMagic bool
}

// Response represents extraction results
type Response struct {
	Container  string           `json:"container" yaml:"container"`
	Resources  []ResourceResult `json:"resources" yaml:"resources"`
	TotalBytes int64            `json:"total_bytes" yaml:"total_bytes"`
	Elapsed    time.Duration    `json:"elapsed" yaml:"elapsed"`
}

// ResourceResult describes one extracted resource
type ResourceResult struct {
	ID          string `json:"id" yaml:"id"`
	Type        string `json:"type" yaml:"type"`
	Source      string `json:"source" yaml:"source"`
	Size        int    `json:"size" yaml:"size"`
	Written     int64  `json:"written" yaml:"written"`
	Path        string `json:"path" yaml:"path"`
	Compression string `json:"compression" yaml:"compression"`
	Digest      string `json:"digest,omitempty" yaml:"digest,omitempty"`
}

// FileName returns the file name used for id under the given compression
func FileName(id uint32, compression string) string {
	name := app.FormatResourceID(id)[2:] + ".bin"
	if compression == CompressionZstd {
		name += ".zst"
	}
	return name
}
