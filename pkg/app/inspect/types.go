package inspect

import (
	"github.com/deploymenttheory/go-dat/internal/types"
	"github.com/deploymenttheory/go-dat/pkg/app"
)

// InfoRequest asks for the header of one container
type InfoRequest struct {
	Path        string
	VerifyMagic bool

	// CountEntries walks the directory to count its entries
	CountEntries bool
}

// InfoResponse describes a container header
type InfoResponse struct {
	Container      string `json:"container" yaml:"container"`
	Magic          string `json:"magic" yaml:"magic"`
	MagicValid     bool   `json:"magic_valid" yaml:"magic_valid"`
	BlockSize      uint32 `json:"block_size" yaml:"block_size"`
	PayloadSize    int64  `json:"payload_size" yaml:"payload_size"`
	FileSize       uint32 `json:"file_size" yaml:"file_size"`
	FileVersion    uint32 `json:"file_version" yaml:"file_version"`
	FileVersion2   uint32 `json:"file_version2" yaml:"file_version2"`
	FreeHead       uint32 `json:"free_head" yaml:"free_head"`
	FreeTail       uint32 `json:"free_tail" yaml:"free_tail"`
	FreeBlockCount uint32 `json:"free_block_count" yaml:"free_block_count"`
	RootPosition   uint32 `json:"root_position" yaml:"root_position"`
	Entries        *int   `json:"entries,omitempty" yaml:"entries,omitempty"`
}

// FindRequest asks where a resource is stored
type FindRequest struct {
	Target      app.ContainerTarget
	ID          string
	VerifyMagic bool
}

// FindResponse locates a resource
type FindResponse struct {
	ID       string `json:"id" yaml:"id"`
	Type     string `json:"type" yaml:"type"`
	Source   string `json:"source" yaml:"source"`
	Location uint32 `json:"location" yaml:"location"`
	Size     uint32 `json:"size" yaml:"size"`
}

func newInfoResponse(path string, header types.DatHeader) *InfoResponse {
	return &InfoResponse{
		Container:      path,
		Magic:          magicString(header.Magic),
		MagicValid:     header.HasValidMagic(),
		BlockSize:      header.BlockSize,
		PayloadSize:    header.PayloadSize(),
		FileSize:       header.FileSize,
		FileVersion:    header.FileVersion,
		FileVersion2:   header.FileVersion2,
		FreeHead:       header.FreeHead,
		FreeTail:       header.FreeTail,
		FreeBlockCount: header.FreeBlockCount,
		RootPosition:   header.RootPosition,
	}
}

// magicString renders the magic number as its two ASCII bytes in file order when printable
func magicString(magic uint32) string {
	hi, lo := byte(magic>>8), byte(magic)
	if magic>>16 == 0 && isPrintable(hi) && isPrintable(lo) {
		return string([]byte{lo, hi})
	}
	return app.FormatResourceID(magic)
}

func isPrintable(b byte) bool {
	return b >= 0x20 && b < 0x7F
}
