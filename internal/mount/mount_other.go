//go:build !linux && !darwin

package mount

import (
	"errors"
	"log/slog"

	"github.com/deploymenttheory/go-dat/internal/services"
)

// ErrUnsupported is returned on platforms without FUSE support
var ErrUnsupported = errors.New("mount: not supported on this platform")

// Root is the top directory of a mounted library
type Root struct{}

// NewRoot reports ErrUnsupported
func NewRoot(library *services.Library, logger *slog.Logger) (*Root, error) {
	return nil, ErrUnsupported
}

// Mount reports ErrUnsupported
func Mount(mountPoint string, root *Root, opts Options) (Server, error) {
	return nil, ErrUnsupported
}
