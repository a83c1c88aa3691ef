package extract

import (
	"github.com/deploymenttheory/go-dat/pkg/app"
)

// Validate validates an extraction request
func (r *Request) Validate() error {
	_, err := r.parseIDs()
	return err
}

// parseIDs validates the request and returns the requested ids, duplicates removed
func (r *Request) parseIDs() ([]uint32, error) {
	if err := r.Target.Validate(); err != nil {
		return nil, app.NewError(app.ErrCodeInvalidInput, "invalid container target", err)
	}

	if len(r.IDs) == 0 {
		return nil, app.NewError(app.ErrCodeInvalidInput, "at least one resource id is required", nil)
	}
	if r.Dest == "" && len(r.IDs) != 1 {
		return nil, app.NewError(app.ErrCodeInvalidInput, "a destination directory is required to extract more than one resource", nil)
	}

	switch r.Compression {
	case "", CompressionNone, CompressionZstd:
	default:
		return nil, app.NewError(app.ErrCodeInvalidInput, "unsupported compression "+r.Compression, nil)
	}

	if r.Workers < 0 {
		return nil, app.NewError(app.ErrCodeInvalidInput, "workers cannot be negative", nil)
	}
	if r.CacheSize < 0 {
		return nil, app.NewError(app.ErrCodeInvalidInput, "cache size cannot be negative", nil)
	}

	ids := make([]uint32, 0, len(r.IDs))
	seen := make(map[uint32]bool, len(r.IDs))
	for _, s := range r.IDs {
		id, err := app.ParseResourceID(s)
		if err != nil {
			return nil, app.NewError(app.ErrCodeInvalidInput, "invalid resource id", err)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	return ids, nil
}
