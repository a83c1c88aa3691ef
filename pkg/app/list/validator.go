package list

import (
	"github.com/deploymenttheory/go-dat/internal/types"
	"github.com/deploymenttheory/go-dat/pkg/app"
)

// filter holds the parsed form of the request filters
type filter struct {
	hasType bool
	typ     types.ResourceType
	minID   uint32
	maxID   uint32
}

// matches reports whether entry passes the filter
func (f filter) matches(entry types.DirectoryEntry) bool {
	if f.hasType && types.ResourceTypeOf(entry.ID) != f.typ {
		return false
	}
	return entry.ID >= f.minID && entry.ID <= f.maxID
}

// Validate validates a listing request
func (r *Request) Validate() error {
	_, err := r.parseFilter()
	return err
}

// parseFilter validates the request and returns its filter
func (r *Request) parseFilter() (filter, error) {
	f := filter{maxID: ^uint32(0)}

	if err := r.Target.Validate(); err != nil {
		return f, app.NewError(app.ErrCodeInvalidInput, "invalid container target", err)
	}

	if r.Type != "" {
		typ, err := types.ParseResourceType(r.Type)
		if err != nil {
			return f, app.NewError(app.ErrCodeInvalidInput, "invalid resource type", err)
		}
		f.hasType = true
		f.typ = typ
	}

	if r.MinID != "" {
		id, err := app.ParseResourceID(r.MinID)
		if err != nil {
			return f, app.NewError(app.ErrCodeInvalidInput, "invalid min-id", err)
		}
		f.minID = id
	}
	if r.MaxID != "" {
		id, err := app.ParseResourceID(r.MaxID)
		if err != nil {
			return f, app.NewError(app.ErrCodeInvalidInput, "invalid max-id", err)
		}
		f.maxID = id
	}
	if f.minID > f.maxID {
		return f, app.NewError(app.ErrCodeInvalidInput, "min-id must not exceed max-id", nil)
	}

	if r.MaxResults < 0 {
		return f, app.NewError(app.ErrCodeInvalidInput, "max results cannot be negative", nil)
	}

	return f, nil
}
