package inspect

import (
	"github.com/deploymenttheory/go-dat/internal/services"
	"github.com/deploymenttheory/go-dat/internal/types"
	"github.com/deploymenttheory/go-dat/pkg/app"
)

// HandleInfo reads the header of a container
func HandleInfo(ctx *app.Context, req *InfoRequest) (*InfoResponse, error) {
	if req.Path == "" {
		return nil, app.NewError(app.ErrCodeInvalidInput, "container path is required", nil)
	}

	var opts []services.ContainerOption
	if req.VerifyMagic {
		opts = append(opts, services.WithMagicVerification())
	}

	c, err := services.OpenContainerFile(req.Path, opts...)
	if err != nil {
		return nil, app.ClassifyError("failed to open container", err)
	}
	defer c.Close()

	header, err := c.ReadHeader()
	if err != nil {
		return nil, app.ClassifyError("failed to read header", err)
	}
	response := newInfoResponse(req.Path, header)

	if req.CountEntries {
		ctx.Log("counting directory entries", "root", header.RootPosition)

		count := 0
		index := services.NewDirectoryIndex(c, c.RootLocation())
		err := index.Walk(func(types.DirectoryEntry) (bool, error) {
			if err := ctx.Err(); err != nil {
				return false, err
			}
			count++
			return true, nil
		})
		if err != nil {
			return nil, app.ClassifyError("failed to walk directory", err)
		}
		response.Entries = &count
	}

	return response, nil
}

// HandleFind looks up one resource across the target's containers
func HandleFind(ctx *app.Context, req *FindRequest) (*FindResponse, error) {
	if err := req.Target.Validate(); err != nil {
		return nil, app.NewError(app.ErrCodeInvalidInput, "invalid container target", err)
	}
	id, err := app.ParseResourceID(req.ID)
	if err != nil {
		return nil, app.NewError(app.ErrCodeInvalidInput, "invalid resource id", err)
	}

	library, err := services.OpenLibrary(req.Target.Paths(), services.LibraryConfig{VerifyMagic: req.VerifyMagic})
	if err != nil {
		return nil, app.ClassifyError("failed to open container", err)
	}
	defer library.Close()

	ctx.Log("finding resource", "id", app.FormatResourceID(id), "containers", len(library.Members()))

	loc, err := library.Find(id)
	if err != nil {
		return nil, app.ClassifyError("failed to find resource", err)
	}

	return &FindResponse{
		ID:       app.FormatResourceID(id),
		Type:     types.ResourceTypeOf(id).String(),
		Source:   loc.Source,
		Location: loc.Entry.Location,
		Size:     loc.Entry.Size,
	}, nil
}
