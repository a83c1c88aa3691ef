package list

import (
	"time"

	"github.com/deploymenttheory/go-dat/internal/services"
	"github.com/deploymenttheory/go-dat/pkg/app"
)

// Handle processes a listing request against the primary container of the target.
// A MaxResults of zero lists everything.
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	startTime := time.Now()

	f, err := req.parseFilter()
	if err != nil {
		return nil, err
	}

	var opts []services.ContainerOption
	if req.VerifyMagic {
		opts = append(opts, services.WithMagicVerification())
	}

	ctx.Log("opening container", "path", req.Target.Path, "verify_magic", req.VerifyMagic)
	c, err := services.OpenContainerFile(req.Target.Path, opts...)
	if err != nil {
		return nil, app.ClassifyError("failed to open container", err)
	}
	defer c.Close()

	ctx.Progress("Walking directory...", 10)

	response := &Response{
		Container: req.Target.Path,
		Entries:   []EntryResult{},
		Query: Query{
			Type:       req.Type,
			MinID:      req.MinID,
			MaxID:      req.MaxID,
			MaxResults: req.MaxResults,
		},
	}

	index := services.NewDirectoryIndex(c, c.RootLocation())
	for entry, err := range index.All() {
		if err != nil {
			return nil, app.ClassifyError("failed to walk directory", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		response.Scanned++
		if !f.matches(entry) {
			continue
		}

		response.TotalFound++
		if req.MaxResults > 0 && len(response.Entries) >= req.MaxResults {
			response.Truncated = true
			continue
		}
		response.Entries = append(response.Entries, newEntryResult(entry))
	}

	response.ScanTime = time.Since(startTime)

	ctx.Progress("Complete", 100)
	ctx.Log("listing completed", "scanned", response.Scanned, "matched", response.TotalFound, "elapsed", response.ScanTime)

	return response, nil
}
