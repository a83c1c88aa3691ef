package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/opencontainers/go-digest"
	"golang.org/x/sync/errgroup"

	"github.com/deploymenttheory/go-dat/internal/services"
	"github.com/deploymenttheory/go-dat/internal/types"
	"github.com/deploymenttheory/go-dat/pkg/app"
)

type task struct {
	index int
	id    uint32
}

// extractor owns the per-worker state. A container is single-threaded, so
// every worker opens its own library over the same files.
type extractor struct {
	library     *services.Library
	encoder     *zstd.Encoder
	compression string
	digest      bool
}

// Handle processes an extraction request
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	startTime := time.Now()

	ids, err := req.parseIDs()
	if err != nil {
		return nil, err
	}

	compression := req.Compression
	if compression == "" {
		compression = CompressionNone
	}

	response := &Response{
		Container: req.Target.String(),
		Resources: make([]ResourceResult, len(ids)),
	}

	if req.Dest == "" {
		ex, err := newExtractor(req, compression)
		if err != nil {
			return nil, err
		}
		defer ex.close()

		result, err := ex.extract(ctx, ids[0], ctx.Out, "-")
		if err != nil {
			return nil, err
		}
		response.Resources[0] = result
	} else {
		if err := os.MkdirAll(req.Dest, 0o755); err != nil {
			return nil, app.NewError(app.ErrCodeOutput, "failed to create destination", err)
		}
		if err := extractAll(ctx, req, compression, ids, response.Resources); err != nil {
			return nil, err
		}
	}

	for _, r := range response.Resources {
		response.TotalBytes += int64(r.Size)
	}
	response.Elapsed = time.Since(startTime)

	ctx.Log("extraction completed", "resources", len(ids), "bytes", response.TotalBytes, "elapsed", response.Elapsed)
	return response, nil
}

// extractAll fans ids out over the configured number of workers and fills
// results in request order
func extractAll(ctx *app.Context, req *Request, compression string, ids []uint32, results []ResourceResult) error {
	workers := req.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(ids) {
		workers = len(ids)
	}

	taskCh := make(chan task)
	eg, egCtx := errgroup.WithContext(ctx.Context)

	for range workers {
		eg.Go(func() error {
			ex, err := newExtractor(req, compression)
			if err != nil {
				return err
			}
			defer ex.close()

			for t := range taskCh {
				if err := egCtx.Err(); err != nil {
					return err
				}
				result, err := ex.extractToDir(egCtx, t.id, req.Dest, req.Overwrite)
				if err != nil {
					return err
				}
				results[t.index] = result
			}
			return nil
		})
	}

	eg.Go(func() error {
		defer close(taskCh)
		for i, id := range ids {
			select {
			case taskCh <- task{index: i, id: id}:
			case <-egCtx.Done():
				return egCtx.Err()
			}
			ctx.Progress(fmt.Sprintf("Extracting %s", app.FormatResourceID(id)), (i+1)*100/len(ids))
		}
		return nil
	})

	return eg.Wait()
}

func newExtractor(req *Request, compression string) (*extractor, error) {
	library, err := services.OpenLibrary(req.Target.Paths(), services.LibraryConfig{
		CacheSize:   req.CacheSize,
		VerifyMagic: req.VerifyMagic,
	})
	if err != nil {
		return nil, app.ClassifyError("failed to open container", err)
	}

	ex := &extractor{library: library, compression: compression, digest: req.Digest}
	if compression == CompressionZstd {
		ex.encoder, err = zstd.NewWriter(io.Discard, zstd.WithEncoderConcurrency(1), zstd.WithLowerEncoderMem(true))
		if err != nil {
			library.Close()
			return nil, fmt.Errorf("create zstd encoder: %w", err)
		}
	}
	return ex, nil
}

func (ex *extractor) close() {
	if ex.encoder != nil {
		ex.encoder.Close()
	}
	ex.library.Close()
}

// extractToDir writes id to a new file under dest
func (ex *extractor) extractToDir(ctx context.Context, id uint32, dest string, overwrite bool) (ResourceResult, error) {
	path := filepath.Join(dest, FileName(id, ex.compression))

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return ResourceResult{}, app.NewError(app.ErrCodeOutput, "failed to create output file", err)
	}

	result, err := ex.extract(ctx, id, f, path)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = app.NewError(app.ErrCodeOutput, "failed to close output file", closeErr)
	}
	if err != nil {
		os.Remove(path)
		return ResourceResult{}, err
	}
	return result, nil
}

// extract reads id through the library and writes it to w
func (ex *extractor) extract(ctx context.Context, id uint32, w io.Writer, path string) (ResourceResult, error) {
	if err := ctx.Err(); err != nil {
		return ResourceResult{}, err
	}

	data, loc, err := ex.library.ReadResource(id)
	if err != nil {
		return ResourceResult{}, app.ClassifyError(fmt.Sprintf("failed to read %s", app.FormatResourceID(id)), err)
	}

	written, err := ex.write(w, data)
	if err != nil {
		return ResourceResult{}, app.NewError(app.ErrCodeOutput, "failed to write resource", err)
	}

	result := ResourceResult{
		ID:          app.FormatResourceID(id),
		Type:        types.ResourceTypeOf(id).String(),
		Source:      loc.Source,
		Size:        len(data),
		Written:     written,
		Path:        path,
		Compression: ex.compression,
	}
	if ex.digest {
		result.Digest = digest.FromBytes(data).String()
	}
	return result, nil
}

// write copies data to w, through the zstd encoder when compressing
func (ex *extractor) write(w io.Writer, data []byte) (int64, error) {
	cw := &countingWriter{w: w}

	if ex.encoder == nil {
		if _, err := io.Copy(cw, bytes.NewReader(data)); err != nil {
			return 0, err
		}
		return cw.n, nil
	}

	ex.encoder.Reset(cw)
	if _, err := io.Copy(ex.encoder, bytes.NewReader(data)); err != nil {
		ex.encoder.Close()
		return 0, err
	}
	if err := ex.encoder.Close(); err != nil {
		return 0, fmt.Errorf("close zstd encoder: %w", err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
