package upload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/smekit/internal/schema"
)

// sniffLen is the number of leading bytes inspected for content detection.
const sniffLen = 512

// Document is a supporting file read from disk.
type Document struct {
	Path string
	Name string
	Type string // sniffed MIME type, without parameters
	Size int64
}

// Load opens path and sniffs its MIME type from the leading bytes. The file
// extension is ignored.
func Load(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Document{}, fmt.Errorf("stat upload: %w", err)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return Document{}, fmt.Errorf("reading upload: %w", err)
	}

	return Document{
		Path: path,
		Name: filepath.Base(path),
		Type: mediaType(http.DetectContentType(head[:n])),
		Size: info.Size(),
	}, nil
}

// LoadAll loads every path concurrently. Results keep the order of paths.
func LoadAll(ctx context.Context, paths []string) ([]Document, error) {
	docs := make([]Document, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := Load(p)
			if err != nil {
				return fmt.Errorf("loading %q: %w", p, err)
			}
			docs[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// Metadata converts d into the record stored on a checklist item, stamped
// with now.
func (d Document) Metadata(now time.Time) schema.UploadedFile {
	return schema.UploadedFile{
		Name:      d.Name,
		Type:      d.Type,
		Timestamp: now,
	}
}

// mediaType strips parameters such as "; charset=utf-8".
func mediaType(ct string) string {
	for i := 0; i < len(ct); i++ {
		if ct[i] == ';' {
			return ct[:i]
		}
	}
	return ct
}
