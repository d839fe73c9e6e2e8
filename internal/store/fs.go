package store

import (
	"context"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/mtlprog/portfolio/internal/domain"
)

// FSStore serves assets from a file system: a local directory (os.DirFS) or the
// embedded default site. It never sets Content-Type; the router infers it.
type FSStore struct {
	fsys fs.FS
}

// NewFSStore creates a new FSStore.
func NewFSStore(fsys fs.FS) *FSStore {
	return &FSStore{fsys: fsys}
}

// Fetch opens req.Key. Missing files and directories are 404 responses.
func (s *FSStore) Fetch(_ context.Context, req *domain.AssetRequest) (*domain.AssetResponse, error) {
	if !readOnly(req.Method) {
		return methodNotAllowed(), nil
	}
	if !fs.ValidPath(req.Key) {
		return notFound(), nil
	}

	f, err := s.fsys.Open(req.Key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return notFound(), nil
		}
		return nil, errors.Wrapf(err, "open %s", req.Key)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "stat %s", req.Key)
	}
	if info.IsDir() {
		_ = f.Close()
		return notFound(), nil
	}

	h := make(http.Header)
	h.Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	setLastModified(h, info.ModTime())

	return &domain.AssetResponse{
		Status:     http.StatusOK,
		StatusText: http.StatusText(http.StatusOK),
		Header:     h,
		Body:       f,
	}, nil
}

// Health reports whether the file system holds a root document.
func (s *FSStore) Health(_ context.Context) error {
	if _, err := fs.Stat(s.fsys, domain.IndexKey); err != nil {
		return errors.Wrap(err, "stat root document")
	}
	return nil
}
