package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

var ErrNotFound = errors.New("blob not found")

// BlobStore keeps uploaded files.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
	// HTTPFileSystem serves stored blobs read-only.
	HTTPFileSystem() http.FileSystem
}

type Config struct {
	// RootDir is the blob root on disk. Empty keeps blobs in memory.
	RootDir       string
	PublicBaseURL string
}

type fsStore struct {
	fs      afero.Fs
	baseURL string
}

func New(cfg Config) BlobStore {
	var fs afero.Fs
	if cfg.RootDir == "" {
		fs = afero.NewMemMapFs()
	} else {
		fs = afero.NewBasePathFs(afero.NewOsFs(), cfg.RootDir)
	}
	return NewFromFs(fs, cfg.PublicBaseURL)
}

func NewFromFs(fs afero.Fs, publicBaseURL string) BlobStore {
	if publicBaseURL != "" && !strings.HasSuffix(publicBaseURL, "/") {
		publicBaseURL += "/"
	}
	return &fsStore{fs: fs, baseURL: publicBaseURL}
}

// Key builds `<org>/<source>/<uuid>-<name>.<ext>`.
func Key(orgID int64, source, name, ext string) string {
	file := uuid.NewString()
	if name != "" {
		file += "-" + name
	}
	if ext != "" {
		file += "." + ext
	}
	return fmt.Sprintf("%d/%s/%s", orgID, source, file)
}

func (s *fsStore) Put(ctx context.Context, key string, r io.Reader) (int64, error) {
	clean, err := cleanKey(key)
	if err != nil {
		return 0, err
	}
	if err := s.fs.MkdirAll(path.Dir(clean), 0o755); err != nil {
		return 0, fmt.Errorf("creating blob dir: %w", err)
	}

	f, err := s.fs.OpenFile(clean, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fmt.Errorf("creating blob %s: %w", clean, err)
	}

	n, err := io.Copy(f, contextReader{ctx: ctx, r: r})
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = s.fs.Remove(clean)
		return 0, fmt.Errorf("writing blob %s: %w", clean, err)
	}
	return n, nil
}

func (s *fsStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	clean, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	f, err := s.fs.Open(clean)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("opening blob %s: %w", clean, err)
	}
	return f, nil
}

func (s *fsStore) Delete(_ context.Context, key string) error {
	clean, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(clean); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("deleting blob %s: %w", clean, err)
	}
	return nil
}

func (s *fsStore) URL(key string) string {
	return s.baseURL + key
}

func (s *fsStore) HTTPFileSystem() http.FileSystem {
	return filesOnly{afero.NewHttpFs(afero.NewReadOnlyFs(s.fs)).Dir("")}
}

// filesOnly hides directories so blob keys cannot be listed.
type filesOnly struct {
	http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.FileSystem.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil || info.IsDir() {
		_ = file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}

func cleanKey(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("empty blob key")
	}
	return strings.TrimPrefix(clean, "/"), nil
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
