// Package upload keeps multipart file uploads in a local temp directory until
// the request that received them is done with them.
package upload

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrTooLarge is returned by Save when a file is bigger than the store allows.
var ErrTooLarge = errors.New("upload exceeds size limit")

// Store saves uploads into a single directory, each under a random name.
type Store struct {
	dir     string
	maxSize int64
}

// NewStore creates dir if needed and returns a Store that accepts files of at
// most maxSize bytes.
func NewStore(dir string, maxSize int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &Store{dir: dir, maxSize: maxSize}, nil
}

// Dir returns the directory uploads are written to.
func (s *Store) Dir() string { return s.dir }

// MaxSize returns the per-file size cap in bytes.
func (s *Store) MaxSize() int64 { return s.maxSize }

// Save copies the uploaded file to disk. The caller owns the returned File and
// must Remove it.
func (s *Store) Save(fh *multipart.FileHeader) (*File, error) {
	if fh.Size > s.maxSize {
		return nil, ErrTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	path := filepath.Join(s.dir, uuid.New().String())
	dst, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	// Read one byte past the cap so a lying Content-Length is still caught.
	n, err := io.Copy(dst, io.LimitReader(src, s.maxSize+1))
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err == nil && n > s.maxSize {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(path)
		if errors.Is(err, ErrTooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}

	return &File{Path: path, Name: fh.Filename, Size: n}, nil
}

// File is an upload written to the store's directory.
type File struct {
	Path string
	Name string // client-supplied file name
	Size int64
}

// EncodeBase64 returns the file contents as standard base64 text.
func (f *File) EncodeBase64() (string, error) {
	src, err := os.Open(f.Path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", f.Path, err)
	}
	defer src.Close()

	var sb strings.Builder
	sb.Grow(base64.StdEncoding.EncodedLen(int(f.Size)))
	enc := base64.NewEncoder(base64.StdEncoding, &sb)
	if _, err := io.Copy(enc, src); err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", f.Path, err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", f.Path, err)
	}
	return sb.String(), nil
}

// Remove deletes the file from disk. Removing an already removed file is not
// an error.
func (f *File) Remove() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", f.Path, err)
	}
	return nil
}
