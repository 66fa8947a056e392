package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const allowedExtension = ".pdf"

// Upload is a resume file owned by a single pipeline run.
type Upload struct {
	Path string
	// Name is the file name supplied by the client.
	Name string

	release func() error
	once    sync.Once
	err     error
}

// Release frees the file. Only the first call has an effect.
func (u *Upload) Release() error {
	u.once.Do(func() {
		if u.release != nil {
			u.err = u.release()
		}
	})
	return u.err
}

// ValidateFilename rejects empty names and anything that is not a PDF.
func ValidateFilename(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Message: MsgNoFilename}
	}
	if !strings.EqualFold(filepath.Ext(name), allowedExtension) {
		return &ValidationError{Message: MsgNotPDF}
	}
	return nil
}

// StoreUpload copies src into a uniquely named file under dir. Releasing the
// returned Upload removes the file.
func StoreUpload(dir, name string, src io.Reader) (*Upload, error) {
	if err := ValidateFilename(name); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}

	path := filepath.Join(dir, uuid.NewString()+allowedExtension)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("creating upload file: %w", err)
	}

	_, copyErr := io.Copy(f, src)
	closeErr := f.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("saving upload: %w", err)
	}

	return &Upload{
		Path: path,
		Name: filepath.Base(name),
		release: func() error {
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			return nil
		},
	}, nil
}

// LocalFile wraps a file owned by the caller. Release leaves it in place.
func LocalFile(path string) *Upload {
	return &Upload{Path: path, Name: filepath.Base(path)}
}
