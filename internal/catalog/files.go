package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ytget/bing-wallpaper/internal/platform"
)

// ImageExt is the extension of stored image files
const ImageExt = ".jpg"

// Files manages the image file that belongs to each descriptor key
type Files interface {
	Path(key string) string
	Exists(key string) bool
	Write(key string, data []byte) error
	Remove(key string) error
}

// DirFiles stores images as <Dir>/<key>.jpg
type DirFiles struct {
	Dir string
}

// NewDirFiles creates a file manager rooted at dir
func NewDirFiles(dir string) *DirFiles {
	return &DirFiles{Dir: dir}
}

// Path returns the deterministic image path for key
func (f *DirFiles) Path(key string) string {
	return filepath.Join(f.Dir, key+ImageExt)
}

// Exists reports whether the image for key is on disk
func (f *DirFiles) Exists(key string) bool {
	info, err := os.Stat(f.Path(key))
	return err == nil && info.Mode().IsRegular() && info.Size() > 0
}

// Write stores image bytes for key
func (f *DirFiles) Write(key string, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty image data for %s", key)
	}
	return platform.WriteFileAtomic(f.Path(key), data)
}

// Remove deletes the image for key; a missing file is not an error
func (f *DirFiles) Remove(key string) error {
	if err := os.Remove(f.Path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
