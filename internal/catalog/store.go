package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ytget/bing-wallpaper/internal/model"
	"github.com/ytget/bing-wallpaper/internal/platform"
)

// FileName is the catalog file stored next to the images
const FileName = "catalog.yaml"

const formatVersion = 1

// ErrPersistence is returned when the catalog or its image files cannot be changed on disk
var ErrPersistence = errors.New("catalog persistence failure")

// catalogFile is the on-disk layout
type catalogFile struct {
	Version int                     `yaml:"version"`
	Images  []model.ImageDescriptor `yaml:"images"`
}

// Store holds image descriptors keyed by start date
type Store struct {
	mu      sync.RWMutex
	path    string
	files   Files
	entries map[string]model.ImageDescriptor
}

// Open loads the catalog kept in imageDir, storing images in the same directory
func Open(imageDir string) (*Store, error) {
	return OpenWithFiles(filepath.Join(imageDir, FileName), NewDirFiles(imageDir))
}

// OpenWithFiles loads the catalog at path using files for image storage.
// An unreadable catalog is moved aside and an empty one is started.
func OpenWithFiles(path string, files Files) (*Store, error) {
	s := &Store{
		path:    path,
		files:   files,
		entries: make(map[string]model.ImageDescriptor),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrPersistence, path, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		backup := path + ".bak"
		slog.Warn("catalog unreadable, starting empty", "path", path, "backup", backup, "error", err)
		if err := os.Rename(path, backup); err != nil {
			return nil, fmt.Errorf("%w: move aside %s: %v", ErrPersistence, path, err)
		}
		return s, nil
	}

	for _, d := range file.Images {
		if !model.IsValidStartDate(d.StartDate) {
			slog.Warn("skipping catalog row with invalid key", "start_date", d.StartDate)
			continue
		}
		s.entries[d.StartDate] = d
	}
	return s, nil
}

// Upsert inserts descriptors for keys not yet present and leaves existing ones
// untouched. It returns the descriptors for every key in the batch, in batch order.
func (s *Store) Upsert(entries []model.ImageEntry) ([]model.ImageDescriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]model.ImageDescriptor, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	var inserted []string

	for _, entry := range entries {
		key := entry.StartDate
		if !model.IsValidStartDate(key) {
			slog.Warn("skipping entry with invalid start date", "start_date", key)
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		d, ok := s.entries[key]
		if !ok {
			d = model.NewImageDescriptor(entry)
			s.entries[key] = d
			inserted = append(inserted, key)
		}
		result = append(result, d)
	}

	if len(inserted) > 0 {
		if err := s.saveLocked(); err != nil {
			for _, key := range inserted {
				delete(s.entries, key)
			}
			return nil, err
		}
	}
	return result, nil
}

// DeleteOlderThan removes every descriptor whose key sorts before cutoff, along
// with its image file. It returns the number of descriptors removed.
func (s *Store) DeleteOlderThan(cutoff string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := make(map[string]model.ImageDescriptor)
	for key, d := range s.entries {
		if key < cutoff {
			removed[key] = d
		}
	}
	if len(removed) == 0 {
		return 0, nil
	}

	for key := range removed {
		delete(s.entries, key)
	}
	if err := s.saveLocked(); err != nil {
		for key, d := range removed {
			s.entries[key] = d
		}
		return 0, err
	}

	var errs []error
	for key := range removed {
		if err := s.files.Remove(key); err != nil {
			errs = append(errs, fmt.Errorf("remove image %s: %w", key, err))
		}
	}
	if len(errs) > 0 {
		return len(removed), fmt.Errorf("%w: %w", ErrPersistence, errors.Join(errs...))
	}
	return len(removed), nil
}

// All returns every descriptor ordered by start date ascending
func (s *Store) All() []model.ImageDescriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked()
}

// OnDisk returns the descriptors whose image file exists, ordered ascending
func (s *Store) OnDisk() []model.ImageDescriptor {
	all := s.All()
	result := make([]model.ImageDescriptor, 0, len(all))
	for _, d := range all {
		if s.files.Exists(d.StartDate) {
			result = append(result, d)
		}
	}
	return result
}

// Newest returns the newest descriptor whose image is on disk
func (s *Store) Newest() (model.ImageDescriptor, bool) {
	onDisk := s.OnDisk()
	if len(onDisk) == 0 {
		return model.ImageDescriptor{}, false
	}
	return onDisk[len(onDisk)-1], true
}

// Get returns the descriptor for key
func (s *Store) Get(key string) (model.ImageDescriptor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.entries[key]
	return d, ok
}

// Len returns the number of descriptors
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// ImagePath returns where the image for d is stored
func (s *Store) ImagePath(d model.ImageDescriptor) string {
	return s.files.Path(d.StartDate)
}

// IsOnDisk reports whether the image for d has been downloaded
func (s *Store) IsOnDisk(d model.ImageDescriptor) bool {
	return s.files.Exists(d.StartDate)
}

// SaveImage stores downloaded bytes for d
func (s *Store) SaveImage(d model.ImageDescriptor, data []byte) error {
	if err := s.files.Write(d.StartDate, data); err != nil {
		return fmt.Errorf("%w: save image %s: %v", ErrPersistence, d.StartDate, err)
	}
	return nil
}

func (s *Store) sortedLocked() []model.ImageDescriptor {
	result := make([]model.ImageDescriptor, 0, len(s.entries))
	for _, d := range s.entries {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartDate < result[j].StartDate
	})
	return result
}

func (s *Store) saveLocked() error {
	data, err := yaml.Marshal(catalogFile{Version: formatVersion, Images: s.sortedLocked()})
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPersistence, err)
	}
	if err := platform.WriteFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrPersistence, s.path, err)
	}
	return nil
}
