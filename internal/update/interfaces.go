package update

import (
	"context"
	"time"

	"github.com/ytget/bing-wallpaper/internal/model"
)

// Settings is the part of the configuration the orchestrator reads and writes
type Settings interface {
	ScheduleConfig() model.ScheduleConfig
	GetLastUpdate() time.Time
	SetLastUpdate(t time.Time)
	GetMarketRegion() string
	OldestDateStringToKeep(now time.Time) (string, bool)
	GetAutoSetNewestWallpaper() bool
	GetShowUpdateNotification() bool
	GetCurrentWallpaperStartDate() string
	SetCurrentWallpaperStartDate(startDate string)
}

// Fetcher retrieves archive entries and image bytes
type Fetcher interface {
	DownloadImageEntries(ctx context.Context, count int, market string) ([]model.ImageEntry, error)
	DownloadBinary(ctx context.Context, rawURL string) ([]byte, error)
	ImageURL(entryURL string) string
}

// Catalog stores descriptors and their image files
type Catalog interface {
	Upsert(entries []model.ImageEntry) ([]model.ImageDescriptor, error)
	DeleteOlderThan(cutoff string) (int, error)
	Get(key string) (model.ImageDescriptor, bool)
	Newest() (model.ImageDescriptor, bool)
	IsOnDisk(d model.ImageDescriptor) bool
	SaveImage(d model.ImageDescriptor, data []byte) error
}

// Applier sets the desktop picture
type Applier interface {
	Apply(ctx context.Context, d model.ImageDescriptor) error
}
