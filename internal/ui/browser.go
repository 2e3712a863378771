package ui

import "github.com/ytget/bing-wallpaper/internal/model"

// Browser tracks the selected wallpaper among the on-disk images, oldest first
type Browser struct {
	items []model.ImageDescriptor
	index int
}

// NewBrowser creates a browser positioned on currentKey, or on the newest image
func NewBrowser(items []model.ImageDescriptor, currentKey string) *Browser {
	b := &Browser{}
	b.Reset(items, currentKey)
	return b
}

// Reset replaces the items and selects currentKey, or the newest image when absent
func (b *Browser) Reset(items []model.ImageDescriptor, currentKey string) {
	b.items = items
	b.index = len(items) - 1
	for i, d := range items {
		if d.StartDate == currentKey {
			b.index = i
			break
		}
	}
}

// Current returns the selected descriptor
func (b *Browser) Current() (model.ImageDescriptor, bool) {
	if b.index < 0 || b.index >= len(b.items) {
		return model.ImageDescriptor{}, false
	}
	return b.items[b.index], true
}

// HasPrevious reports whether an older image exists
func (b *Browser) HasPrevious() bool {
	return b.index > 0
}

// HasNext reports whether a newer image exists
func (b *Browser) HasNext() bool {
	return b.index >= 0 && b.index < len(b.items)-1
}

// Previous selects the next older image
func (b *Browser) Previous() (model.ImageDescriptor, bool) {
	if !b.HasPrevious() {
		return model.ImageDescriptor{}, false
	}
	b.index--
	return b.items[b.index], true
}

// Next selects the next newer image
func (b *Browser) Next() (model.ImageDescriptor, bool) {
	if !b.HasNext() {
		return model.ImageDescriptor{}, false
	}
	b.index++
	return b.items[b.index], true
}
