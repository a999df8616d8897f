package domain

// GalleryImage is one entry in a listing's image gallery. List order is
// display order. Spin frames are synthetic entries generated from a source
// image; they carry their frame index.
type GalleryImage struct {
	URL        string `json:"url"`
	IsFeatured bool   `json:"is_featured"`
	IsFrame    bool   `json:"is_frame,omitempty"`
	FrameIndex int    `json:"frame_index,omitempty"`
}

// SetFeatured marks the image at index as featured and clears the flag
// everywhere else, so at most one image is ever featured. Returns false when
// the index is out of range.
func (l *Listing) SetFeatured(index int) bool {
	if index < 0 || index >= len(l.Gallery) {
		return false
	}
	for i := range l.Gallery {
		l.Gallery[i].IsFeatured = i == index
	}
	return true
}

// FeaturedIndex returns the index of the featured image, or -1.
func (l *Listing) FeaturedIndex() int {
	for i, g := range l.Gallery {
		if g.IsFeatured {
			return i
		}
	}
	return -1
}

// RemoveGalleryImage deletes the entry at index, preserving order of the
// rest. Returns false when the index is out of range.
func (l *Listing) RemoveGalleryImage(index int) bool {
	if index < 0 || index >= len(l.Gallery) {
		return false
	}
	l.Gallery = append(l.Gallery[:index], l.Gallery[index+1:]...)
	return true
}
