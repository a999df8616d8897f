package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/multikonnect/listing-service/internal/domain"
	"github.com/multikonnect/listing-service/internal/imaging"
	apperrors "github.com/multikonnect/listing-service/pkg/errors"
)

// Transform kinds accepted by TransformImage.
const (
	TransformRemoveBackground = "remove_background"
	TransformAutoCrop         = "auto_crop"
	TransformEnhance          = "enhance"
	TransformWatermark        = "watermark"
	TransformSpin             = "spin"
)

const uploadConcurrency = 4

// ImageUpload is one file in a batch upload.
type ImageUpload struct {
	Filename string
	Data     []byte
}

// UploadFailure reports one file that could not be ingested.
type UploadFailure struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// UploadResult is the outcome of a batch upload. Failures do not abort the
// batch; accepted images are appended in input order.
type UploadResult struct {
	Listing  *domain.Listing `json:"listing"`
	Accepted int             `json:"accepted"`
	Failures []UploadFailure `json:"failures,omitempty"`
}

// UploadImages ingests a batch of image files into a draft's gallery. Files
// are decoded concurrently; per-file failures are collected and reported
// together while the rest of the batch proceeds.
func (s *ListingService) UploadImages(ctx context.Context, vendorID, id string, uploads []ImageUpload) (*UploadResult, error) {
	if len(uploads) == 0 {
		return nil, apperrors.InvalidInput("at least one image is required")
	}

	draft, err := s.drafts.Get(ctx, vendorID, id)
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}

	type outcome struct {
		url string
		err error
	}
	outcomes := make([]outcome, len(uploads))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)
	for i, upload := range uploads {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			surface, err := imaging.Decode(upload.Data)
			if err != nil {
				outcomes[i] = outcome{err: err}
				return nil
			}
			url, err := surface.EncodeDataURL()
			outcomes[i] = outcome{url: url, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("read uploads: %w", err)
	}

	wasEmpty := len(draft.Gallery) == 0
	result := &UploadResult{Listing: draft}
	for i, o := range outcomes {
		if o.err != nil {
			result.Failures = append(result.Failures, UploadFailure{
				Filename: uploads[i].Filename,
				Reason:   o.err.Error(),
			})
			continue
		}
		draft.Gallery = append(draft.Gallery, domain.GalleryImage{URL: o.url})
		result.Accepted++
	}

	if result.Accepted > 0 {
		if wasEmpty {
			draft.SetFeatured(0)
		}
		if err := s.saveDraft(ctx, draft); err != nil {
			return nil, err
		}
	}

	s.logger.InfoContext(ctx, "gallery upload finished",
		slog.String("listing_id", id),
		slog.Int("accepted", result.Accepted),
		slog.Int("failed", len(result.Failures)),
	)
	return result, nil
}

// RemoveImage deletes a gallery entry.
func (s *ListingService) RemoveImage(ctx context.Context, vendorID, id string, index int) (*domain.Listing, error) {
	return s.withDraft(ctx, vendorID, id, func(draft *domain.Listing) error {
		if !draft.RemoveGalleryImage(index) {
			return apperrors.NotFound("image", strconv.Itoa(index))
		}
		return nil
	})
}

// SetFeaturedImage marks one gallery entry as featured, clearing the flag
// on every other entry.
func (s *ListingService) SetFeaturedImage(ctx context.Context, vendorID, id string, index int) (*domain.Listing, error) {
	return s.withDraft(ctx, vendorID, id, func(draft *domain.Listing) error {
		if !draft.SetFeatured(index) {
			return apperrors.NotFound("image", strconv.Itoa(index))
		}
		return nil
	})
}

// TransformImage applies one named transform to the gallery entry at index.
// Concurrent transforms on the same (listing, index) are rejected; different
// indices run independently. The gallery is only modified after the whole
// transform, including re-encoding, has succeeded.
func (s *ListingService) TransformImage(ctx context.Context, vendorID, id string, index int, kind string) (*domain.Listing, error) {
	guard := id + ":" + strconv.Itoa(index)
	if _, busy := s.inflight.LoadOrStore(guard, struct{}{}); busy {
		return nil, apperrors.Conflict(fmt.Sprintf("a transform is already running for image %d", index))
	}
	defer s.inflight.Delete(guard)

	start := time.Now()
	draft, err := s.transformImage(ctx, vendorID, id, index, kind)
	imaging.ObserveTransform(kind, start, err)
	return draft, err
}

func (s *ListingService) transformImage(ctx context.Context, vendorID, id string, index int, kind string) (*domain.Listing, error) {
	draft, err := s.drafts.Get(ctx, vendorID, id)
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	if index < 0 || index >= len(draft.Gallery) {
		return nil, apperrors.NotFound("image", strconv.Itoa(index))
	}

	surface, err := imaging.DecodeDataURL(draft.Gallery[index].URL)
	if err != nil {
		return nil, err
	}

	if kind == TransformSpin {
		if err := spinGallery(draft, index, surface); err != nil {
			return nil, err
		}
	} else {
		switch kind {
		case TransformRemoveBackground:
			surface.RemoveBackground()
		case TransformAutoCrop:
			surface.AutoCrop()
		case TransformEnhance:
			surface.Enhance()
		case TransformWatermark:
			surface.Watermark()
		default:
			return nil, apperrors.InvalidInput(fmt.Sprintf("unknown transform %q", kind))
		}

		url, err := surface.EncodeDataURL()
		if err != nil {
			return nil, err
		}
		draft.Gallery[index].URL = url
	}

	if err := s.saveDraft(ctx, draft); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "image transformed",
		slog.String("listing_id", id),
		slog.Int("index", index),
		slog.String("kind", kind),
	)
	return draft, nil
}

// spinGallery replaces the entry at index with the generated frame set,
// inserted at the original position. Frame 0 becomes the featured image.
func spinGallery(draft *domain.Listing, index int, surface *imaging.Surface) error {
	frames := surface.Spin()
	entries := make([]domain.GalleryImage, len(frames))
	for i, frame := range frames {
		url, err := frame.EncodeDataURL()
		if err != nil {
			return err
		}
		entries[i] = domain.GalleryImage{
			URL:        url,
			IsFrame:    true,
			FrameIndex: i,
		}
	}

	gallery := make([]domain.GalleryImage, 0, len(draft.Gallery)+len(entries)-1)
	gallery = append(gallery, draft.Gallery[:index]...)
	gallery = append(gallery, entries...)
	gallery = append(gallery, draft.Gallery[index+1:]...)
	draft.Gallery = gallery

	draft.SetFeatured(index)
	return nil
}
