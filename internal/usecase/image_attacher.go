package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/errors"
	domainRepo "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/repository"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/infrastructure/media"
	"go.uber.org/zap"
)

// Downloader fetches a plain resource and reports its content type
type Downloader interface {
	Download(ctx context.Context, link string) ([]byte, string, error)
}

// ImageOptions controls where and how normalized pictures are stored
type ImageOptions struct {
	KeyPrefix string
	Quality   int
	// Timeout bounds one download; zero keeps the client timeout
	Timeout time.Duration
}

// ImageAttacher downloads candidate pictures, normalizes them and hands them to the media store
type ImageAttacher struct {
	downloader Downloader
	store      domainRepo.MediaStore
	opts       ImageOptions
	logger     *zap.Logger
}

// NewImageAttacher creates an image attacher. A nil store disables pictures.
func NewImageAttacher(downloader Downloader, store domainRepo.MediaStore, opts ImageOptions, logger *zap.Logger) *ImageAttacher {
	return &ImageAttacher{
		downloader: downloader,
		store:      store,
		opts:       opts,
		logger:     logger,
	}
}

// Enabled reports whether pictures are stored at all
func (a *ImageAttacher) Enabled() bool {
	return a != nil && a.store != nil && a.downloader != nil
}

// First stores the first candidate that downloads and decodes as an image.
// Failures are logged and the next candidate is tried; no candidate left returns ("", false).
func (a *ImageAttacher) First(ctx context.Context, key string, urls []string) (string, bool) {
	if !a.Enabled() {
		return "", false
	}

	for _, link := range urls {
		if ctx.Err() != nil {
			return "", false
		}
		uri, err := a.attach(ctx, key, link)
		if err != nil {
			a.logger.Warn("ImageAttacher: skipping image",
				zap.String("key", key),
				zap.String("url", link),
				zap.Error(err))
			continue
		}
		return uri, true
	}
	return "", false
}

func (a *ImageAttacher) attach(ctx context.Context, key, link string) (string, error) {
	downloadCtx := ctx
	if a.opts.Timeout > 0 {
		var cancel context.CancelFunc
		downloadCtx, cancel = context.WithTimeout(ctx, a.opts.Timeout)
		defer cancel()
	}

	data, contentType, err := a.downloader.Download(downloadCtx, link)
	if err != nil {
		return "", err
	}
	if !media.IsImageContentType(contentType) {
		return "", errors.NewDownloadError(fmt.Sprintf("unexpected content type %q", contentType), nil)
	}

	normalized, err := media.Normalize(data, a.opts.Quality)
	if err != nil {
		return "", errors.NewDownloadError("image could not be decoded", err)
	}

	return a.store.Put(ctx, a.opts.KeyPrefix+key, normalized, media.ContentTypeJPEG)
}
