package gallery

import (
	"context"
	"log/slog"

	"github.com/jgivc/groupgallery/internal/config"
	"github.com/jgivc/groupgallery/internal/entity"
	"github.com/jgivc/groupgallery/internal/service/preview"
	"github.com/jgivc/groupgallery/internal/service/validator"
)

const (
	serviceName = "gallery"
)

type MetadataFetcher interface {
	FetchAll(ctx context.Context, desc *entity.GroupDescriptor) []*entity.FileEntry
}

type galleryService struct {
	fetcher MetadataFetcher
	cfg     *config.Config
	hosts   []string
	toggles preview.Toggles
	log     *slog.Logger
}

func NewGalleryService(fetcher MetadataFetcher, cfg *config.Config, log *slog.Logger) *galleryService {
	return &galleryService{
		fetcher: fetcher,
		cfg:     cfg,
		hosts:   cfg.Hosts(),
		toggles: preview.Toggles{PDF: cfg.PDFPreview(), Audio: cfg.AudioPreview()},
		log:     log.With(slog.String("service", serviceName)),
	}
}

// Resolve runs the whole pipeline for one raw group URL: validation, the
// bounded metadata fetch and preview classification. The returned error is
// a *common.Rejection for every validation failure; metadata failures never
// surface, those entries carry placeholder names.
func (s *galleryService) Resolve(ctx context.Context, rawURL string) (*entity.Group, error) {
	desc, err := validator.Validate(rawURL, s.hosts, s.cfg.MaxFiles)
	if err != nil {
		s.log.Info("Rejected group URL", slog.String("url", rawURL), slog.Any("error", err))

		return nil, err
	}

	files := s.fetcher.FetchAll(ctx, desc)
	for _, file := range files {
		file.Kind = preview.Kind(file.Ext, s.toggles)
		file.PreviewURL = s.previewURL(file)
	}

	s.log.Info("Resolved group",
		slog.String("group_id", desc.GroupID),
		slog.String("host", desc.Host),
		slog.Int("count", desc.Count))

	return &entity.Group{GroupDescriptor: desc, Files: files}, nil
}

// previewURL picks the address the preview element loads. Images go through
// the CDN preview transform to avoid shipping originals into the grid.
func (s *galleryService) previewURL(file *entity.FileEntry) string {
	if file.Kind == entity.PreviewImage {
		return file.URL + "-/preview/" + s.cfg.PreviewConfig.Size + "/"
	}

	return file.URL
}
