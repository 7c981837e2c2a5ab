package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/jgivc/groupgallery/internal/common"
	"github.com/jgivc/groupgallery/internal/entity"
)

var (
	idRegexp = regexp.MustCompile(`^[a-f0-9-]{36}$`)
)

type GalleryService interface {
	Resolve(ctx context.Context, rawURL string) (*entity.Group, error)
}

type StatsService interface {
	View(ctx context.Context, id string)
	Views(ctx context.Context, id string) (int64, error)
}

type Renderer interface {
	RenderGallery(group *entity.Group, branding *entity.Branding, publicURL string) (*entity.Page, error)
	RenderError(reason string, branding *entity.Branding, publicURL string) (*entity.Page, error)
	Connector() *entity.Page
}

// BrandingSource yields the branding currently in effect. The app swaps it
// on SIGUSR1 without restarting, so handlers must not cache the value.
type BrandingSource interface {
	Current() *entity.Branding
}

func NewGalleryHandler(srv GalleryService, stats StatsService, rnd Renderer, brand BrandingSource, publicURL string, log *slog.Logger) http.HandlerFunc {
	log = log.With(slog.String("handler", "GalleryHandler"))

	return func(w http.ResponseWriter, r *http.Request) {
		group, err := srv.Resolve(r.Context(), r.URL.Query().Get("url"))
		if err != nil {
			var rejection *common.Rejection
			if !errors.As(err, &rejection) {
				http.Error(w, "Cannot render gallery", http.StatusInternalServerError)

				return
			}

			page, err := rnd.RenderError(rejection.Reason, brand.Current(), publicURL)
			if err != nil {
				log.Error("Cannot render error page", slog.Any("error", err))
				http.Error(w, "Cannot render gallery", http.StatusInternalServerError)

				return
			}

			writePage(w, r, page, http.StatusBadRequest)

			return
		}

		// Best effort, the counter never blocks the page.
		if stats != nil {
			stats.View(r.Context(), group.GroupID)
		}

		page, err := rnd.RenderGallery(group, brand.Current(), publicURL)
		if err != nil {
			log.Error("Cannot render gallery page", slog.String("group_id", group.GroupID), slog.Any("error", err))
			http.Error(w, "Cannot render gallery", http.StatusInternalServerError)

			return
		}

		writePage(w, r, page, http.StatusOK)
	}
}

func NewConnectorHandler(rnd Renderer, log *slog.Logger) http.HandlerFunc {
	log = log.With(slog.String("handler", "ConnectorHandler"))

	return func(w http.ResponseWriter, r *http.Request) {
		page := rnd.Connector()

		if matchETag(r, page.Hash) {
			w.WriteHeader(http.StatusNotModified)

			return
		}

		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		w.Header().Set("ETag", `"`+page.Hash+`"`)
		w.Write([]byte(page.Content))
	}
}

func NewStatsHandler(srv StatsService, log *slog.Logger) http.HandlerFunc {
	log = log.With(slog.String("handler", "StatsHandler"))

	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if !idRegexp.MatchString(id) {
			http.Error(w, "Bad request", http.StatusBadRequest)

			return
		}

		views, err := srv.Views(r.Context(), id)
		if err != nil {
			http.Error(w, "Cannot get stats", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]int64{"views": views}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}
}

func writePage(w http.ResponseWriter, r *http.Request, page *entity.Page, code int) {
	if code == http.StatusOK && matchETag(r, page.Hash) {
		w.WriteHeader(http.StatusNotModified)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if code == http.StatusOK {
		w.Header().Set("ETag", `"`+page.Hash+`"`)
	}
	w.WriteHeader(code)
	w.Write([]byte(page.Content))
}

func matchETag(r *http.Request, hash string) bool {
	return r.Header.Get("If-None-Match") == `"`+hash+`"`
}
