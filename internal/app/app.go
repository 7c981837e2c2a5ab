package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/jgivc/groupgallery/internal/adapter/brandadapter"
	"github.com/jgivc/groupgallery/internal/adapter/cdnadapter"
	"github.com/jgivc/groupgallery/internal/adapter/tpladapter"
	"github.com/jgivc/groupgallery/internal/common"
	"github.com/jgivc/groupgallery/internal/config"
	"github.com/jgivc/groupgallery/internal/entity"
	httphandler "github.com/jgivc/groupgallery/internal/handler/http"
	"github.com/jgivc/groupgallery/internal/repository/stats"
	"github.com/jgivc/groupgallery/internal/service/gallery"
	srvstats "github.com/jgivc/groupgallery/internal/service/stats"
	"github.com/redis/go-redis/v9"
)

const (
	stopTimeout = 5 * time.Second
)

type brandingLoader interface {
	Defaults() *entity.Branding
	Load() (*entity.Branding, error)
}

type App struct {
	cfgPath  string
	cfg      *config.Config
	srv      *http.Server
	brand    brandingLoader
	branding atomic.Pointer[entity.Branding]
	log      *slog.Logger
}

func New(cfgPath string) *App {
	return &App{
		cfgPath: cfgPath,
	}
}

// Current returns the branding in effect, it satisfies the handlers'
// BrandingSource. The pointer is swapped atomically on reload.
func (a *App) Current() *entity.Branding {
	return a.branding.Load()
}

func (a *App) Start() {
	a.cfg = config.MustLoad(a.cfgPath)

	lo := &slog.HandlerOptions{}
	switch a.cfg.LogLevel {
	case config.LogLevelInfo:
		lo.Level = slog.LevelInfo
	case config.LogLevelWarn:
		lo.Level = slog.LevelWarn
	case config.LogLevelError:
		lo.Level = slog.LevelError
	case config.LogLevelDebug:
		lo.Level = slog.LevelDebug
	default:
		panic("unknown log level")
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, lo))
	a.log = log

	a.brand = brandadapter.NewBrandAdapter(&a.cfg.Branding, log)
	a.ReloadBranding()

	tpl, err := tpladapter.NewTplAdapter(a.cfg)
	if err != nil {
		panic(err)
	}

	cdn := cdnadapter.NewCDNAdapter(&a.cfg.FetcherConfig, log)
	gallerySrv := gallery.NewGalleryService(cdn, a.cfg, log)

	var statsSrv httphandler.StatsService
	if a.cfg.RedisURL != "" {
		opt, err := redis.ParseURL(a.cfg.RedisURL)
		if err != nil {
			panic(err)
		}

		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			panic(err)
		}

		statsSrv = srvstats.NewStatsService(stats.NewStatsRepository(rdb, log), log)
	}

	http.Handle("GET /{$}", httphandler.NewGalleryHandler(gallerySrv, statsSrv, tpl, a, a.cfg.URL, log))
	http.Handle("GET /connector.js", httphandler.NewConnectorHandler(tpl, log))
	http.Handle("GET /healthz/{$}", httphandler.NewHealthHandler())

	if statsSrv != nil {
		http.Handle("GET /stats/{id}/{$}", httphandler.NewStatsHandler(statsSrv, log))
	}

	a.srv = &http.Server{
		Addr: a.cfg.Listen,
	}

	go func() {
		log.Info("Start listen", slog.String("addr", a.cfg.Listen))

		if err := a.srv.ListenAndServe(); err != nil {
			log.Error("Could not serve", slog.String("listen_addr", a.cfg.Listen), slog.Any("error", err))
			os.Exit(2)
		}
	}()
}

// ReloadBranding re-reads the branding file. Called at startup and on
// SIGUSR1. A missing file is not fatal, the config defaults apply.
func (a *App) ReloadBranding() {
	branding, err := a.brand.Load()
	if err != nil {
		if errors.Is(err, common.ErrBrandingNotFoundError) {
			a.log.Warn("Branding file not found, using defaults", slog.String("path", a.cfg.Branding.FileName))
			a.branding.Store(a.brand.Defaults())

			return
		}

		a.log.Error("Cannot load branding", slog.Any("error", err))

		if a.branding.Load() == nil {
			a.branding.Store(a.brand.Defaults())
		}

		return
	}

	a.branding.Store(branding)
	a.log.Info("Branding loaded", slog.String("title", branding.Title))
}

func (a *App) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	a.srv.Shutdown(ctx)
}
