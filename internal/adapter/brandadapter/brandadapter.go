package brandadapter

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/jgivc/groupgallery/internal/common"
	"github.com/jgivc/groupgallery/internal/config"
	"github.com/jgivc/groupgallery/internal/entity"
	"github.com/spf13/afero"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/frontmatter"
)

// Frontmatter of the branding markdown file. Every field is optional and
// overrides the config default when set.
type Frontmatter struct {
	Title       string `yaml:"title"`
	LogoURL     string `yaml:"logo_url"`
	AccentColor string `yaml:"accent_color"`
	Enabled     *bool  `yaml:"enabled"`
}

type brandAdapter struct {
	fs  afero.Fs
	cfg *config.BrandingConfig
	md  goldmark.Markdown
	log *slog.Logger
}

func NewBrandAdapter(cfg *config.BrandingConfig, log *slog.Logger) *brandAdapter {
	return NewBrandAdapterWithFS(afero.NewOsFs(), cfg, log)
}

func NewBrandAdapterWithFS(fs afero.Fs, cfg *config.BrandingConfig, log *slog.Logger) *brandAdapter {
	md := goldmark.New(
		goldmark.WithExtensions(
			&frontmatter.Extender{},
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	return &brandAdapter{
		fs:  fs,
		cfg: cfg,
		md:  md,
		log: log.With(slog.String("item", "BrandAdapter")),
	}
}

// Defaults returns branding built from the config alone.
func (a *brandAdapter) Defaults() *entity.Branding {
	return &entity.Branding{
		Title:       a.cfg.Title,
		LogoURL:     a.cfg.LogoURL,
		AccentColor: a.cfg.AccentColor,
	}
}

// Load reads the configured branding markdown file and overlays it on the
// config defaults. The frontmatter carries presentation variables, the body
// becomes the page footer HTML. A frontmatter with enabled: false keeps the
// file's content out of the page entirely.
func (a *brandAdapter) Load() (*entity.Branding, error) {
	branding := a.Defaults()

	if a.cfg.FileName == "" {
		return branding, nil
	}

	data, err := afero.ReadFile(a.fs, a.cfg.FileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.ErrBrandingNotFoundError
		}

		return nil, fmt.Errorf("cannot read branding file: %w", err)
	}

	var buf bytes.Buffer
	pc := parser.NewContext()
	if err := a.md.Convert(data, &buf, parser.WithContext(pc)); err != nil {
		return nil, fmt.Errorf("cannot convert branding markdown: %w", err)
	}

	var fm Frontmatter
	if raw := frontmatter.Get(pc); raw != nil {
		if err := raw.Decode(&fm); err != nil {
			return nil, fmt.Errorf("cannot decode branding frontmatter: %w", err)
		}
	}

	if fm.Enabled != nil && !*fm.Enabled {
		a.log.Info("Branding file is disabled", slog.String("path", a.cfg.FileName))

		return branding, nil
	}

	if fm.Title != "" {
		branding.Title = fm.Title
	}
	if fm.LogoURL != "" {
		branding.LogoURL = fm.LogoURL
	}
	if fm.AccentColor != "" {
		branding.AccentColor = fm.AccentColor
	}

	branding.FooterHTML = buf.String()

	return branding, nil
}
