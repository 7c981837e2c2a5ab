package tpladapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	texttemplate "text/template"

	_ "embed"

	"github.com/jgivc/groupgallery/internal/config"
	"github.com/jgivc/groupgallery/internal/entity"
	"github.com/jgivc/groupgallery/internal/util"
)

var (
	//go:embed templates/gallery.html
	defaultGalleryTemplate string

	//go:embed templates/error.html
	defaultErrorTemplate string

	//go:embed templates/connector.js
	connectorTemplate string
)

type GalleryContext struct {
	URL string
	*entity.Group
	Branding *entity.Branding
	Footer   template.HTML
}

type ErrorContext struct {
	URL      string
	Reason   string
	Branding *entity.Branding
}

type connectorContext struct {
	URL       string
	HostsJSON template.JS
}

type tplAdapter struct {
	gallery   *template.Template
	errorPage *template.Template
	connector *entity.Page
}

// NewTplAdapter parses the page templates. A custom gallery template file
// from the branding config replaces the embedded default, the same way a
// share folder overrides the page template in classic file-drop setups.
func NewTplAdapter(cfg *config.Config) (*tplAdapter, error) {
	src := defaultGalleryTemplate
	if name := cfg.Branding.TemplateFileName; name != "" {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("cannot read gallery template: %w", err)
		}

		src = string(data)
	}

	gallery, err := template.New("gallery").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("cannot parse gallery template: %w", err)
	}

	errorPage, err := template.New("error").Parse(defaultErrorTemplate)
	if err != nil {
		return nil, fmt.Errorf("cannot parse error template: %w", err)
	}

	connector, err := buildConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("cannot build connector script: %w", err)
	}

	return &tplAdapter{
		gallery:   gallery,
		errorPage: errorPage,
		connector: connector,
	}, nil
}

func (a *tplAdapter) RenderGallery(group *entity.Group, branding *entity.Branding, publicURL string) (*entity.Page, error) {
	return render(a.gallery, &GalleryContext{
		URL:      publicURL,
		Group:    group,
		Branding: branding,
		Footer:   template.HTML(branding.FooterHTML),
	})
}

func (a *tplAdapter) RenderError(reason string, branding *entity.Branding, publicURL string) (*entity.Page, error) {
	return render(a.errorPage, &ErrorContext{URL: publicURL, Reason: reason, Branding: branding})
}

// Connector returns the script rendered once at startup. It only depends on
// the config, so there is nothing to re-render per request.
func (a *tplAdapter) Connector() *entity.Page {
	return a.connector
}

func buildConnector(cfg *config.Config) (*entity.Page, error) {
	hosts, err := json.Marshal(cfg.Hosts())
	if err != nil {
		return nil, fmt.Errorf("cannot marshal hosts: %w", err)
	}

	tpl, err := texttemplate.New("connector").Parse(connectorTemplate)
	if err != nil {
		return nil, fmt.Errorf("cannot parse connector template: %w", err)
	}

	buf := bytes.Buffer{}
	if err := tpl.Execute(&buf, &connectorContext{URL: cfg.URL, HostsJSON: template.JS(hosts)}); err != nil {
		return nil, fmt.Errorf("cannot execute connector template: %w", err)
	}

	content := buf.String()

	return &entity.Page{Content: content, Hash: util.ContentHash(&content)}, nil
}

func render(tpl *template.Template, data any) (*entity.Page, error) {
	buf := bytes.Buffer{}
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("cannot execute template: %w", err)
	}

	content := buf.String()

	return &entity.Page{Content: content, Hash: util.ContentHash(&content)}, nil
}
