package entity

// Branding holds the presentation parameters of the gallery page.
// Defaults come from the config, an optional branding file overrides them.
type Branding struct {
	Title       string
	LogoURL     string
	AccentColor string
	FooterHTML  string // Rendered from the branding markdown body
}
