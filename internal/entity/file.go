package entity

type PreviewKind string

const (
	PreviewImage PreviewKind = "image"
	PreviewVideo PreviewKind = "video"
	PreviewPDF   PreviewKind = "pdf"
	PreviewAudio PreviewKind = "audio"
	PreviewIcon  PreviewKind = "icon"
)

// FileEntry is the per-file display information resolved during the fetch
// phase. Immutable after the fetch, never persisted.
type FileEntry struct {
	Index       int    // Zero-based position within the group
	URL         string // Canonical file address, derived from the descriptor
	PreviewURL  string // Address used by the preview element (may carry a CDN transform)
	Name        string // Display name, placeholder when metadata is unavailable
	Ext         string // Lowercase extension without the dot, empty when absent
	Kind        PreviewKind
	Placeholder bool // True when metadata could not be retrieved
}
