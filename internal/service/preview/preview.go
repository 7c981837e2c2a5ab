package preview

import "github.com/jgivc/groupgallery/internal/entity"

// The category table is the single source of truth for both classification
// and preview selection.
var categories = map[string]entity.PreviewKind{
	"jpg": entity.PreviewImage, "jpeg": entity.PreviewImage, "png": entity.PreviewImage,
	"gif": entity.PreviewImage, "webp": entity.PreviewImage, "svg": entity.PreviewImage,
	"bmp": entity.PreviewImage, "ico": entity.PreviewImage,

	"mp4": entity.PreviewVideo, "mov": entity.PreviewVideo, "avi": entity.PreviewVideo,
	"webm": entity.PreviewVideo, "mkv": entity.PreviewVideo, "flv": entity.PreviewVideo,
	"wmv": entity.PreviewVideo, "m4v": entity.PreviewVideo, "3gp": entity.PreviewVideo,

	"mp3": entity.PreviewAudio, "wav": entity.PreviewAudio, "flac": entity.PreviewAudio,
	"aac": entity.PreviewAudio, "ogg": entity.PreviewAudio, "m4a": entity.PreviewAudio,
	"wma": entity.PreviewAudio, "aiff": entity.PreviewAudio,

	"pdf": entity.PreviewPDF,
}

// Formats browsers play natively. A file can classify as video and still
// not be previewable as one (.avi), it falls back to the icon tile.
var nativeVideo = map[string]struct{}{
	"mp4":  {},
	"webm": {},
	"mov":  {},
}

type Toggles struct {
	PDF   bool
	Audio bool
}

func IsImage(ext string) bool { return categories[ext] == entity.PreviewImage }
func IsVideo(ext string) bool { return categories[ext] == entity.PreviewVideo }
func IsPDF(ext string) bool   { return categories[ext] == entity.PreviewPDF }
func IsAudio(ext string) bool { return categories[ext] == entity.PreviewAudio }

// Kind selects the rendering strategy for an extension. Unknown extensions
// and disabled categories degrade to the icon tile.
func Kind(ext string, t Toggles) entity.PreviewKind {
	switch categories[ext] {
	case entity.PreviewImage:
		return entity.PreviewImage
	case entity.PreviewVideo:
		if _, ok := nativeVideo[ext]; ok {
			return entity.PreviewVideo
		}
	case entity.PreviewPDF:
		if t.PDF {
			return entity.PreviewPDF
		}
	case entity.PreviewAudio:
		if t.Audio {
			return entity.PreviewAudio
		}
	}

	return entity.PreviewIcon
}
