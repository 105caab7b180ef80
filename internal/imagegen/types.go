package imagegen

import (
	"context"
	"strings"

	"timelessme/internal/domain"
)

// SourceImage is the photo a user uploaded into a wizard session.
type SourceImage struct {
	Data     []byte
	MIMEType string
	Name     string
	Width    int
	Height   int
	// Ref is the display reference serving Data; empty until acquired.
	Ref string
}

// GeneratedImage is the restyled photo returned by the model.
type GeneratedImage struct {
	DataURI  string
	MIMEType string
	Data     []byte
	Ref      string
}

// Transformer restyles a source photo into the given decade.
type Transformer interface {
	Transform(ctx context.Context, src SourceImage, decade domain.Decade) (GeneratedImage, error)
}

// IsImageMIME reports whether a declared content type is an image type.
func IsImageMIME(mime string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mime)), "image/")
}
