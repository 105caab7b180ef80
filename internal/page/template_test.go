package page

import (
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"timelessme/internal/domain"
	"timelessme/internal/imagegen"
	"timelessme/internal/wizard"
)

func render(t *testing.T, snap wizard.Snapshot, locale language.Tag, now time.Time) string {
	t.Helper()
	var r Renderer
	out, err := r.Render(NewView(snap, locale, now))
	require.NoError(t, err)
	return string(out)
}

func selected() wizard.Snapshot {
	return wizard.Snapshot{
		State:  wizard.ImageSelected,
		Source: &imagegen.SourceImage{MIMEType: "image/png", Ref: "src-1"},
	}
}

func TestRenderInitial(t *testing.T) {
	html := render(t, wizard.Snapshot{State: wizard.Initial}, language.English, time.Now())
	require.Contains(t, html, "Timeless Me")
	require.Contains(t, html, "Upload Photo")
	require.Contains(t, html, "Click to Begin")
	require.Contains(t, html, `accept="image/*"`)
	require.NotContains(t, html, `name="decade"`)
	require.NotContains(t, html, `http-equiv="refresh"`)
}

func TestRenderImageSelectedShowsDecadesInOrder(t *testing.T) {
	html := render(t, selected(), language.English, time.Now())
	require.Contains(t, html, `src="/refs/src-1"`)
	require.Contains(t, html, "Replace Photo")

	last := -1
	for _, d := range domain.Decades() {
		idx := strings.Index(html, `value="`+d.String()+`"`)
		require.Greater(t, idx, last, "decade %s out of order", d)
		last = idx
	}
}

func TestRenderGeneratingRotatesMessages(t *testing.T) {
	since := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	snap := selected()
	snap.State = wizard.Generating
	snap.PendingJob = 1
	snap.GeneratingSince = since

	html := render(t, snap, language.English, since.Add(time.Second))
	require.Contains(t, html, "Warming up the time machine...")
	require.Contains(t, html, `http-equiv="refresh"`)
	require.NotContains(t, html, `name="decade"`)
	require.NotContains(t, html, `action="/photo"`)

	html = render(t, snap, language.English, since.Add(3*time.Second))
	require.Contains(t, html, "Searching for vintage pixels...")
}

func TestRenderResult(t *testing.T) {
	snap := selected()
	snap.State = wizard.Result
	snap.Generated = &imagegen.GeneratedImage{DataURI: "data:image/png;base64,iVBORw0KGgo=", Ref: "gen-1"}

	html := render(t, snap, language.English, time.Now())
	require.Contains(t, html, `src="data:image/png;base64,iVBORw0KGgo="`)
	require.Contains(t, html, `href="/refs/gen-1/download"`)
	require.Contains(t, html, `download="timeless-me.png"`)
	require.Contains(t, html, "New Photo")
}

func TestRenderErrorWithRetry(t *testing.T) {
	snap := selected()
	snap.State = wizard.Error
	snap.ErrorMessage = imagegen.UserMessage(imagegen.KindEmptyResult)

	html := render(t, snap, language.English, time.Now())
	require.Contains(t, html, "No image was generated. The model may have refused the request.")
	require.Contains(t, html, "Try Again")
	require.Contains(t, html, `name="decade"`)
}

func TestRenderErrorWithoutPhoto(t *testing.T) {
	snap := wizard.Snapshot{State: wizard.Error, ErrorMessage: imagegen.UserMessage(imagegen.KindInvalidInput)}
	html := render(t, snap, language.English, time.Now())
	require.Contains(t, html, "Please upload a valid image file.")
	require.NotContains(t, html, `name="decade"`)
}

func TestRenderPortuguese(t *testing.T) {
	snap := wizard.Snapshot{State: wizard.Error, ErrorMessage: imagegen.UserMessage(imagegen.KindInvalidInput)}
	html := render(t, snap, language.BrazilianPortuguese, time.Now())
	require.Contains(t, html, `lang="pt-BR"`)
	require.Contains(t, html, "Envie um arquivo de imagem válido.")
	require.Contains(t, html, "Tentar novamente")
}

func TestLoaderMessageCycles(t *testing.T) {
	require.Equal(t, "Warming up the time machine...", LoaderMessage(0))
	require.Equal(t, "Warming up the time machine...", LoaderMessage(-time.Second))
	require.Equal(t, "Almost there, don't touch the dial!", LoaderMessage(6*LoaderInterval))
	require.Equal(t, "Warming up the time machine...", LoaderMessage(7*LoaderInterval))
}

func TestCatalogCoversEveryMessage(t *testing.T) {
	pt := map[string]bool{}
	for _, e := range translations[language.BrazilianPortuguese] {
		require.False(t, pt[e.key], "duplicate key %q", e.key)
		pt[e.key] = true
	}
	for _, msg := range loaderMessages {
		require.Contains(t, pt, msg)
	}
	for _, kind := range []imagegen.ErrorKind{
		imagegen.KindInvalidInput, imagegen.KindConfiguration, imagegen.KindTransport, imagegen.KindEmptyResult,
	} {
		require.Contains(t, pt, imagegen.UserMessage(kind))
	}
}

func TestAssets(t *testing.T) {
	data, err := fs.ReadFile(Assets(), "style.css")
	require.NoError(t, err)
	require.NotEmpty(t, data)
}
