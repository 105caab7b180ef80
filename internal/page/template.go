package page

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"timelessme/internal/domain"
	"timelessme/internal/wizard"
)

//go:embed assets/index.html
var indexTmpl string

//go:embed assets/style.css
var staticFiles embed.FS

// RefreshSeconds is the auto-refresh period of the page while generating.
const RefreshSeconds = 2

// View is the data the index template renders.
type View struct {
	Lang  string
	State string

	SourceURL    string
	GeneratedURI template.URL
	DownloadURL  string

	Decades      []domain.Decade
	ShowPicker   bool
	ErrorMessage string

	LoaderMessage  string
	RefreshSeconds int

	printer *message.Printer
}

// T translates a catalog key into the view's locale.
func (v View) T(key string) string {
	if v.printer == nil {
		return key
	}
	return v.printer.Sprintf(key)
}

// NewView derives the page for a wizard snapshot.
func NewView(snap wizard.Snapshot, locale language.Tag, now time.Time) View {
	v := View{
		Lang:    locale.String(),
		State:   snap.State.String(),
		Decades: domain.Decades(),
		printer: Printer(locale),
	}
	if snap.Source != nil && snap.Source.Ref != "" {
		v.SourceURL = RefURL(snap.Source.Ref)
	}

	switch snap.State {
	case wizard.ImageSelected:
		v.ShowPicker = true
	case wizard.Generating:
		v.LoaderMessage = LoaderMessage(now.Sub(snap.GeneratingSince))
		v.RefreshSeconds = RefreshSeconds
	case wizard.Result:
		// Built by imagegen.EncodeDataURI from decoded bytes.
		v.GeneratedURI = template.URL(snap.Generated.DataURI)
		if snap.Generated.Ref != "" {
			v.DownloadURL = DownloadURL(snap.Generated.Ref)
		}
	case wizard.Error:
		v.ErrorMessage = snap.ErrorMessage
		v.ShowPicker = snap.Source != nil
	}
	return v
}

func RefURL(ref string) string      { return "/refs/" + ref }
func DownloadURL(ref string) string { return "/refs/" + ref + "/download" }

// Renderer renders the wizard page.
type Renderer struct {
	tmpl *template.Template
	once sync.Once
}

func (r *Renderer) Render(v View) ([]byte, error) {
	r.once.Do(func() {
		r.tmpl = template.Must(template.New("index").Parse(indexTmpl))
	})

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Assets returns the static files served under /assets/.
func Assets() fs.FS {
	sub, err := fs.Sub(staticFiles, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}
