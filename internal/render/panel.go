package render

import (
	"fmt"
	"html/template"
	"strings"
	"sync"

	"Encrypty/internal/app"
)

// Ensure Panel implements app.Renderer
var _ app.Renderer = (*Panel)(nil)

// LinkFunc maps an output filename to its download URL.
type LinkFunc func(filename string) string

// Button is the displayed state of one trigger.
type Button struct {
	Disabled bool
	Label    string
}

// Link is one entry of the download area.
type Link struct {
	Href  string
	Name  string
	Label string
}

// Panel is an HTML results container. It keeps the markup of the last view
// together with the trigger and visibility state the page needs.
type Panel struct {
	mu   sync.Mutex
	link LinkFunc

	content          string
	links            []Link
	visible          bool
	downloadsVisible bool
	scrolled         bool
	buttons          map[app.Trigger]Button
}

// NewPanel creates a hidden panel. link builds download hrefs.
func NewPanel(link LinkFunc) *Panel {
	return &Panel{
		link: link,
		buttons: map[app.Trigger]Button{
			app.TriggerUpload:    {Label: app.UploadLabel},
			app.TriggerDirectory: {Label: app.DirectoryLabel},
		},
	}
}

// SetBusy implements app.Renderer.
func (p *Panel) SetBusy(trigger app.Trigger, busy bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	label := app.UploadLabel
	if trigger == app.TriggerDirectory {
		label = app.DirectoryLabel
	}
	if busy {
		label = app.BusyLabel
	}
	p.buttons[trigger] = Button{Disabled: busy, Label: label}
}

// HideResults implements app.Renderer.
func (p *Panel) HideResults() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible = false
	p.scrolled = false
}

// Render implements app.Renderer.
func (p *Panel) Render(state *app.State) {
	o, ok := state.Outcome()
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if o.OK {
		p.content = successHTML(o)
		p.links = p.buildLinks(o.OutputFiles)
	} else {
		p.content = errorHTML(o.Message)
		p.links = nil
	}
	p.downloadsVisible = len(p.links) > 0
	p.visible = true
	p.scrolled = true
}

func (p *Panel) buildLinks(files []string) []Link {
	if len(files) == 0 {
		return nil
	}
	links := make([]Link, 0, len(files))
	for _, name := range files {
		href := name
		if p.link != nil {
			href = p.link(name)
		}
		links = append(links, Link{Href: href, Name: name, Label: "Download " + name})
	}
	return links
}

func successHTML(o app.Outcome) string {
	var b strings.Builder
	b.WriteString(`<div class="success">`)
	b.WriteString(`<strong>✓ Success!</strong> `)
	b.WriteString(Escape(o.Message))
	if o.ProcessedCount != nil {
		fmt.Fprintf(&b, `<br>Processed %d file(s)`, *o.ProcessedCount)
	}
	b.WriteString(`</div>`)
	if o.OutputText != nil {
		b.WriteString(`<div class="output-text">`)
		b.WriteString(Escape(*o.OutputText))
		b.WriteString(`</div>`)
	}
	return b.String()
}

func errorHTML(message string) string {
	return `<div class="error"><strong>✗ Error:</strong> ` + Escape(message) + `</div>`
}

// Content returns the markup of the current view.
func (p *Panel) Content() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.content
}

// Links returns the entries of the download area.
func (p *Panel) Links() []Link {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Link(nil), p.links...)
}

// Visible reports whether the results container is shown.
func (p *Panel) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible
}

// DownloadsVisible reports whether the download area is shown.
func (p *Panel) DownloadsVisible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.downloadsVisible
}

// ScrolledIntoView reports whether the last render brought the container into view.
func (p *Panel) ScrolledIntoView() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scrolled
}

// Button returns the displayed state of trigger.
func (p *Panel) Button(trigger app.Trigger) Button {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buttons[trigger]
}

// DownloadsHTML renders the download area, one anchor per output file.
func (p *Panel) DownloadsHTML() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var b strings.Builder
	for _, l := range p.links {
		fmt.Fprintf(&b, `<a class="download-link" href="%s" download="%s">%s</a>`,
			Escape(l.Href), Escape(l.Name), Escape(l.Label))
	}
	return b.String()
}

// HTML returns the whole results container for embedding in a page.
// Interpolated text is already escaped.
func (p *Panel) HTML() template.HTML {
	content := p.Content()
	downloads := p.DownloadsHTML()

	var b strings.Builder
	b.WriteString(`<div id="results"`)
	if !p.Visible() {
		b.WriteString(` hidden`)
	}
	b.WriteString(`>`)
	b.WriteString(`<div id="result-content">` + content + `</div>`)
	b.WriteString(`<div id="download-links"`)
	if !p.DownloadsVisible() {
		b.WriteString(` hidden`)
	}
	b.WriteString(`>` + downloads + `</div>`)
	b.WriteString(`</div>`)
	return template.HTML(b.String())
}
