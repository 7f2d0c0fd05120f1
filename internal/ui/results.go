package ui

import (
	"fmt"
	"net/url"

	"Encrypty/internal/app"
	"Encrypty/internal/log"
	"Encrypty/internal/render"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// resultsPanel is the native counterpart of the HTML results container.
// Methods must run on the UI goroutine.
type resultsPanel struct {
	link render.LinkFunc

	banner    *Banner
	count     *widget.Label
	output    *widget.Label
	downloads *fyne.Container
	container *fyne.Container
}

func newResultsPanel(link render.LinkFunc) *resultsPanel {
	p := &resultsPanel{
		link:      link,
		banner:    NewBanner(),
		count:     widget.NewLabel(""),
		output:    widget.NewLabel(""),
		downloads: container.NewVBox(),
	}
	p.output.TextStyle = fyne.TextStyle{Monospace: true}
	p.output.Wrapping = fyne.TextWrapWord

	p.container = container.NewVBox(p.banner, p.count, p.output, p.downloads)
	p.container.Hide()
	return p
}

func (p *resultsPanel) hide() {
	p.container.Hide()
}

// show replaces the displayed view with o.
func (p *resultsPanel) show(o app.Outcome) {
	if !o.OK {
		p.showError(o.Message)
		return
	}

	p.banner.SetOutcome("✓ Success! "+o.Message, true)

	if o.ProcessedCount != nil {
		p.count.SetText(fmt.Sprintf("Processed %d file(s)", *o.ProcessedCount))
		p.count.Show()
	} else {
		p.count.Hide()
	}

	if o.OutputText != nil {
		p.output.SetText(*o.OutputText)
		p.output.Show()
	} else {
		p.output.Hide()
	}

	p.downloads.RemoveAll()
	for _, name := range o.OutputFiles {
		u, err := url.Parse(p.link(name))
		if err != nil {
			log.Warn("bad download url", log.String("file", name), log.Err(err))
			continue
		}
		p.downloads.Add(widget.NewHyperlink("Download "+name, u))
	}
	if o.HasDownloads() {
		p.downloads.Show()
	} else {
		p.downloads.Hide()
	}

	p.container.Show()
}

func (p *resultsPanel) showError(message string) {
	p.banner.SetOutcome("✗ Error: "+message, false)
	p.count.Hide()
	p.output.Hide()
	p.downloads.RemoveAll()
	p.downloads.Hide()
	p.container.Show()
}
