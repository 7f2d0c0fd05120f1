package ui

import (
	"image/color"

	"Encrypty/internal/util"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Banner is the headline of the results panel: bold text colored green for
// success and red for errors.
type Banner struct {
	widget.BaseWidget
	text  string
	color color.Color
}

// NewBanner creates an empty banner.
func NewBanner() *Banner {
	b := &Banner{color: util.GRAY}
	b.ExtendBaseWidget(b)
	return b
}

// SetOutcome updates text and color in one refresh.
func (b *Banner) SetOutcome(text string, ok bool) {
	b.text = text
	b.color = util.RED
	if ok {
		b.color = util.GREEN
	}
	b.Refresh()
}

// Text returns the displayed text.
func (b *Banner) Text() string {
	return b.text
}

// MinSize returns the minimum size needed to display the banner.
func (b *Banner) MinSize() fyne.Size {
	return fyne.MeasureText(b.text, theme.TextSize(), fyne.TextStyle{Bold: true})
}

// CreateRenderer creates the renderer for the banner.
func (b *Banner) CreateRenderer() fyne.WidgetRenderer {
	text := canvas.NewText(b.text, b.color)
	text.TextSize = theme.TextSize()
	text.TextStyle = fyne.TextStyle{Bold: true}
	return &bannerRenderer{banner: b, text: text}
}

type bannerRenderer struct {
	banner *Banner
	text   *canvas.Text
}

func (r *bannerRenderer) Layout(size fyne.Size) {
	r.text.Move(fyne.NewPos(0, 0))
	r.text.Resize(size)
}

func (r *bannerRenderer) MinSize() fyne.Size {
	return r.banner.MinSize()
}

func (r *bannerRenderer) Refresh() {
	r.text.Text = r.banner.text
	r.text.Color = r.banner.color
	canvas.Refresh(r.text)
}

func (r *bannerRenderer) Destroy() {}

func (r *bannerRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.text}
}
