// Package ui provides the Encrypty graphical user interface using Fyne.
//
// The window has a Files tab (file picker, action choice, submit button)
// and a Directory tab (server-side path, action choice, submit button).
// Both submit through app.Controller on a goroutine; every widget change
// the controller triggers is posted back with fyne.Do.
package ui

import (
	"context"
	"sync"

	"Encrypty/internal/api"
	"Encrypty/internal/app"
	"Encrypty/internal/config"
	"Encrypty/internal/log"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"
)

const (
	appID        = "io.encrypty.client"
	windowWidth  = 520
	windowHeight = 560
)

// Action choices offered by both tabs.
var actionOptions = []string{"Encrypt", "Decrypt"}

// App represents the main UI application.
type App struct {
	Window  fyne.Window
	Version string

	fyneApp fyne.App
	client  *api.Client
	ctrl    *app.Controller
	bound   *app.BoundState
	ctx     context.Context
	cancel  context.CancelFunc
	pending sync.WaitGroup

	// Current picker value; replaced on every pick or drop
	selMu     sync.Mutex
	selection []pickedFile

	// Files tab
	uploadAction *widget.RadioGroup
	uploadBtn    *widget.Button

	// Directory tab
	dirEntry  *widget.Entry
	dirAction *widget.RadioGroup
	dirBtn    *widget.Button

	results *resultsPanel
	scroll  *container.Scroll
}

// NewApp creates the GUI for the backend named in cfg.
func NewApp(version string, cfg config.Config) (*App, error) {
	client, err := api.NewClient(cfg.BackendURL, api.WithLogger(log.GetLogger()))
	if err != nil {
		return nil, err
	}
	return newApp(fyneapp.NewWithID(appID), version, client), nil
}

func newApp(fa fyne.App, version string, client *api.Client) *App {
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		Version: version,
		fyneApp: fa,
		client:  client,
		bound:   app.NewBoundState(),
		ctx:     ctx,
		cancel:  cancel,
	}
	a.results = newResultsPanel(client.DownloadURL)
	a.ctrl = app.NewController(client, app.NewFuncRenderer(a.onBusy, a.onHide, a.onRender))
	a.ctrl.SetLogger(log.GetLogger())

	a.fyneApp.Settings().SetTheme(NewTheme())
	a.Window = a.fyneApp.NewWindow("Encrypty " + version)
	a.Window.SetContent(a.build())
	a.Window.Resize(fyne.NewSize(windowWidth, windowHeight))
	a.Window.SetOnDropped(a.onDrop)
	a.Window.SetOnClosed(a.cancel)
	return a
}

// Run shows the window and blocks until it is closed.
func (a *App) Run() {
	a.Window.ShowAndRun()
}

// build lays out both tabs above the results panel.
func (a *App) build() fyne.CanvasObject {
	tabs := container.NewAppTabs(
		container.NewTabItem("Files", a.buildFilesTab()),
		container.NewTabItem("Directory", a.buildDirectoryTab()),
	)

	a.scroll = container.NewVScroll(container.NewPadded(container.NewVBox(
		tabs,
		widget.NewSeparator(),
		a.results.container,
	)))
	return a.scroll
}

func (a *App) buildFilesTab() fyne.CanvasObject {
	selection := widget.NewLabelWithData(a.bound.Selection)
	selection.Wrapping = fyne.TextWrapWord

	choose := widget.NewButton("Choose File...", a.showFilePicker)
	hint := widget.NewLabel("or drop files onto the window")
	hint.TextStyle = fyne.TextStyle{Italic: true}

	a.uploadAction = widget.NewRadioGroup(actionOptions, nil)
	a.uploadAction.Horizontal = true
	a.uploadAction.SetSelected(actionOptions[0])

	a.uploadBtn = widget.NewButton(app.UploadLabel, a.submitUpload)
	a.uploadBtn.Importance = widget.HighImportance
	bindButton(a.uploadBtn, a.bound.UploadLabel, a.bound.Busy)

	return container.NewVBox(
		container.NewHBox(choose, hint),
		selection,
		a.uploadAction,
		a.uploadBtn,
	)
}

func (a *App) buildDirectoryTab() fyne.CanvasObject {
	a.dirEntry = widget.NewEntry()
	a.dirEntry.SetPlaceHolder("/path/to/directory")

	a.dirAction = widget.NewRadioGroup(actionOptions, nil)
	a.dirAction.Horizontal = true
	a.dirAction.SetSelected(actionOptions[0])

	a.dirBtn = widget.NewButton(app.DirectoryLabel, a.submitDirectory)
	a.dirBtn.Importance = widget.HighImportance
	bindButton(a.dirBtn, a.bound.DirectoryLabel, a.bound.Busy)

	return container.NewVBox(
		widget.NewLabel("Directory on the backend host:"),
		a.dirEntry,
		a.dirAction,
		a.dirBtn,
	)
}

// bindButton keeps a button's label and enabled state in sync with bindings.
func bindButton(btn *widget.Button, label binding.String, busy binding.Bool) {
	label.AddListener(binding.NewDataListener(func() {
		text, _ := label.Get()
		btn.SetText(text)
	}))
	busy.AddListener(binding.NewDataListener(func() {
		if b, _ := busy.Get(); b {
			btn.Disable()
		} else {
			btn.Enable()
		}
	}))
}

// submitUpload runs the upload flow off the UI goroutine.
func (a *App) submitUpload() {
	files, err := a.openSelection()
	if err != nil {
		log.Error("open selection", log.Err(err))
		a.results.showError(err.Error())
		return
	}
	action := a.uploadAction.Selected

	a.pending.Add(1)
	go func() {
		defer a.pending.Done()
		defer closeAll(files)
		_, _ = a.ctrl.SubmitUpload(a.ctx, app.UploadForm{Files: files, Action: action})
	}()
}

// submitDirectory runs the directory flow off the UI goroutine.
func (a *App) submitDirectory() {
	form := app.DirectoryForm{Directory: a.dirEntry.Text, Action: a.dirAction.Selected}

	a.pending.Add(1)
	go func() {
		defer a.pending.Done()
		_, _ = a.ctrl.SubmitDirectory(a.ctx, form)
	}()
}

// wait blocks until every started submission has finished.
func (a *App) wait() {
	a.pending.Wait()
}

func (a *App) onBusy(trigger app.Trigger, busy bool) {
	fyne.Do(func() {
		a.bound.SetBusy(trigger, busy)
	})
}

func (a *App) onHide() {
	fyne.Do(a.results.hide)
}

func (a *App) onRender(state *app.State) {
	o, ok := state.Outcome()
	if !ok {
		return
	}
	fyne.Do(func() {
		a.bound.SyncFromState(state)
		a.results.show(o)
		a.scroll.ScrollToBottom()
	})
}
