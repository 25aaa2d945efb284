package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"SketchBoard3D/internal/export"
	"SketchBoard3D/internal/state"
)

const convertTimeout = 30 * time.Second

// App is one sketch pad window bound to a Converter.
type App struct {
	win  fyne.Window
	pad  *Pad
	conv Converter
}

// Run opens the sketch pad window and blocks until it is closed.
func Run(conv Converter) {
	a := app.NewWithID("sketchboard3d.pad")
	win := a.NewWindow("SketchBoard3D - " + conv.Name())
	win.Resize(fyne.NewSize(1024, 768))

	sp := &App{win: win, pad: NewPad(state.NewBoard()), conv: conv}
	toolbar := NewToolbar(sp)
	content := container.NewBorder(toolbar, sp.pad.StatusLabel(), nil, nil, sp.pad)

	win.SetContent(content)
	logf("Window open, converting via %s", conv.Name())
	win.ShowAndRun()
}

// Convert sends the current strokes to the converter and overlays the result. Results of
// conversions overtaken by a newer one or by a board edit are dropped.
func (a *App) Convert() {
	strokes, ticket := a.pad.beginConvert()
	a.pad.SetStatus(fmt.Sprintf("Converting %d strokes...", len(strokes)))

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), convertTimeout)
		defer cancel()

		resp, err := a.conv.Convert(ctx, strokes)
		if err != nil {
			logf("Convert of revision %d failed: %v", ticket.rev, err)
			if !a.pad.isCurrent(ticket) {
				return
			}
			a.pad.SetStatus("Convert failed")
			fyne.Do(func() { dialog.ShowError(err, a.win) })
			return
		}
		if !a.pad.applyConvert(ticket, resp.Shapes) {
			logf("Dropped stale result for revision %d", ticket.rev)
			return
		}
		a.pad.SetStatus(fmt.Sprintf("Converted %d strokes into %d shapes", len(strokes), len(resp.Shapes)))
	}()
}

func (a *App) Save() {
	a.saveAs("sketch.json", []string{".json"}, func(w io.Writer) (string, error) {
		if err := a.pad.Board().Save(w); err != nil {
			return "", err
		}
		return fmt.Sprintf("Saved %d strokes", a.pad.Board().Len()), nil
	})
}

func (a *App) Open() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.win)
			return
		}
		if r == nil {
			return
		}
		defer r.Close()

		n, err := a.pad.Board().Load(r)
		if err != nil {
			logf("Load %s failed: %v", r.URI(), err)
			a.pad.SetStatus("Error parsing file - invalid format")
			return
		}
		a.pad.SetStatus(fmt.Sprintf("Loaded %d strokes", n))
	}, a.win)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

func (a *App) ExportPDF() {
	shapes := a.pad.Shapes()
	if len(shapes) == 0 {
		a.pad.SetStatus("Nothing to export, convert first")
		return
	}
	a.saveAs("sketch.pdf", []string{".pdf"}, func(w io.Writer) (string, error) {
		return fmt.Sprintf("Exported %d shapes to PDF", len(shapes)), export.PDF(w, shapes)
	})
}

func (a *App) ExportPNG() {
	shapes := a.pad.Shapes()
	if len(shapes) == 0 {
		a.pad.SetStatus("Nothing to export, convert first")
		return
	}
	a.saveAs("sketch.png", []string{".png"}, func(w io.Writer) (string, error) {
		return fmt.Sprintf("Exported %d shapes to PNG", len(shapes)), export.PNG(w, shapes, 1024, 768)
	})
}

func (a *App) saveAs(name string, exts []string, write func(io.Writer) (string, error)) {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.win)
			return
		}
		if w == nil {
			return
		}
		defer func() {
			if err := w.Close(); err != nil {
				logf("Error closing writer: %v", err)
			}
		}()

		msg, err := write(w)
		if err != nil {
			logf("Writing %s failed: %v", w.URI(), err)
			a.pad.SetStatus("Error writing file")
			return
		}
		logf("%s (%s)", msg, w.URI())
		a.pad.SetStatus(msg)
	}, a.win)
	d.SetFileName(name)
	d.SetFilter(storage.NewExtensionFileFilter(exts))
	d.Show()
}
