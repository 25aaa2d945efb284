package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Palette lists the pen colors offered by the toolbar. Shapes only cluster within one color.
var Palette = []string{"black", "red", "green", "blue", "orange", "purple"}

type colorSwatch struct {
	widget.BaseWidget
	Name     string
	OnTapped func(string)
}

func newColorSwatch(name string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Name: name, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(toColor(s.Name, 255))
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Name)
	}
}

func NewToolbar(a *App) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), a.pad.Undo),
		widget.NewToolbarAction(theme.DeleteIcon(), a.pad.Clear),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.MediaPlayIcon(), a.Convert),
		widget.NewToolbarAction(theme.VisibilityIcon(), a.pad.ToggleShapes),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.FolderOpenIcon(), a.Open),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), a.Save),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), a.ExportPDF),
		widget.NewToolbarAction(theme.FileImageIcon(), a.ExportPNG),
	)

	colorBox := container.NewHBox()
	for _, name := range Palette {
		colorBox.Add(newColorSwatch(name, a.pad.SetColor))
	}

	widthSlider := widget.NewSlider(1.0, 20.0)
	widthSlider.SetValue(2.0)
	widthSlider.OnChanged = a.pad.SetWidth
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), widthSlider)

	return container.NewHBox(
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Width:"),
		sliderContainer,
		layout.NewSpacer(),
	)
}
