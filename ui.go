package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

var (
	uiWhite     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	uiHighlight = color.NRGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}
)

func uiFace() *ebtext.Face {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	return &face
}

func centered() widget.WidgetOpt {
	return widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})
}

func newLabel(face *ebtext.Face, value string, c color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(value, face, c),
		widget.TextOpts.WidgetOpts(centered()),
	)
}

func newButton(face *ebtext.Face, label string, onClick func()) *widget.Button {
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	hoverImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: hoverImg, Pressed: btnImg}),
		widget.ButtonOpts.Text(label, face, &widget.ButtonTextColor{Idle: uiWhite}),
		widget.ButtonOpts.WidgetOpts(centered()),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

// newPanel centers a translucent vertical panel on the screen.
func newPanel(fill func(panel *widget.Container)) *ebitenui.UI {
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(color.NRGBA{A: 200})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(screenWidth/2, screenHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	fill(panel)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

// NewPauseUI builds the pause menu with Resume and Quit buttons.
func NewPauseUI(g *Game) *ebitenui.UI {
	face := uiFace()
	return newPanel(func(panel *widget.Container) {
		panel.AddChild(newLabel(face, "Paused", uiWhite))
		panel.AddChild(newButton(face, "Resume", func() { g.paused = false }))
		panel.AddChild(newButton(face, "Quit", func() { g.quit = true }))
	})
}

// NewGameOverUI shows the final and best score once a bomb has hit the player.
func NewGameOverUI(g *Game, score, best int) *ebitenui.UI {
	face := uiFace()
	bestColor := color.Color(uiWhite)
	if score >= best && score > 0 {
		bestColor = uiHighlight
	}
	return newPanel(func(panel *widget.Container) {
		panel.AddChild(newLabel(face, "Game Over", uiWhite))
		panel.AddChild(newLabel(face, fmt.Sprintf("Score: %d", score), uiWhite))
		panel.AddChild(newLabel(face, fmt.Sprintf("Best: %d", best), bestColor))
		panel.AddChild(newButton(face, "Quit", func() { g.quit = true }))
	})
}
