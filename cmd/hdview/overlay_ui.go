package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

type overlay struct {
	info      *widget.Text
	mirrorBtn *widget.Button
}

// newOverlayUI builds the corner panel with playback info and the mirror
// mode toggle.
func newOverlayUI(g *Game) (*ebitenui.UI, *overlay) {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 160})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	o := &overlay{}
	o.info = widget.NewText(
		widget.TextOpts.Text("", &face, white),
	)
	o.mirrorBtn = widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text(mirrorLabel(g.settings.MirrorMode()), &face, &widget.ButtonTextColor{Idle: white}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.toggleMirror()
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionStart, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(o.info)
	panel.AddChild(o.mirrorBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	o.refresh(g)
	return &ebitenui.UI{Container: root}, o
}

// refresh copies the current playback state into the labels.
func (o *overlay) refresh(g *Game) {
	var b strings.Builder
	fmt.Fprintf(&b, "room %s  camera %.0f,%.0f\n", g.level.Room, camX(g), camY(g))
	for _, a := range g.level.Animated() {
		order := a.FrameOrder()
		fmt.Fprintf(&b, "%s  frame %d (%d/%d) @ %.4g fps\n",
			shortName(a.Prefix()), order[a.CurrentFrame()], a.CurrentFrame()+1, len(order), a.FPS())
	}
	b.WriteString("arrows: move  M: mirror  Tab: hide")
	o.info.Label = b.String()

	if text := o.mirrorBtn.Text(); text != nil {
		text.Label = mirrorLabel(g.settings.MirrorMode())
	}
}

func camX(g *Game) float64 {
	x, _ := g.level.CameraPosition()
	return x
}

func camY(g *Game) float64 {
	_, y := g.level.CameraPosition()
	return y
}

func mirrorLabel(on bool) string {
	if on {
		return "Mirror mode: on"
	}
	return "Mirror mode: off"
}

func shortName(prefix string) string {
	if i := strings.LastIndex(prefix, "/"); i >= 0 {
		return prefix[i+1:]
	}
	return prefix
}
