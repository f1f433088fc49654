package wirevis

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	ActionDebug  = "debug"
	ActionSpawn  = "spawn"
	ActionReload = "reload"
	ActionQuit   = "quit"
)

var buttonActions = map[string]struct{}{
	ActionDebug:  {},
	ActionSpawn:  {},
	ActionReload: {},
	ActionQuit:   {},
}

// Button is a clickable rectangle.
type Button struct {
	ID     string
	Label  string
	Min    mgl64.Vec2
	Max    mgl64.Vec2
	Action string
}

func (b Button) Contains(p mgl64.Vec2) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] && p[1] >= b.Min[1] && p[1] <= b.Max[1]
}

// ButtonBar tracks which button the left mouse went down on. A button fires
// when the release lands on the same button.
type ButtonBar struct {
	buttons []Button
	pressed int
}

func NewButtonBar(cfg []ButtonConfig) *ButtonBar {
	bb := &ButtonBar{pressed: -1}
	for _, c := range cfg {
		bb.buttons = append(bb.buttons, Button{
			ID:     c.ID,
			Label:  c.Label,
			Min:    mgl64.Vec2{c.X, c.Y},
			Max:    mgl64.Vec2{c.X + c.Width, c.Y + c.Height},
			Action: c.Action,
		})
	}
	return bb
}

func (bb *ButtonBar) Buttons() []Button {
	return bb.buttons
}

func (bb *ButtonBar) hit(p mgl64.Vec2) int {
	for i := len(bb.buttons) - 1; i >= 0; i-- {
		if bb.buttons[i].Contains(p) {
			return i
		}
	}
	return -1
}

// Handle processes this frame's left button edges. It returns the action of a
// completed click and consumes any click that landed on a button.
func (bb *ButtonBar) Handle(in *InputState) (string, bool) {
	if in == nil {
		return "", false
	}
	if in.ButtonClicked(MouseLeft) {
		if i := bb.hit(in.Mouse); i >= 0 {
			bb.pressed = i
			in.ConsumeClick(MouseLeft)
		}
	}
	if !in.ButtonReleased(MouseLeft) || bb.pressed < 0 {
		return "", false
	}
	i := bb.pressed
	bb.pressed = -1
	if bb.hit(in.Mouse) != i {
		return "", false
	}
	return bb.buttons[i].Action, true
}

var (
	buttonFill    = color.RGBA{R: 40, G: 40, B: 48, A: 220}
	buttonPressed = color.RGBA{R: 70, G: 70, B: 90, A: 230}
	buttonStroke  = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	textColor     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Draw paints every button with its label.
func (bb *ButtonBar) Draw(dst OverlaySurface) {
	for i, b := range bb.buttons {
		fill := buttonFill
		if i == bb.pressed {
			fill = buttonPressed
		}
		dst.DrawRect(b.Min, b.Max, fill, buttonStroke)
		y := b.Min[1] + (b.Max[1]-b.Min[1]-dst.LineHeight())/2
		dst.DrawText(b.Label, mgl64.Vec2{b.Min[0] + 6, y}, textColor)
	}
}
