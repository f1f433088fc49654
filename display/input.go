package display

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/smasonuk/wirevis"
)

var keyMap = map[ebiten.Key]wirevis.Key{
	ebiten.KeyW:       wirevis.KeyW,
	ebiten.KeyA:       wirevis.KeyA,
	ebiten.KeyS:       wirevis.KeyS,
	ebiten.KeyD:       wirevis.KeyD,
	ebiten.KeyUp:      wirevis.KeyUp,
	ebiten.KeyDown:    wirevis.KeyDown,
	ebiten.KeyLeft:    wirevis.KeyLeft,
	ebiten.KeyRight:   wirevis.KeyRight,
	ebiten.KeySpace:   wirevis.KeySpace,
	ebiten.KeyShift:   wirevis.KeyShift,
	ebiten.KeyF1:      wirevis.KeyF1,
	ebiten.KeyF2:      wirevis.KeyF2,
	ebiten.KeyF5:      wirevis.KeyF5,
	ebiten.KeyEscape:  wirevis.KeyEscape,
	ebiten.KeyNumpad0: wirevis.KeyKP0,
	ebiten.KeyNumpad1: wirevis.KeyKP1,
	ebiten.KeyNumpad3: wirevis.KeyKP3,
	ebiten.KeyNumpad5: wirevis.KeyKP5,
	ebiten.KeyNumpad7: wirevis.KeyKP7,
}

var buttonMap = map[ebiten.MouseButton]wirevis.MouseButton{
	ebiten.MouseButtonLeft:   wirevis.MouseLeft,
	ebiten.MouseButtonMiddle: wirevis.MouseMiddle,
	ebiten.MouseButtonRight:  wirevis.MouseRight,
}

// poller builds an InputState from ebiten each frame.
type poller struct {
	prevMouse mgl64.Vec2
	havePrev  bool
}

func (p *poller) Poll() *wirevis.InputState {
	in := wirevis.NewInputState()

	for ek, k := range keyMap {
		if ebiten.IsKeyPressed(ek) {
			in.Pressed[k] = true
		}
		if inpututil.IsKeyJustPressed(ek) {
			in.Triggered[k] = true
		}
	}
	in.Modifier = in.Pressed[wirevis.KeyShift]

	x, y := ebiten.CursorPosition()
	in.Mouse = mgl64.Vec2{float64(x), float64(y)}
	if p.havePrev {
		in.MouseDelta = in.Mouse.Sub(p.prevMouse)
	}
	p.prevMouse, p.havePrev = in.Mouse, true

	for eb, b := range buttonMap {
		if ebiten.IsMouseButtonPressed(eb) {
			in.Buttons[b] = true
		}
		if inpututil.IsMouseButtonJustPressed(eb) {
			in.Clicked[b] = true
		}
		if inpututil.IsMouseButtonJustReleased(eb) {
			in.Released[b] = true
		}
	}

	_, wy := ebiten.Wheel()
	in.Wheel = wy
	in.Quit = ebiten.IsWindowBeingClosed()
	return in
}
