package wirevis

import "github.com/go-gl/mathgl/mgl64"

// Key is a backend independent key code. Only the keys the visualizer reacts
// to are listed.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyShift
	KeyF1
	KeyF2
	KeyF5
	KeyEscape
	KeyKP0
	KeyKP1
	KeyKP3
	KeyKP5
	KeyKP7
)

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
)

// InputState is the per-frame input snapshot handed to the scene. Pressed and
// Buttons hold what is down this frame; Triggered, Clicked and Released only
// hold edges.
type InputState struct {
	Pressed   map[Key]bool
	Triggered map[Key]bool

	Mouse      mgl64.Vec2
	MouseDelta mgl64.Vec2
	Buttons    map[MouseButton]bool
	Clicked    map[MouseButton]bool
	Released   map[MouseButton]bool

	Modifier bool
	Wheel    float64
	Quit     bool
}

func NewInputState() *InputState {
	return &InputState{
		Pressed:   map[Key]bool{},
		Triggered: map[Key]bool{},
		Buttons:   map[MouseButton]bool{},
		Clicked:   map[MouseButton]bool{},
		Released:  map[MouseButton]bool{},
	}
}

func (in *InputState) IsPressed(k Key) bool {
	return in != nil && in.Pressed[k]
}

func (in *InputState) JustPressed(k Key) bool {
	return in != nil && in.Triggered[k]
}

func (in *InputState) ButtonDown(b MouseButton) bool {
	return in != nil && in.Buttons[b]
}

func (in *InputState) ButtonClicked(b MouseButton) bool {
	return in != nil && in.Clicked[b]
}

func (in *InputState) ButtonReleased(b MouseButton) bool {
	return in != nil && in.Released[b]
}

// ConsumeClick drops the click edge so later handlers do not see it.
func (in *InputState) ConsumeClick(b MouseButton) {
	if in != nil {
		delete(in.Clicked, b)
	}
}

// axis returns +1, -1 or 0 from a pair of opposing keys.
func (in *InputState) axis(pos, neg Key) float64 {
	v := 0.0
	if in.IsPressed(pos) {
		v++
	}
	if in.IsPressed(neg) {
		v--
	}
	return v
}

// ViewPreset is a canonical orbit camera view bound to a keypad key.
type ViewPreset int

const (
	PresetNone ViewPreset = iota
	PresetReset
	PresetFront
	PresetRight
	PresetTop
	PresetIso
)

var presetKeys = []struct {
	key    Key
	preset ViewPreset
}{
	{KeyKP0, PresetReset},
	{KeyKP1, PresetFront},
	{KeyKP3, PresetRight},
	{KeyKP7, PresetTop},
	{KeyKP5, PresetIso},
}

// presetFromInput returns the first preset whose key went down this frame.
func presetFromInput(in *InputState) ViewPreset {
	for _, pk := range presetKeys {
		if in.JustPressed(pk.key) {
			return pk.preset
		}
	}
	return PresetNone
}
