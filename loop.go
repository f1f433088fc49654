package wirevis

import (
	"context"
	"time"
)

// InputSource yields one input snapshot per frame.
type InputSource interface {
	Poll() *InputState
}

// StaticInput replays a fixed list of snapshots, then reports no input.
type StaticInput struct {
	Frames []*InputState
	next   int
}

func (s *StaticInput) Poll() *InputState {
	if s.next >= len(s.Frames) {
		return NewInputState()
	}
	in := s.Frames[s.next]
	s.next++
	if in == nil {
		return NewInputState()
	}
	return in
}

// Loop drives an App without a window: poll, tick, render, then sleep out the
// rest of the frame.
type Loop struct {
	App     *App
	Input   InputSource
	Surface DrawSurface
	TPS     int
	// MaxFrames stops the loop after that many frames when positive.
	MaxFrames int

	Now   func() time.Time
	Sleep func(time.Duration)
}

// Run returns when the app stops, MaxFrames is reached or ctx is done. The
// frame in progress always completes.
func (l *Loop) Run(ctx context.Context) (int, error) {
	now, sleep := l.Now, l.Sleep
	if now == nil {
		now = time.Now
	}
	if sleep == nil {
		sleep = time.Sleep
	}
	tps := l.TPS
	if tps < 1 {
		tps = 60
	}
	frame := time.Second / time.Duration(tps)

	prev := now()
	frames := 0
	for l.App.Running() {
		if err := ctx.Err(); err != nil {
			return frames, err
		}
		start := now()
		dt := start.Sub(prev).Seconds()
		prev = start

		var in *InputState
		if l.Input != nil {
			in = l.Input.Poll()
		}
		l.App.Tick(dt, in)
		if l.Surface != nil {
			l.App.Render(l.Surface)
		}
		frames++
		if l.MaxFrames > 0 && frames >= l.MaxFrames {
			break
		}

		if rest := frame - now().Sub(start); rest > 0 {
			sleep(rest)
		}
	}
	return frames, nil
}
