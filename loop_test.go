package wirevis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances by step on every reading.
type fakeClock struct {
	t     time.Time
	step  time.Duration
	slept []time.Duration
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func (c *fakeClock) sleep(d time.Duration) {
	c.slept = append(c.slept, d)
}

func TestStaticInput(t *testing.T) {
	src := &StaticInput{Frames: []*InputState{keyFrame(KeyF1), nil}}
	assert.True(t, src.Poll().JustPressed(KeyF1))
	assert.NotNil(t, src.Poll())
	assert.False(t, src.Poll().JustPressed(KeyF1))
}

func TestLoopMaxFrames(t *testing.T) {
	app := newTestApp(t, ModeOrbit)
	clock := &fakeClock{step: time.Millisecond}
	surf := &recordingSurface{}
	l := &Loop{App: app, Surface: surf, TPS: 50, MaxFrames: 5, Now: clock.now, Sleep: clock.sleep}

	n, err := l.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 5, surf.presents)
	// the last frame breaks before sleeping
	require.Len(t, clock.slept, 4)
	for _, d := range clock.slept {
		assert.Equal(t, 19*time.Millisecond, d)
	}
}

func TestLoopStopsOnQuit(t *testing.T) {
	app := newTestApp(t, ModeOrbit)
	in := &StaticInput{Frames: []*InputState{nil, nil, keyFrame(KeyEscape)}}
	clock := &fakeClock{step: time.Millisecond}
	l := &Loop{App: app, Input: in, Surface: &recordingSurface{}, Now: clock.now, Sleep: clock.sleep}

	n, err := l.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.False(t, app.Running())
}

func TestLoopContextCancelled(t *testing.T) {
	app := newTestApp(t, ModeOrbit)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := &Loop{App: app, Sleep: func(time.Duration) {}}

	n, err := l.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
}

func TestLoopSlowFrameDoesNotSleep(t *testing.T) {
	app := newTestApp(t, ModeOrbit)
	clock := &fakeClock{step: 50 * time.Millisecond}
	l := &Loop{App: app, TPS: 60, MaxFrames: 3, Now: clock.now, Sleep: clock.sleep}

	n, err := l.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Empty(t, clock.slept)
}
