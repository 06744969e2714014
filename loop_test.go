package lightlab

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameQueue(t *testing.T) {
	q := NewFrameQueue()
	assert.False(t, q.Pending())
	assert.NoError(t, q.Fire(), "firing an empty queue does nothing")

	var ran []string
	q.RequestFrame(func() error { ran = append(ran, "first"); return nil })
	q.RequestFrame(func() error { ran = append(ran, "second"); return nil })
	require.True(t, q.Pending())

	require.NoError(t, q.Fire())
	assert.Equal(t, []string{"second"}, ran, "a newer request replaces the pending one")
	assert.False(t, q.Pending())
}

func TestAnimationLoop_States(t *testing.T) {
	q := NewFrameQueue()
	ticks := 0
	loop := NewAnimationLoop(NewSceneContext(), q, func() error {
		ticks++
		return nil
	})
	assert.Equal(t, LoopIdle, loop.State())
	assert.False(t, q.Pending())

	loop.Start()
	assert.Equal(t, LoopScheduled, loop.State())
	assert.True(t, q.Pending())

	loop.Start()
	assert.Equal(t, LoopScheduled, loop.State(), "second start is a no-op")

	for i := 0; i < 3; i++ {
		require.NoError(t, q.Fire())
		assert.Equal(t, LoopScheduled, loop.State())
	}
	assert.Equal(t, 3, ticks)
	assert.Equal(t, uint64(3), loop.Ticks())

	loop.Stop()
	assert.Equal(t, LoopStopped, loop.State())
	require.NoError(t, q.Fire())
	assert.Equal(t, 3, ticks, "a stopped loop ignores the pending frame")
	assert.NoError(t, loop.Err())
}

func TestAnimationLoop_StopDuringTick(t *testing.T) {
	q := NewFrameQueue()
	var loop *AnimationLoop
	var during LoopState
	loop = NewAnimationLoop(NewSceneContext(), q, func() error {
		during = loop.State()
		loop.Stop()
		return nil
	})
	loop.Start()

	require.NoError(t, q.Fire())
	assert.Equal(t, LoopRunning, during)
	assert.Equal(t, LoopStopped, loop.State())
	assert.Equal(t, uint64(1), loop.Ticks(), "the tick in progress completes")
	assert.False(t, q.Pending(), "no further frame is requested")
}

func TestAnimationLoop_TickFailure(t *testing.T) {
	q := NewFrameQueue()
	boom := errors.New("device lost")
	loop := NewAnimationLoop(NewSceneContext(), q, func() error { return boom })
	loop.Start()

	err := q.Fire()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, LoopFailed, loop.State())
	assert.ErrorIs(t, loop.Err(), boom)
	assert.False(t, q.Pending())

	loop.Stop()
	assert.Equal(t, LoopFailed, loop.State(), "stop does not clear a failure")
}

func TestAnimationLoop_Reentry(t *testing.T) {
	q := NewFrameQueue()
	var loop *AnimationLoop
	var inner error
	loop = NewAnimationLoop(NewSceneContext(), q, func() error {
		inner = loop.onFrame()
		return nil
	})
	loop.Start()

	require.NoError(t, q.Fire())
	assert.ErrorIs(t, inner, errLoopReentered)
	assert.Equal(t, uint64(1), loop.Ticks())
}

func TestLoopState_String(t *testing.T) {
	assert.Equal(t, "scheduled", LoopScheduled.String())
	assert.Equal(t, "failed", LoopFailed.String())
	assert.Equal(t, "LoopState(7)", LoopState(7).String())
}
