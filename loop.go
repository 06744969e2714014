package lightlab

import (
	"errors"
	"fmt"
)

// FrameScheduler is the host's per-frame signal. It holds at most one
// pending callback and invokes it on the next frame.
type FrameScheduler interface {
	RequestFrame(fn func() error)
}

// FrameQueue is a single-slot FrameScheduler the host pumps with Fire.
type FrameQueue struct {
	pending func() error
}

func NewFrameQueue() *FrameQueue { return &FrameQueue{} }

// RequestFrame replaces any callback that has not fired yet.
func (q *FrameQueue) RequestFrame(fn func() error) {
	q.pending = fn
}

func (q *FrameQueue) Pending() bool { return q.pending != nil }

// Fire runs the pending callback once. The slot is cleared first, so the
// callback may request the next frame.
func (q *FrameQueue) Fire() error {
	fn := q.pending
	if fn == nil {
		return nil
	}
	q.pending = nil
	return fn()
}

type LoopState int

const (
	LoopIdle LoopState = iota
	LoopScheduled
	LoopRunning
	LoopStopped
	LoopFailed
)

func (s LoopState) String() string {
	switch s {
	case LoopIdle:
		return "idle"
	case LoopScheduled:
		return "scheduled"
	case LoopRunning:
		return "running"
	case LoopStopped:
		return "stopped"
	case LoopFailed:
		return "failed"
	}
	return fmt.Sprintf("LoopState(%d)", int(s))
}

type TickFunc func() error

var errLoopReentered = errors.New("animation loop: tick re-entered")

// AnimationLoop alternates between Scheduled and Running, one tick per frame
// signal. Stop and tick failures end it.
type AnimationLoop struct {
	ctx       *SceneContext
	scheduler FrameScheduler
	tick      TickFunc

	state    LoopState
	stopping bool
	ticks    uint64
	err      error
}

func NewAnimationLoop(ctx *SceneContext, scheduler FrameScheduler, tick TickFunc) *AnimationLoop {
	return &AnimationLoop{
		ctx:       ctx,
		scheduler: scheduler,
		tick:      tick,
	}
}

func (l *AnimationLoop) State() LoopState { return l.state }

func (l *AnimationLoop) Ticks() uint64 { return l.ticks }

// Err is the tick failure that ended the loop, if any.
func (l *AnimationLoop) Err() error { return l.err }

func (l *AnimationLoop) Start() {
	if l.state != LoopIdle {
		return
	}
	l.schedule()
}

// Stop keeps the loop from requesting another frame. A tick in progress
// finishes normally.
func (l *AnimationLoop) Stop() {
	switch l.state {
	case LoopRunning:
		l.stopping = true
	case LoopIdle, LoopScheduled:
		l.state = LoopStopped
	}
}

func (l *AnimationLoop) schedule() {
	l.state = LoopScheduled
	l.scheduler.RequestFrame(l.onFrame)
}

func (l *AnimationLoop) onFrame() error {
	switch l.state {
	case LoopScheduled:
	case LoopRunning:
		return errLoopReentered
	default:
		// Stopped before the signal fired.
		return nil
	}

	l.state = LoopRunning
	err := l.tick()
	l.ticks++

	if err != nil {
		l.state = LoopFailed
		l.err = err
		l.ctx.Logger.Errorf("animation loop stopped after %d ticks: %v", l.ticks, err)
		return err
	}
	if l.stopping {
		l.state = LoopStopped
		l.ctx.Logger.Infof("animation loop stopped after %d ticks", l.ticks)
		return nil
	}
	l.schedule()
	return nil
}
