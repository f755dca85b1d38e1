package engine

import "time"

// FrameFunc receives the timestamp of the frame it runs in.
type FrameFunc func(now time.Duration)

type FrameID uint64

// Scheduler is the frame scheduling primitive a host provides.
type Scheduler interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

type queuedFrame struct {
	id        FrameID
	fn        FrameFunc
	cancelled bool
}

// FrameQueue schedules callbacks for the next display refresh. The host
// calls Flush once per refresh; callbacks requested while flushing run on
// the following flush.
//
// FrameQueue is not thread-safe; request, cancel and flush from the host's
// UI goroutine.
type FrameQueue struct {
	next     FrameID
	pending  []*queuedFrame
	running  []*queuedFrame
	requests int
}

func (q *FrameQueue) RequestFrame(fn FrameFunc) FrameID {
	q.next++
	q.requests++
	q.pending = append(q.pending, &queuedFrame{id: q.next, fn: fn})
	return q.next
}

func (q *FrameQueue) CancelFrame(id FrameID) {
	for i, f := range q.pending {
		if f.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	// still honored when cancelled from inside the current flush
	for _, f := range q.running {
		if f.id == id {
			f.cancelled = true
			return
		}
	}
}

// Flush runs every callback pending at call time and returns how many ran.
func (q *FrameQueue) Flush(now time.Duration) int {
	q.running, q.pending = q.pending, nil
	ran := 0
	for _, f := range q.running {
		if f.cancelled {
			continue
		}
		f.fn(now)
		ran++
	}
	q.running = nil
	return ran
}

// Pending is the number of callbacks waiting for the next flush.
func (q *FrameQueue) Pending() int { return len(q.pending) }

// Requests counts every RequestFrame call over the queue's lifetime.
func (q *FrameQueue) Requests() int { return q.requests }
