// Package engine mounts a particle field onto a host window and canvas.
//
// The host supplies a [Window] (viewport size, listener registry, frame
// scheduler, reduced-motion preference) and a [Canvas]. [Mount] reads the
// reduced-motion preference once: when set the canvas gets a static dot
// grid and no frame is ever requested. Otherwise the engine spawns the
// field, listens for resize, pointer-move and touch-move on the window and
// runs a self-rescheduling frame loop until [Engine.Unmount].
//
// Hosts that pump their own events embed [BaseWindow] and call
// [FrameQueue.Flush] once per display refresh.
//
//	win := engine.NewBaseWindow(1280, 720, false)
//	e := engine.Mount(win, canvas, field.DefaultParams())
//	defer e.Unmount()
//	for frame := 0; ; frame++ {
//	    win.Flush(time.Duration(frame) * time.Second / 60)
//	}
//
// # Thread Safety
//
// Everything runs on the host's UI goroutine. Neither Engine nor
// BaseWindow locks.
package engine
