// Package frame drives a canvas: [Once] renders a single frame, [Draw] runs a
// throttled render loop.
//
// Each frame runs strictly in order: clear, user callback, render, emit,
// then an optional sleep to honor MaxFramerate. Nothing runs concurrently.
//
// # Stopping
//
// The loop has three exits besides failure: the callback returns [ErrStop],
// the context is canceled, or [WithMaxFrames] is reached.
//
//	err := frame.Draw(ctx, cfg, sink, func(c *canvas.Canvas, n int) error {
//		if n == 600 {
//			return frame.ErrStop
//		}
//		c.Circle(20, 10, float64(n%10))
//		return nil
//	})
package frame
