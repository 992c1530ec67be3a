// Package refresh drives the once-per-second redraw of live OTP codes.
//
// Ticker is a context-cancelled loop and Board holds the codes of the
// selected credentials. Neither generates codes on its own schedule: every
// value comes from otp.At for the time passed in, so the display is always a
// pure function of the clock.
//
// # Usage
//
//	board := refresh.NewBoard(creds)
//	err := refresh.New().Run(ctx, func(ctx context.Context, now time.Time) {
//		board.Update(now)
//		render(board.Entries())
//	})
package refresh
