package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/api"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/otpauth"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/refresh"
)

const clearScreen = "\033[H\033[2J"

func (a *app) runCode(ctx context.Context, args []string) error {
	fs := a.flagSet("code")
	image := fs.String("image", "", "decode the QR code in this image file")
	once := fs.Bool("once", false, "print the codes once and exit")
	at := fs.Int64("at", 0, "with -once, generate codes at this unix time instead of now")
	if err := fs.Parse(args); err != nil {
		return err
	}

	creds, err := a.scan(ctx, *image, fs.Args())
	if err != nil {
		return err
	}
	board := refresh.NewBoard(creds)

	if *once {
		now := time.Now()
		if *at != 0 {
			now = time.Unix(*at, 0)
		}
		board.Update(now)
		printBoard(a.stdout, board)
		return nil
	}

	redraw := isTerminal(a.stdout)
	ticker := refresh.New(
		refresh.WithInterval(a.cfg.RefreshInterval),
		refresh.WithLogger(a.log),
	)
	err = ticker.Run(ctx, func(_ context.Context, now time.Time) {
		board.Update(now)
		if redraw {
			fmt.Fprint(a.stdout, clearScreen)
		}
		printBoard(a.stdout, board)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printBoard(w io.Writer, b *refresh.Board) {
	for _, e := range b.Entries() {
		label := e.Credential.Label()
		if label == "" {
			label = "-"
		}
		switch {
		case e.Err != nil:
			fmt.Fprintf(w, "%-32s %s\n", label, api.NoCodeMessage)
		case e.Credential.Kind == otpauth.KindHOTP:
			fmt.Fprintf(w, "%-32s %s  counter %d\n", label, e.Code.Value, e.Credential.Counter)
		default:
			fmt.Fprintf(w, "%-32s %s  %2ds\n", label, e.Code.Value, e.Code.Remaining)
		}
	}
}
