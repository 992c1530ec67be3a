// Command otpscan reads the text of an OTP QR code, or an image of one, and
// shows, exports or serves the credentials it holds.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/config"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		osExit(exitError)
	}

	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		osExit(exitError)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(cfg, os.Stdin, os.Stdout, os.Stderr)
	code := a.run(ctx, os.Args[1:])
	stop()
	osExit(code)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: otpscan <command> [options] [text|-]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  scan    Show the credentials in a scanned QR code")
	fmt.Fprintln(w, "  code    Show live codes, refreshed until interrupted")
	fmt.Fprintln(w, "  export  Write credentials as json, yaml, png or one migration png")
	fmt.Fprintln(w, "  open    Print the credentials of an exported file, sealed or not")
	fmt.Fprintln(w, "  serve   Run the HTTP API")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input is the decoded QR text given as arguments, read from stdin when")
	fmt.Fprintln(w, "the argument is \"-\" or missing, or decoded from an image with -image.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit status is 2 when the input holds no OTP credential.")
}
