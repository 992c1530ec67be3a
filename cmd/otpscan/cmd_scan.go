package main

import (
	"context"
	"fmt"
	"io"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/export"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/otpauth"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/qrcode"
)

func (a *app) runScan(ctx context.Context, args []string) error {
	fs := a.flagSet("scan")
	image := fs.String("image", "", "decode the QR code in this image file")
	format := fs.String("format", "text", "output format: text, json or yaml")
	showQR := fs.Bool("qr", false, "also draw each canonical URI as a terminal QR code")
	if err := fs.Parse(args); err != nil {
		return err
	}

	creds, err := a.scan(ctx, *image, fs.Args())
	if err != nil {
		return err
	}

	if *format != "text" {
		f, err := export.ParseFormat(*format)
		if err != nil {
			return err
		}
		doc, err := export.Marshal(creds, f)
		if err != nil {
			return err
		}
		_, err = a.stdout.Write(doc)
		if f == export.FormatJSON {
			fmt.Fprintln(a.stdout)
		}
		return err
	}

	for i, c := range creds {
		if i > 0 {
			fmt.Fprintln(a.stdout)
		}
		printCredential(a.stdout, c)
		if *showQR {
			art, err := qrcode.Terminal(otpauth.Render(c))
			if err != nil {
				return err
			}
			fmt.Fprint(a.stdout, art)
		}
	}
	return nil
}

func printCredential(w io.Writer, c otpauth.Credential) {
	fmt.Fprintf(w, "Issuer:    %s\n", orDash(c.Issuer))
	fmt.Fprintf(w, "Account:   %s\n", orDash(c.Account))
	fmt.Fprintf(w, "Type:      %s\n", c.Kind)
	fmt.Fprintf(w, "Secret:    %s\n", c.Secret)
	fmt.Fprintf(w, "Algorithm: %s\n", c.Algorithm)
	fmt.Fprintf(w, "Digits:    %d\n", c.Digits)
	if c.Kind == otpauth.KindHOTP {
		fmt.Fprintf(w, "Counter:   %d\n", c.Counter)
	} else {
		fmt.Fprintf(w, "Period:    %ds\n", c.Period)
	}
	fmt.Fprintf(w, "URI:       %s\n", otpauth.Render(c))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
