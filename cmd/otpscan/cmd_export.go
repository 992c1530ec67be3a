package main

import (
	"context"
	"fmt"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/export"
)

func (a *app) runExport(ctx context.Context, args []string) error {
	fs := a.flagSet("export")
	image := fs.String("image", "", "decode the QR code in this image file")
	format := fs.String("format", "json", "json, yaml, png or migration")
	out := fs.String("out", a.cfg.ExportDir, "output directory")
	seal := fs.Bool("seal", false, "encrypt json and yaml files with a passphrase")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := export.ParseFormat(*format)
	if err != nil {
		return err
	}
	if *seal && (f == export.FormatPNG || f == export.FormatMigration) {
		return fmt.Errorf("-seal applies to json and yaml only, not %s", f)
	}

	creds, err := a.scan(ctx, *image, fs.Args())
	if err != nil {
		return err
	}

	opts := []export.Option{
		export.WithLogger(a.log),
		export.WithQRSize(a.cfg.QRSize),
	}
	if *seal {
		pass, err := a.passphrase("Passphrase: ", true)
		if err != nil {
			return err
		}
		opts = append(opts, export.WithPassphrase(pass))
	}

	paths, err := export.NewExporter(opts...).Write(ctx, *out, f, creds)
	for _, p := range paths {
		fmt.Fprintln(a.stdout, p)
	}
	return err
}
