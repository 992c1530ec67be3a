package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/export"
)

func (a *app) runOpen(_ context.Context, args []string) error {
	fs := a.flagSet("open")
	format := fs.String("format", "json", "output format: json or yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: otpscan open [-format json|yaml] <file>")
	}

	f, err := export.ParseFormat(*format)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	var pass string
	if export.IsSealed(data) {
		if pass, err = a.passphrase("Passphrase: ", false); err != nil {
			return err
		}
	}

	creds, err := export.Read(data, pass)
	if err != nil {
		return err
	}
	doc, err := export.Marshal(creds, f)
	if err != nil {
		return err
	}
	if _, err := a.stdout.Write(doc); err != nil {
		return err
	}
	if f == export.FormatJSON {
		fmt.Fprintln(a.stdout)
	}
	return nil
}
