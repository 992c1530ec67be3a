package main

import (
	"context"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/api"
)

func (a *app) runServe(ctx context.Context, args []string) error {
	fs := a.flagSet("serve")
	addr := fs.String("addr", "", "listen address, overrides HTTP_ADDR")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := a.cfg.HTTP
	if *addr != "" {
		cfg.Addr = *addr
	}

	h := api.NewHandler(
		api.WithLogger(a.log),
		api.WithQRSize(a.cfg.QRSize),
	)
	srv := api.NewServerFromConfig(cfg, api.WithServerLogger(a.log))
	return srv.Run(ctx, h)
}
