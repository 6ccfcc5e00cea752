package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/moffa90/go-ofnvram/internal/logger"
	"github.com/moffa90/go-ofnvram/internal/server"
	"github.com/moffa90/go-ofnvram/internal/version"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
		params      decodeParams
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the HTTP decode API",
		Flags: append(decodeFlags(&params.strict, &params.bounded, &params.maxSize, server.DefaultMaxImageSize),
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := configFromContext(ctx)
			applyDecodeConfig(cmd, cfg, &params.strict, &params.bounded, &params.maxSize)
			applyServeConfig(cmd, cfg, &addr)

			log := logger.FromContext(ctx)

			srv := server.NewServer(log, params.serverOptions())
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			srv.Register(e)
			log.Info("starting server",
				"version", version.String(),
				"address", addr,
				"strict", params.strict,
				"bounded", params.bounded,
				"max_image_size", params.maxSize,
			)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(s *http.Server) error {
					s.ReadHeaderTimeout = readTimeout
					s.ReadTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}

func (p decodeParams) serverOptions() server.Options {
	return server.Options{
		MaxImageSize: p.maxSize,
		Strict:       p.strict,
		Bounded:      p.bounded,
	}
}
