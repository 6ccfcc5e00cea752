package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/moffa90/go-ofnvram/internal/report"
)

func inspectCmd() *cli.Command {
	var (
		format  string
		noPairs bool
		params  decodeParams
	)

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print the partitions and pairs of an NVRAM image",
		ArgsUsage: "FILE",
		Flags: append(decodeFlags(&params.strict, &params.bounded, &params.maxSize, defaultMaxImageSize),
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "output format (text, json, yaml)",
				Value:       report.FormatText,
				Destination: &format,
			},
			&cli.BoolFlag{
				Name:        "no-pairs",
				Usage:       "omit key=value listings",
				Destination: &noPairs,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := configFromContext(ctx)
			applyDecodeConfig(cmd, cfg, &params.strict, &params.bounded, &params.maxSize)
			applyFormatConfig(cmd, cfg, &format)

			if _, err := report.ParseFormat(format); err != nil {
				return err
			}

			path := cmd.Args().First()
			blob, img, dec, err := loadImage(ctx, path, params)
			if err != nil {
				return fmt.Errorf("inspect %s: %w", path, err)
			}
			defer func() { _ = blob.Close() }()

			rep := report.Build(blob.Data, img, report.Options{
				Source:      blob.Name,
				Compression: blob.Compression,
				Policy:      dec.Policy(),
				NoPairs:     noPairs,
			})
			return report.Write(stdout(cmd), rep, format)
		},
	}
}
