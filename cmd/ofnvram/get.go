package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/moffa90/go-ofnvram/internal/report"
)

func getCmd() *cli.Command {
	var (
		partition string
		all       bool
		quote     bool
		params    decodeParams
	)

	return &cli.Command{
		Name:      "get",
		Usage:     "Print the value stored under a key",
		ArgsUsage: "FILE KEY",
		Flags: append(decodeFlags(&params.strict, &params.bounded, &params.maxSize, defaultMaxImageSize),
			&cli.StringFlag{
				Name:        "partition",
				Aliases:     []string{"p"},
				Usage:       "only search partitions with this name",
				Destination: &partition,
			},
			&cli.BoolFlag{
				Name:        "all",
				Aliases:     []string{"a"},
				Usage:       "print every value for the key, one per line",
				Destination: &all,
			},
			&cli.BoolFlag{
				Name:        "quote",
				Aliases:     []string{"q"},
				Usage:       "quote values containing non-printable bytes",
				Destination: &quote,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyDecodeConfig(cmd, configFromContext(ctx), &params.strict, &params.bounded, &params.maxSize)

			if cmd.Args().Len() != 2 {
				return fmt.Errorf("get: expected FILE KEY, got %d argument(s)", cmd.Args().Len())
			}
			path, key := cmd.Args().Get(0), cmd.Args().Get(1)

			blob, img, _, err := loadImage(ctx, path, params)
			if err != nil {
				return fmt.Errorf("get %s: %w", path, err)
			}
			defer func() { _ = blob.Close() }()

			matches := report.Lookup(img, key, partition)
			if len(matches) == 0 {
				if partition != "" {
					return fmt.Errorf("key %q not found in partition %q", key, partition)
				}
				return fmt.Errorf("key %q not found", key)
			}
			if !all {
				matches = matches[:1]
			}

			out := stdout(cmd)
			for _, m := range matches {
				var err error
				if quote {
					_, err = fmt.Fprintln(out, report.Display(m.Value))
				} else {
					_, err = fmt.Fprintf(out, "%s\n", m.Value)
				}
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
}
