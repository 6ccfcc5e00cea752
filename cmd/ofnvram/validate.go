package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/moffa90/go-ofnvram/internal/logger"
)

func validateCmd() *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:      "validate",
		Usage:     "Check that one or more NVRAM images decode",
		ArgsUsage: "FILE...",
		Flags:     decodeFlags(&params.strict, &params.bounded, &params.maxSize, defaultMaxImageSize),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyDecodeConfig(cmd, configFromContext(ctx), &params.strict, &params.bounded, &params.maxSize)

			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return errMissingImage
			}

			log := logger.FromContext(ctx)
			out := stdout(cmd)
			failed := 0
			for _, path := range paths {
				blob, img, _, err := loadImage(ctx, path, params)
				if err != nil {
					failed++
					log.Error("validation failed", "image", path, "error", err)
					_, _ = fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
					continue
				}

				msg := fmt.Sprintf("ok   %s: %d partition(s), %d bytes", path, len(img.Partitions), len(blob.Data))
				if len(img.Trailing) > 0 {
					msg += fmt.Sprintf(", %d trailing bytes ignored (%v)", len(img.Trailing), img.StopErr)
				}
				_ = blob.Close()
				_, _ = fmt.Fprintln(out, msg)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d image(s) failed validation", failed, len(paths))
			}
			return nil
		},
	}
}
