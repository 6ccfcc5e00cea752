package main

import "github.com/urfave/cli/v3"

var (
	configFile string
	logLevel   string
	logFormat  string
	debug      bool
)

func globalFlags() []cli.Flag {
	return append(loggingFlags(),
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml (default: user config dir)",
			Destination: &configFile,
		},
	)
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "warn",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

// decodeFlags are shared by the commands that decode an image.
func decodeFlags(strict, bounded *bool, maxSize *int64, maxSizeDefault int64) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "strict",
			Usage:       "reject undecodable bytes after the last partition",
			Destination: strict,
		},
		&cli.BoolFlag{
			Name:        "bounded",
			Usage:       "use each header's length field as the partition extent",
			Destination: bounded,
		},
		&cli.Int64Flag{
			Name:        "max-image-size",
			Usage:       "maximum image size in bytes after decompression (0 = no limit)",
			Value:       maxSizeDefault,
			Destination: maxSize,
		},
	}
}
