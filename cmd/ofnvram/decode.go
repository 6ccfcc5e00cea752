package main

import (
	"context"
	"errors"

	"github.com/moffa90/go-ofnvram/internal/logger"
	"github.com/moffa90/go-ofnvram/internal/source"
	"github.com/moffa90/go-ofnvram/nvram"
)

const defaultMaxImageSize = 64 << 20

var errMissingImage = errors.New("missing image path (use - for stdin)")

type decodeParams struct {
	strict  bool
	bounded bool
	maxSize int64
}

func (p decodeParams) decoder(log nvram.Logger) *nvram.Decoder {
	return nvram.NewDecoder(
		nvram.WithStrict(p.strict),
		nvram.WithBounded(p.bounded),
		nvram.WithLogger(log),
	)
}

// loadImage reads and decodes the image at path. The returned blob must be
// closed once the image is no longer used.
func loadImage(ctx context.Context, path string, p decodeParams) (*source.Blob, *nvram.Image, *nvram.Decoder, error) {
	if path == "" {
		return nil, nil, nil, errMissingImage
	}
	log := logger.FromContext(ctx).With("image", path)

	blob, err := source.Open(path, p.maxSize)
	if err != nil {
		return nil, nil, nil, err
	}
	log.Debug("loaded image", "size", len(blob.Data), "compression", blob.Compression, "mapped", blob.Mapped())

	dec := p.decoder(log)
	img, err := dec.Decode(blob.Data)
	if err != nil {
		_ = blob.Close()
		return nil, nil, nil, err
	}
	return blob, img, dec, nil
}
