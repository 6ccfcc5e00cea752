package nvram

import "fmt"

// Decoder decodes whole NVRAM images.
//
// A Decoder holds only immutable configuration and is safe for concurrent use.
type Decoder struct {
	config Config
}

// NewDecoder creates a Decoder with the given options.
//
// Example:
//
//	dec := nvram.NewDecoder(
//	    nvram.WithPolicy(nvram.PolicyStrict),
//	    nvram.WithLogger(myLogger),
//	)
func NewDecoder(opts ...Option) *Decoder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Decoder{config: cfg}
}

// Policy returns the decoder's trailing-data policy.
func (d *Decoder) Policy() Policy {
	return d.config.Policy
}

// Decode decodes partitions from data until it is exhausted or a partition
// fails to parse:
//  1. An empty buffer fails with ErrEmptyImage
//  2. A failure on the first partition is always returned and wraps
//     both ErrEmptyImage and the cause
//  3. A later failure stops decoding (lenient) or fails the image (strict)
//
// Failures other than an empty buffer are *PartitionError values.
//
// Example:
//
//	img, err := dec.Decode(data)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d partitions\n", len(img.Partitions))
func (d *Decoder) Decode(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}

	parse := ParsePartition
	if d.config.Bounded {
		parse = ParseBoundedPartition
	}

	img := &Image{}
	rest := data
	for len(rest) > 0 {
		offset := len(data) - len(rest)
		index := len(img.Partitions)

		part, next, err := parse(rest)
		if err != nil {
			perr := &PartitionError{Index: index, Offset: offset, Err: err}
			if index == 0 {
				d.logError("first partition failed", perr)
				perr.Err = fmt.Errorf("%w: %w", ErrEmptyImage, err)
				return nil, perr
			}

			if d.config.Policy == PolicyStrict {
				d.logError("trailing data rejected", perr)
				perr.Err = fmt.Errorf("%w: %w", ErrTrailingData, err)
				return nil, perr
			}

			d.config.Logger.Debug("stopped at undecodable data",
				"offset", offset,
				"trailing", len(rest),
				"reason", err.Error(),
			)
			img.Trailing = rest
			img.StopErr = perr
			return img, nil
		}

		part.Offset = offset
		img.Partitions = append(img.Partitions, part)

		d.config.Logger.Debug("decoded partition",
			"index", index,
			"offset", offset,
			"signature", fmt.Sprintf("0x%02X", part.Header.Signature),
			"name", part.Header.NameString(),
			"pairs", len(part.Pairs),
		)

		rest = next
	}

	img.Trailing = rest
	return img, nil
}

func (d *Decoder) logError(msg string, err *PartitionError) {
	d.config.Logger.Error(msg,
		"index", err.Index,
		"offset", err.Offset,
		"error", err.Err.Error(),
	)
}
