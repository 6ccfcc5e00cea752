// Package source loads NVRAM images for the command line tools.
//
// Regular files are mapped read-only where the platform allows it so that
// decoded partitions alias the file contents without a copy. zstd and gzip
// compressed images are detected by their magic bytes and inflated in memory.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression names reported in Blob.Compression.
const (
	CompressionNone = "none"
	CompressionZstd = "zstd"
	CompressionGzip = "gzip"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	gzipMagic = []byte{0x1F, 0x8B}
)

// ErrTooLarge reports an image above the configured size limit.
var ErrTooLarge = errors.New("image exceeds size limit")

// Blob is a loaded image.
type Blob struct {
	// Name is the path or label the image was loaded from
	Name string

	// Data is the (decompressed) image contents
	Data []byte

	// Compression is the detected input compression
	Compression string

	mapped []byte
}

// Mapped reports whether Data is a read-only file mapping.
func (b *Blob) Mapped() bool {
	return b.mapped != nil
}

// Close releases the file mapping, if any. Data must not be used afterwards.
func (b *Blob) Close() error {
	if b.mapped == nil {
		return nil
	}
	err := unmap(b.mapped)
	b.mapped = nil
	b.Data = nil
	return err
}

// Open loads the image at path. A path of "-" reads standard input.
// limit bounds the image size in bytes, before and after decompression;
// zero disables the check.
func Open(path string, limit int64) (*Blob, error) {
	if path == Stdin {
		return FromReader(os.Stdin, "stdin", limit)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat image: %w", err)
	}

	size := st.Size()
	if limit > 0 && size > limit {
		return nil, fmt.Errorf("%s: %w: %d bytes, limit %d", path, ErrTooLarge, size, limit)
	}

	if st.Mode().IsRegular() && size > 0 && size <= int64(int(^uint(0)>>1)) {
		if data, err := mmapFile(f, int(size)); err == nil {
			b, err := FromBytes(data, path, limit)
			if err != nil {
				_ = unmap(data)
				return nil, err
			}
			if b.Compression == CompressionNone {
				b.mapped = data
			} else {
				_ = unmap(data)
			}
			return b, nil
		}
	}

	return FromReader(f, path, limit)
}

// FromReader reads an image from r. name labels the result.
func FromReader(r io.Reader, name string, limit int64) (*Blob, error) {
	data, err := readLimited(r, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return FromBytes(data, name, limit)
}

// FromBytes wraps data, decompressing it when it carries a zstd or gzip
// magic. Uncompressed data is used in place.
func FromBytes(data []byte, name string, limit int64) (*Blob, error) {
	b := &Blob{Name: name, Data: data, Compression: CompressionNone}

	var err error
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		b.Compression = CompressionZstd
		b.Data, err = inflateZstd(data, limit)
	case bytes.HasPrefix(data, gzipMagic):
		b.Compression = CompressionGzip
		b.Data, err = inflateGzip(data, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %s decode: %w", name, b.Compression, err)
	}

	if limit > 0 && int64(len(b.Data)) > limit {
		return nil, fmt.Errorf("%s: %w: %d bytes, limit %d", name, ErrTooLarge, len(b.Data), limit)
	}
	return b, nil
}

func inflateZstd(data []byte, limit int64) ([]byte, error) {
	opts := []zstd.DOption{
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
	}
	if limit > 0 {
		opts = append(opts, zstd.WithDecoderMaxMemory(uint64(limit)))
	}

	dec, err := zstd.NewReader(nil, opts...)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if errors.Is(err, zstd.ErrDecoderSizeExceeded) || errors.Is(err, zstd.ErrWindowSizeExceeded) {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrTooLarge, limit)
	}
	return out, err
}

func inflateGzip(data []byte, limit int64) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = zr.Close() }()

	return readLimited(zr, limit)
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrTooLarge, limit)
	}
	return data, nil
}
