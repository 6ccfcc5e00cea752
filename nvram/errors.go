package nvram

import (
	"errors"
	"fmt"
)

var (
	// ErrIncomplete reports that the input ended before a field was complete.
	ErrIncomplete = errors.New("incomplete input")

	// ErrChecksumMismatch reports a partition header with a bad checksum.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrMalformedPair reports a body record without its '=' or '\0' delimiter.
	ErrMalformedPair = errors.New("malformed key/value pair")

	// ErrEmptyImage reports that no partition could be decoded.
	ErrEmptyImage = errors.New("no partitions found in image")

	// ErrBadLength reports a header length field that does not fit the image.
	ErrBadLength = errors.New("bad partition length")

	// ErrTrailingData reports undecodable bytes after the last partition
	// under the strict policy.
	ErrTrailingData = errors.New("trailing data after last partition")
)

// IncompleteError indicates that fewer bytes remain than a field needs.
type IncompleteError struct {
	// Needed is the number of bytes the field requires
	Needed int

	// Have is the number of bytes that were available
	Have int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("incomplete input: need %d bytes, have %d", e.Needed, e.Have)
}

func (e *IncompleteError) Unwrap() error { return ErrIncomplete }

// ChecksumMismatchError indicates that a header checksum did not verify.
type ChecksumMismatchError struct {
	// Stored is the checksum byte found in the header
	Stored byte

	// Computed is the checksum calculated over the header
	Computed byte
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: got 0x%02X, expected 0x%02X", e.Stored, e.Computed)
}

func (e *ChecksumMismatchError) Unwrap() error { return ErrChecksumMismatch }

// MalformedPairError indicates a body record missing a delimiter.
type MalformedPairError struct {
	// Missing is the delimiter that was not found ('=' or 0)
	Missing byte
}

func (e *MalformedPairError) Error() string {
	if e.Missing == 0 {
		return "malformed key/value pair: missing NUL terminator"
	}
	return fmt.Sprintf("malformed key/value pair: missing %q", e.Missing)
}

func (e *MalformedPairError) Unwrap() error { return ErrMalformedPair }

// LengthError indicates a header length that is empty or overruns the input.
type LengthError struct {
	// Length is the header length field in blocks
	Length uint16

	// Have is the number of bytes available from the header onwards
	Have int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("bad partition length: 0x%04X blocks (%d bytes), have %d bytes",
		e.Length, int(e.Length)*BlockSize, e.Have)
}

func (e *LengthError) Unwrap() error { return ErrBadLength }

// PartitionError locates an image-level decoding failure.
type PartitionError struct {
	// Index is the zero-based number of the partition being decoded
	Index int

	// Offset is the byte offset where the partition was expected
	Offset int

	// Err is the underlying cause
	Err error
}

func (e *PartitionError) Error() string {
	return fmt.Sprintf("partition %d at offset 0x%X: %v", e.Index, e.Offset, e.Err)
}

func (e *PartitionError) Unwrap() error { return e.Err }

// IsChecksumMismatch returns true if err is or wraps a checksum failure.
func IsChecksumMismatch(err error) bool {
	return errors.Is(err, ErrChecksumMismatch)
}

// IsIncomplete returns true if err is or wraps an incomplete-input failure.
func IsIncomplete(err error) bool {
	return errors.Is(err, ErrIncomplete)
}
