package nvram

import (
	"bytes"
	"encoding/binary"
)

// Body record delimiters.
const (
	// KeyDelimiter separates a key from its value
	KeyDelimiter = '='

	// ValueTerminator ends a value
	ValueTerminator = 0x00
)

// ParseHeader decodes and validates a partition header at the start of input.
// It returns the header and the input following it.
//
// Header format (16 bytes):
//
//	[Signature(1)][Checksum(1)][Length(2, big-endian)][Name(12)]
//
// Example: 51 B5 01 00 "ibm,skiboot\0" = Signature: 0x51, Length: 0x0100
func ParseHeader(input []byte) (Header, []byte, error) {
	if len(input) < HeaderSize {
		return Header{}, input, &IncompleteError{Needed: HeaderSize, Have: len(input)}
	}

	stored := input[checksumOffset]
	computed := Checksum([HeaderSize]byte(input[:HeaderSize]))
	if stored != computed {
		return Header{}, input, &ChecksumMismatchError{Stored: stored, Computed: computed}
	}

	hdr := Header{
		Signature: input[0],
		Checksum:  stored,
		Length:    binary.BigEndian.Uint16(input[lengthOffset:nameOffset]),
		Name:      input[nameOffset:HeaderSize:HeaderSize],
	}
	return hdr, input[HeaderSize:], nil
}

// ParsePair decodes one key=value\0 record at the start of input.
// It returns the pair and the input following the terminator.
//
// The key runs up to the first '=' and the value from there up to the first
// NUL. Neither slice includes its delimiter.
func ParsePair(input []byte) (Pair, []byte, error) {
	eq := bytes.IndexByte(input, KeyDelimiter)
	if eq < 0 {
		return Pair{}, input, &MalformedPairError{Missing: KeyDelimiter}
	}

	rest := input[eq+1:]
	end := bytes.IndexByte(rest, ValueTerminator)
	if end < 0 {
		return Pair{}, input, &MalformedPairError{Missing: ValueTerminator}
	}

	pair := Pair{
		Key:   input[:eq:eq],
		Value: rest[:end:end],
	}
	return pair, rest[end+1:], nil
}

// ParsePartData decodes zero or more records from input. It stops at the
// first record that does not parse and returns the unconsumed bytes; a
// malformed fragment is never an error here.
func ParsePartData(input []byte) ([]Pair, []byte) {
	var pairs []Pair
	for len(input) > 0 {
		pair, rest, err := ParsePair(input)
		if err != nil {
			break
		}
		pairs = append(pairs, pair)
		input = rest
	}
	return pairs, input
}

// ParsePartition decodes a header and its body. Header failures are returned
// unchanged; an empty body is valid.
func ParsePartition(input []byte) (*Partition, []byte, error) {
	hdr, rest, err := ParseHeader(input)
	if err != nil {
		return nil, input, err
	}

	pairs, rest := ParsePartData(rest)

	part := &Partition{
		Header: hdr,
		Pairs:  pairs,
		Size:   len(input) - len(rest),
	}
	return part, rest, nil
}

// ParseBoundedPartition decodes a partition whose extent is given by the
// header length field, counted in BlockSize units with the header included.
// Pairs are read only inside that extent and any unparsed bytes within it,
// such as zero padding, are skipped.
func ParseBoundedPartition(input []byte) (*Partition, []byte, error) {
	hdr, rest, err := ParseHeader(input)
	if err != nil {
		return nil, input, err
	}

	size := int(hdr.Length) * BlockSize
	if size < HeaderSize || size > len(input) {
		return nil, input, &LengthError{Length: hdr.Length, Have: len(input)}
	}

	pairs, _ := ParsePartData(rest[:size-HeaderSize])

	part := &Partition{
		Header: hdr,
		Pairs:  pairs,
		Size:   size,
	}
	return part, input[size:], nil
}

// ParseImage decodes every partition in data with the given options.
// See Decoder.Decode.
func ParseImage(data []byte, opts ...Option) (*Image, error) {
	return NewDecoder(opts...).Decode(data)
}
