package nvram

import "bytes"

// Header is a validated OF partition header.
type Header struct {
	// Signature is the partition type marker
	Signature byte

	// Checksum is the stored header checksum (equal to the computed one)
	Checksum byte

	// Length is the big-endian length field, not interpreted by the decoder
	Length uint16

	// Name is the raw 12-byte name field, embedded NULs included
	Name []byte
}

// NameString returns the name up to the first NUL byte.
func (h Header) NameString() string {
	if i := bytes.IndexByte(h.Name, 0); i >= 0 {
		return string(h.Name[:i])
	}
	return string(h.Name)
}

// Pair is a single key=value record from a partition body.
// Neither slice includes its delimiter.
type Pair struct {
	Key   []byte
	Value []byte
}

// Partition is one decoded OF NVRAM partition.
type Partition struct {
	// Header is the validated partition header
	Header Header

	// Pairs holds the body records in source order; duplicate keys are kept
	Pairs []Pair

	// Offset is the position of the header within the image
	Offset int

	// Size is the number of bytes consumed by the header and its pairs
	Size int
}

// Lookup returns the value of the first pair whose key is key.
func (p *Partition) Lookup(key string) ([]byte, bool) {
	for _, kv := range p.Pairs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return nil, false
}

// Values returns the values of every pair whose key is key, in source order.
func (p *Partition) Values(key string) [][]byte {
	var out [][]byte
	for _, kv := range p.Pairs {
		if string(kv.Key) == key {
			out = append(out, kv.Value)
		}
	}
	return out
}

// Image is a decoded NVRAM image. It always holds at least one partition.
type Image struct {
	// Partitions contains the decoded partitions in image order
	Partitions []*Partition

	// Trailing is the unconsumed suffix of the input (empty when fully decoded)
	Trailing []byte

	// StopErr is the failure that ended decoding before the input was
	// exhausted. It is nil when every byte was consumed.
	StopErr error
}

// Find returns the partitions whose name (up to the first NUL) is name.
func (img *Image) Find(name string) []*Partition {
	var out []*Partition
	for _, p := range img.Partitions {
		if p.Header.NameString() == name {
			out = append(out, p)
		}
	}
	return out
}
