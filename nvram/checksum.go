package nvram

// Header layout constants.
const (
	// HeaderSize is the size of a partition header in bytes
	HeaderSize = 16

	// NameSize is the size of the header name field in bytes
	NameSize = 12

	// BlockSize is the unit of the header length field
	BlockSize = 16

	// checksumOffset is the position of the stored checksum byte
	checksumOffset = 1

	// lengthOffset is the position of the big-endian length field
	lengthOffset = 2

	// nameOffset is the position of the name field
	nameOffset = 4
)

// Checksum computes the OF partition header checksum.
//
// The sum is seeded with the signature byte, skips the stored checksum at
// offset 1 (it counts as zero) and adds bytes 2 through 15 with an
// end-around carry.
func Checksum(hdr [HeaderSize]byte) byte {
	sum := hdr[0]
	for _, b := range hdr[checksumOffset+1:] {
		sum = addCarry(sum, b)
	}
	return sum
}

// addCarry adds b to sum modulo 256 and adds one more when the addition
// wrapped past 0xFF.
func addCarry(sum, b byte) byte {
	next := sum + b
	if next < sum {
		next++
	}
	return next
}
