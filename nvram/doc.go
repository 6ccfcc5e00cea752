// Package nvram decodes OpenFirmware (OF) NVRAM images.
//
// # Image Format
//
// An OF NVRAM image is a sequence of partitions. Each partition starts with a
// 16-byte header followed by a body of null-terminated key/value records.
//
// Header Format (16 bytes, big-endian):
//
//	[Signature(1)][Checksum(1)][Length(2)][Name(12)]
//
// Example header:
//
//	51 B5 01 00 69 62 6D 2C 73 6B 69 62 6F 6F 74 00
//	  51 = Signature (firmware private)
//	  B5 = Checksum
//	  0100 = Length
//	  "ibm,skiboot\0" = Name
//
// The checksum is an 8-bit sum of byte 0 and bytes 2 through 15 with an
// end-around carry: whenever an addition wraps past 0xFF, one is added back
// into the sum. The checksum byte itself is treated as zero.
//
// Body Format:
//
//	key=value\0key=value\0...
//
// # Usage
//
// Decode an image that is already in memory:
//
//	img, err := nvram.ParseImage(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, p := range img.Partitions {
//	    fmt.Printf("0x%02X %q: %d pairs\n",
//	        p.Header.Signature, p.Header.NameString(), len(p.Pairs))
//	}
//
// Every byte slice in the result aliases data. The caller must keep data
// alive and unmodified while the result is in use.
//
// Reject images with unparseable trailing bytes:
//
//	img, err := nvram.ParseImage(data, nvram.WithPolicy(nvram.PolicyStrict))
//
// # Error Handling
//
// Decoding failures are typed and wrap sentinel errors so both errors.Is and
// errors.As work:
//   - *IncompleteError (ErrIncomplete): fewer than 16 bytes left for a header
//   - *ChecksumMismatchError (ErrChecksumMismatch): header checksum is wrong
//   - *MalformedPairError (ErrMalformedPair): record lacks '=' or '\0'
//   - ErrEmptyImage: no partition could be decoded
//   - *PartitionError: image-level failure with partition index and offset
//
// In the default lenient policy a failure after the first partition stops the
// decode and the partitions found so far are returned; Image.StopErr records
// why.
package nvram
