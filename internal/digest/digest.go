// Package digest derives content identifiers for images and partitions.
package digest

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// CID returns a CIDv1 string using the "raw" multicodec and a sha2-256
// multihash of data.
func CID(data []byte) string {
	c, err := rawCID(data)
	if err != nil {
		return ""
	}
	return c.String()
}

// rawCID returns the CIDv1 (raw + sha2-256) of data.
func rawCID(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}
