// Package report turns decoded NVRAM images into serializable summaries.
package report

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/moffa90/go-ofnvram/internal/digest"
	"github.com/moffa90/go-ofnvram/nvram"
)

// Report describes one decoded image.
type Report struct {
	ID            string            `json:"id,omitempty" yaml:"id,omitempty"`
	Source        string            `json:"source,omitempty" yaml:"source,omitempty"`
	Size          int               `json:"size" yaml:"size"`
	Compression   string            `json:"compression,omitempty" yaml:"compression,omitempty"`
	CID           string            `json:"cid" yaml:"cid"`
	Policy        string            `json:"policy" yaml:"policy"`
	Complete      bool              `json:"complete" yaml:"complete"`
	TrailingBytes int               `json:"trailing_bytes" yaml:"trailing_bytes"`
	StopReason    string            `json:"stop_reason,omitempty" yaml:"stop_reason,omitempty"`
	Partitions    []PartitionReport `json:"partitions" yaml:"partitions"`
}

// PartitionReport describes one decoded partition.
type PartitionReport struct {
	Index         int          `json:"index" yaml:"index"`
	Offset        int          `json:"offset" yaml:"offset"`
	Size          int          `json:"size" yaml:"size"`
	Signature     string       `json:"signature" yaml:"signature"`
	SignatureName string       `json:"signature_name" yaml:"signature_name"`
	Checksum      string       `json:"checksum" yaml:"checksum"`
	Length        uint16       `json:"length" yaml:"length"`
	Name          string       `json:"name" yaml:"name"`
	CID           string       `json:"cid" yaml:"cid"`
	PairCount     int          `json:"pair_count" yaml:"pair_count"`
	Pairs         []PairReport `json:"pairs,omitempty" yaml:"pairs,omitempty"`
}

// PairReport is a key=value record rendered for display.
type PairReport struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Options controls Build.
type Options struct {
	// Source labels the image (file path, "stdin", upload)
	Source string

	// Compression is the input compression the image was stored with
	Compression string

	// Policy is the trailing-data policy the image was decoded with
	Policy nvram.Policy

	// NoPairs omits pair listings, keeping only the counts
	NoPairs bool
}

// Build summarizes img, which must have been decoded from data.
func Build(data []byte, img *nvram.Image, opts Options) *Report {
	r := &Report{
		Source:        opts.Source,
		Size:          len(data),
		Compression:   opts.Compression,
		CID:           digest.CID(data),
		Policy:        opts.Policy.String(),
		Complete:      len(img.Trailing) == 0,
		TrailingBytes: len(img.Trailing),
		Partitions:    make([]PartitionReport, 0, len(img.Partitions)),
	}
	if img.StopErr != nil {
		r.StopReason = img.StopErr.Error()
	}

	for i, p := range img.Partitions {
		pr := PartitionReport{
			Index:         i,
			Offset:        p.Offset,
			Size:          p.Size,
			Signature:     fmt.Sprintf("0x%02X", p.Header.Signature),
			SignatureName: nvram.SignatureName(p.Header.Signature),
			Checksum:      fmt.Sprintf("0x%02X", p.Header.Checksum),
			Length:        p.Header.Length,
			Name:          Display(trimName(p.Header.Name)),
			CID:           digest.CID(partitionBytes(data, p)),
			PairCount:     len(p.Pairs),
		}
		if !opts.NoPairs {
			pr.Pairs = make([]PairReport, len(p.Pairs))
			for j, kv := range p.Pairs {
				pr.Pairs[j] = PairReport{Key: Display(kv.Key), Value: Display(kv.Value)}
			}
		}
		r.Partitions = append(r.Partitions, pr)
	}
	return r
}

// Match is one value found by Lookup.
type Match struct {
	Partition int
	Name      string
	Value     []byte
}

// Lookup returns every value stored under key, in image order. A non-empty
// partition restricts the search to partitions with that name.
func Lookup(img *nvram.Image, key, partition string) []Match {
	var out []Match
	for i, p := range img.Partitions {
		name := p.Header.NameString()
		if partition != "" && name != partition {
			continue
		}
		for _, v := range p.Values(key) {
			out = append(out, Match{Partition: i, Name: name, Value: v})
		}
	}
	return out
}

// Display returns b as text. Valid printable UTF-8 is returned as is; anything
// else is Go-quoted so control and binary bytes remain visible.
func Display(b []byte) string {
	if printable(b) {
		return string(b)
	}
	return strconv.Quote(string(b))
}

func printable(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}
	for _, r := range string(b) {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

func trimName(name []byte) []byte {
	for i, c := range name {
		if c == 0 {
			return name[:i]
		}
	}
	return name
}

func partitionBytes(data []byte, p *nvram.Partition) []byte {
	end := p.Offset + p.Size
	if p.Offset < 0 || end > len(data) || end < p.Offset {
		return nil
	}
	return data[p.Offset:end]
}
