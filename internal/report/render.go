package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by Write.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ParseFormat validates an output format name. The empty string selects text.
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
	}
}

// Write renders r to w in the given format.
func Write(w io.Writer, r *Report, format string) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}

	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeText(w, r)
	}
}

func writeText(w io.Writer, r *Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	if r.Source != "" {
		fmt.Fprintf(tw, "source:\t%s\n", r.Source)
	}
	fmt.Fprintf(tw, "size:\t%d bytes\n", r.Size)
	if r.Compression != "" {
		fmt.Fprintf(tw, "compression:\t%s\n", r.Compression)
	}
	fmt.Fprintf(tw, "cid:\t%s\n", r.CID)
	fmt.Fprintf(tw, "policy:\t%s\n", r.Policy)
	fmt.Fprintf(tw, "partitions:\t%d\n", len(r.Partitions))
	if r.Complete {
		fmt.Fprintf(tw, "trailing:\tnone\n")
	} else {
		fmt.Fprintf(tw, "trailing:\t%d bytes (%s)\n", r.TrailingBytes, r.StopReason)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "INDEX\tOFFSET\tSIZE\tSIG\tTYPE\tCHECKSUM\tLENGTH\tPAIRS\tNAME")
	for _, p := range r.Partitions {
		fmt.Fprintf(tw, "%d\t0x%04X\t%d\t%s\t%s\t%s\t0x%04X\t%d\t%s\n",
			p.Index, p.Offset, p.Size, p.Signature, p.SignatureName,
			p.Checksum, p.Length, p.PairCount, p.Name)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, p := range r.Partitions {
		if len(p.Pairs) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n[%d] %s\n", p.Index, p.Name); err != nil {
			return err
		}
		for _, kv := range p.Pairs {
			if _, err := fmt.Fprintf(w, "  %s=%s\n", kv.Key, kv.Value); err != nil {
				return err
			}
		}
	}
	return nil
}
