package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/moffa90/go-ofnvram/internal/report"
	"github.com/moffa90/go-ofnvram/internal/server"
	"github.com/moffa90/go-ofnvram/nvram"
)

var skiboot = append([]byte{
	0x51, 0xB5, 0x01, 0x00, 0x69, 0x62, 0x6D, 0x2C,
	0x73, 0x6B, 0x69, 0x62, 0x6F, 0x6F, 0x74, 0x00,
}, "asdf=fdsa\x00test1=test2\x00asdf=again\x00"...)

// blockImage is a two-block partition with one padded pair followed by a
// one-block partition. Only a length-bounded decode finds both.
func blockImage() []byte {
	hdr := func(sig byte, length uint16, name string) []byte {
		var h [nvram.HeaderSize]byte
		h[0] = sig
		h[2], h[3] = byte(length>>8), byte(length)
		copy(h[4:], name)
		h[1] = nvram.Checksum(h)
		return h[:]
	}
	common := make([]byte, 2*nvram.BlockSize)
	copy(common, hdr(0x70, 2, "common"))
	copy(common[nvram.HeaderSize:], "a=1\x00")
	return append(common, hdr(0x7F, 1, "free")...)
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// runApp runs the CLI with an isolated config file and returns stdout.
func runApp(t *testing.T, config string, args ...string) (string, error) {
	t.Helper()

	cfg := writeFile(t, "config.yaml", []byte(config))

	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut

	argv := append([]string{"ofnvram", "--config", cfg}, args...)
	err := app.Run(context.Background(), argv)
	return out.String(), err
}

func TestInspect(t *testing.T) {
	image := writeFile(t, "nvram.bin", skiboot)

	out, err := runApp(t, "", "inspect", image)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"ibm,skiboot", "firmware", "  asdf=fdsa\n", "  asdf=again\n", "trailing:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInspectFormat(t *testing.T) {
	image := writeFile(t, "nvram.bin", skiboot)

	tests := []struct {
		name     string
		config   string
		args     []string
		wantJSON bool
	}{
		{"flag", "", []string{"inspect", "--format", "json", image}, true},
		{"config", "format: json\n", []string{"inspect", image}, true},
		{"flag overrides config", "format: json\n", []string{"inspect", "--format", "text", image}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runApp(t, tt.config, tt.args...)
			if err != nil {
				t.Fatalf("inspect: %v", err)
			}

			var decoded map[string]any
			isJSON := json.Unmarshal([]byte(out), &decoded) == nil
			if isJSON != tt.wantJSON {
				t.Fatalf("json output = %v, want %v:\n%s", isJSON, tt.wantJSON, out)
			}
		})
	}

	if _, err := runApp(t, "", "inspect", "--format", "xml", image); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestInspectErrors(t *testing.T) {
	corrupt := append([]byte{}, skiboot...)
	corrupt[1] ^= 0xFF

	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"missing path", []string{"inspect"}, "missing image path"},
		{"missing file", []string{"inspect", filepath.Join(t.TempDir(), "nope.bin")}, "failed to open image"},
		{"bad checksum", []string{"inspect", writeFile(t, "bad.bin", corrupt)}, "checksum mismatch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, "", tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("error = %v, want %q", err, tt.wantMsg)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	good := writeFile(t, "good.bin", skiboot)
	trailing := writeFile(t, "trailing.bin", append(append([]byte{}, skiboot...), "junk"...))

	out, err := runApp(t, "", "validate", good, trailing)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "ok   "+good+": 1 partition(s)") {
		t.Errorf("output missing good image line:\n%s", out)
	}
	if !strings.Contains(out, "4 trailing bytes ignored") {
		t.Errorf("output missing trailing note:\n%s", out)
	}

	out, err = runApp(t, "", "validate", "--strict", good, trailing)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 image(s) failed validation") {
		t.Fatalf("strict error = %v", err)
	}
	if !strings.Contains(out, "FAIL "+trailing) {
		t.Errorf("output missing failure line:\n%s", out)
	}

	if _, err := runApp(t, "strict: true\n", "validate", trailing); err == nil {
		t.Error("config strict: true should reject trailing data")
	}
	if _, err := runApp(t, "strict: true\n", "validate", "--strict=false", trailing); err != nil {
		t.Errorf("explicit --strict=false should override config: %v", err)
	}
}

func TestGet(t *testing.T) {
	image := writeFile(t, "nvram.bin", skiboot)

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr string
	}{
		{"first value", []string{"get", image, "asdf"}, "fdsa\n", ""},
		{"all values", []string{"get", "--all", image, "asdf"}, "fdsa\nagain\n", ""},
		{"named partition", []string{"get", "-p", "ibm,skiboot", image, "test1"}, "test2\n", ""},
		{"missing key", []string{"get", image, "nope"}, "", `key "nope" not found`},
		{"missing partition", []string{"get", "-p", "common", image, "asdf"}, "", `in partition "common"`},
		{"bad arity", []string{"get", image}, "", "expected FILE KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runApp(t, "", tt.args...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	out, err := runApp(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "version:") {
		t.Errorf("output = %q", out)
	}
}

func TestInspectBounded(t *testing.T) {
	image := writeFile(t, "nvram.bin", blockImage())

	tests := []struct {
		name      string
		config    string
		args      []string
		wantParts int
	}{
		{"greedy", "", []string{"inspect", "-f", "json", image}, 1},
		{"flag", "", []string{"inspect", "-f", "json", "--bounded", image}, 2},
		{"config", "bounded: true\n", []string{"inspect", "-f", "json", image}, 2},
		{"flag overrides config", "bounded: true\n", []string{"inspect", "-f", "json", "--bounded=false", image}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runApp(t, tt.config, tt.args...)
			if err != nil {
				t.Fatalf("inspect: %v", err)
			}
			var rep report.Report
			if err := json.Unmarshal([]byte(out), &rep); err != nil {
				t.Fatalf("decode report: %v\n%s", err, out)
			}
			if len(rep.Partitions) != tt.wantParts {
				t.Errorf("partitions = %d, want %d", len(rep.Partitions), tt.wantParts)
			}
		})
	}
}

func TestServeOptions(t *testing.T) {
	opts := decodeParams{strict: true, bounded: true, maxSize: 0}.serverOptions()
	if !opts.Strict || !opts.Bounded || opts.MaxImageSize != 0 {
		t.Errorf("serverOptions() = %+v", opts)
	}

	var maxSize *cli.Int64Flag
	for _, f := range serveCmd().Flags {
		if fl, ok := f.(*cli.Int64Flag); ok && fl.Name == "max-image-size" {
			maxSize = fl
		}
	}
	if maxSize == nil {
		t.Fatal("serve has no --max-image-size flag")
	}
	if maxSize.Value != server.DefaultMaxImageSize {
		t.Errorf("serve --max-image-size default = %d, want %d", maxSize.Value, server.DefaultMaxImageSize)
	}
}
