package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/moffa90/go-ofnvram/nvram"
)

func TestJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)
	log.Info("hello", "key", "value")

	output := buf.String()
	if !strings.Contains(output, `"msg":"hello"`) {
		t.Fatalf("expected message in output, got: %s", output)
	}
	if !strings.Contains(output, `"key":"value"`) {
		t.Fatalf("expected key=value in JSON output, got: %s", output)
	}
}

func TestJSONLevelFiltering(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelWarn)
	log.Info("should not appear")

	if buf.Len() > 0 {
		t.Fatalf("expected no output at warn level, got: %s", buf.String())
	}

	log.Warn("should appear")
	if !strings.Contains(buf.String(), "should appear") {
		t.Fatalf("expected warn message in output, got: %s", buf.String())
	}
}

func TestPretty(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := Pretty(&buf, slog.LevelDebug).With("image", "nvram.bin")
	log.Debug("decoded partition", "name", "ibm,skiboot", "note", "two words")

	output := buf.String()
	for _, want := range []string{"decoded partition", "image=nvram.bin", "name=ibm,skiboot", `note="two words"`, "DEBUG"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

func TestForFormat(t *testing.T) {
	t.Parallel()
	for _, format := range []string{"", "pretty", "json", "text"} {
		var buf bytes.Buffer
		log, err := ForFormat(&buf, format, slog.LevelInfo)
		if err != nil {
			t.Fatalf("ForFormat(%q): %v", format, err)
		}
		log.Info("ready")
		if !strings.Contains(buf.String(), "ready") {
			t.Errorf("ForFormat(%q) output = %q", format, buf.String())
		}
	}

	if _, err := ForFormat(&bytes.Buffer{}, "xml", slog.LevelInfo); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestContext(t *testing.T) {
	t.Parallel()
	log := Discard()
	ctx := WithContext(context.Background(), log)
	if FromContext(ctx) != log {
		t.Error("FromContext did not return the stored logger")
	}
	if FromContext(context.Background()) == nil {
		t.Error("FromContext returned nil without a stored logger")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSatisfiesDecoderLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	var log nvram.Logger = Text(&buf, slog.LevelDebug)

	data := []byte{
		0x51, 0xB5, 0x01, 0x00, 0x69, 0x62, 0x6D, 0x2C,
		0x73, 0x6B, 0x69, 0x62, 0x6F, 0x6F, 0x74, 0x00,
	}
	if _, err := nvram.ParseImage(data, nvram.WithLogger(log)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "decoded partition") {
		t.Errorf("expected decoder debug output, got: %s", buf.String())
	}
}
