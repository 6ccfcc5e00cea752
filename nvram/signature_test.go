package nvram

import "testing"

func TestSignatureName(t *testing.T) {
	tests := []struct {
		sig  byte
		want string
	}{
		{SignatureServiceProcessor, "service-processor"},
		{SignatureOpenFirmware, "open-firmware"},
		{SignatureFirmware, "firmware"},
		{SignatureHardware, "hardware"},
		{SignatureFlip, "flip"},
		{SignatureApplication, "application"},
		{SignatureSystem, "system"},
		{SignatureConfig, "config"},
		{SignatureErrorLog, "error-log"},
		{SignatureVendor, "vendor"},
		{SignatureFree, "free"},
		{SignatureOS, "os"},
		{SignaturePanic, "panic"},
		{0x00, "unknown-0x00"},
		{0xC3, "unknown-0xC3"},
	}

	for _, tt := range tests {
		if got := SignatureName(tt.sig); got != tt.want {
			t.Errorf("SignatureName(0x%02X) = %q, want %q", tt.sig, got, tt.want)
		}
	}
}
