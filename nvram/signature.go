package nvram

import "fmt"

// Well-known partition signatures (PAPR / skiboot).
const (
	SignatureServiceProcessor byte = 0x02
	SignatureOpenFirmware     byte = 0x50
	SignatureFirmware         byte = 0x51
	SignatureHardware         byte = 0x52
	SignatureFlip             byte = 0x5A
	SignatureApplication      byte = 0x5F
	SignatureSystem           byte = 0x70
	SignatureConfig           byte = 0x71
	SignatureErrorLog         byte = 0x72
	SignatureVendor           byte = 0x7E
	SignatureFree             byte = 0x7F
	SignatureOS               byte = 0xA0
	SignaturePanic            byte = 0xA1
)

// SignatureName returns a short name for a partition signature, or a hex
// representation when the signature is not well known.
func SignatureName(sig byte) string {
	switch sig {
	case SignatureServiceProcessor:
		return "service-processor"
	case SignatureOpenFirmware:
		return "open-firmware"
	case SignatureFirmware:
		return "firmware"
	case SignatureHardware:
		return "hardware"
	case SignatureFlip:
		return "flip"
	case SignatureApplication:
		return "application"
	case SignatureSystem:
		return "system"
	case SignatureConfig:
		return "config"
	case SignatureErrorLog:
		return "error-log"
	case SignatureVendor:
		return "vendor"
	case SignatureFree:
		return "free"
	case SignatureOS:
		return "os"
	case SignaturePanic:
		return "panic"
	default:
		return fmt.Sprintf("unknown-0x%02X", sig)
	}
}
