package constants

import "strings"

// MaxUploadBytes caps brochure uploads at the transport layer.
const MaxUploadBytes = 50 << 20 // 50MB

// PDFMimeType is the only accepted upload content type.
const PDFMimeType = "application/pdf"

// AllowedExtensions holds the file extensions accepted for brochure parsing.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsAllowedExt reports whether the extension is accepted for parsing.
func IsAllowedExt(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}
