package imageset

import (
	"path/filepath"
	"strings"
)

// defaultMIMEType is used when the inner extension is unknown. The shipped
// images are all GIFs.
const defaultMIMEType = "image/gif"

// mimeTypes is a fixed table so output does not depend on the host MIME
// database.
var mimeTypes = map[string]string{
	".gif":  "image/gif",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".avif": "image/avif",
}

// MIMEType derives the image type from the extension left after trimming the
// encoding extension, e.g. "cat.png.b64" -> "image/png".
func MIMEType(name, encodedExt string) string {
	inner := filepath.Ext(strings.TrimSuffix(name, encodedExt))
	if t, ok := mimeTypes[strings.ToLower(inner)]; ok {
		return t
	}
	return defaultMIMEType
}
