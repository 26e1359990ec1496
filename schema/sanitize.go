package schema

import (
	"encoding/hex"
	"regexp"
)

var unsafeName = regexp.MustCompile(`^\d|\W`)

// SanitizeName replaces a leading digit and every non-word character with "_"
// followed by the lowercase hex of its UTF-8 bytes: "1name" becomes "_31name".
func SanitizeName(name string) string {
	return unsafeName.ReplaceAllStringFunc(name, func(m string) string {
		return "_" + hex.EncodeToString([]byte(m))
	})
}
