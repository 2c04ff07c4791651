// Package lang maps uploaded file names to display labels and derives the
// name of the cleaned download.
package lang

import (
	"path/filepath"
	"strings"
)

// Fallback is returned for unknown or missing extensions.
const Fallback = "text"

// labels is keyed by extension without the dot. Matching is case-sensitive.
var labels = map[string]string{
	"py":   "python",
	"cpp":  "cpp",
	"c":    "c",
	"java": "java",
	"js":   "javascript",
	"html": "html",
	"css":  "css",
	"json": "json",
	"xml":  "xml",
}

// Extensions lists the accepted upload extensions in display order.
var Extensions = []string{"py", "cpp", "c", "java", "js", "html", "css", "json", "xml"}

// Detect returns the language label for fileName.
func Detect(fileName string) string {
	_, ext := SplitExt(fileName)
	if label, ok := labels[strings.TrimPrefix(ext, ".")]; ok {
		return label
	}
	return Fallback
}

// Allowed reports whether fileName carries one of the accepted extensions.
func Allowed(fileName string) bool {
	_, ext := SplitExt(fileName)
	_, ok := labels[strings.TrimPrefix(ext, ".")]
	return ok
}

// SplitExt splits the base name of fileName into stem and extension. The
// extension includes its dot. Leading dots belong to the stem, so ".env"
// has no extension.
func SplitExt(fileName string) (stem, ext string) {
	base := filepath.Base(fileName)
	if base == "." || base == "/" {
		return "", ""
	}

	i := strings.LastIndex(base, ".")
	if i <= 0 || strings.TrimLeft(base[:i], ".") == "" {
		return base, ""
	}
	return base[:i], base[i:]
}

// CleanedName returns "<stem>_cleaned<ext>", using ".txt" when the file has
// no extension.
func CleanedName(fileName string) string {
	stem, ext := SplitExt(fileName)
	if ext == "" {
		ext = ".txt"
	}
	return stem + "_cleaned" + ext
}
