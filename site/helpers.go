package site

import (
	"path"
	"strings"
)

// containsHiddenPart reports whether name contains a path element starting with a period.
// The name is assumed to be a delimited by forward slashes, as guaranteed by the fs.FS interface.
func containsHiddenPart(name string) bool {
	if name == "." {
		return false
	}
	parts := strings.Split(name, "/")
	for _, part := range parts {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// dataKeys splits a data file path into the keys it is stored under,
// dropping the extension from the last one.
func dataKeys(rel string) []string {
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	return strings.Split(rel, "/")
}
