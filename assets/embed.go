package assets

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed textures fill maps
var assetsFS embed.FS

// FS returns the asset root. An existing directory on disk wins over the
// embedded copy so textures can be swapped without rebuilding.
func FS(dir string) fs.FS {
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return os.DirFS(dir)
		}
	}
	return assetsFS
}

// Embedded returns the assets compiled into the binary.
func Embedded() fs.FS {
	return assetsFS
}

// CleanPath turns an absolute or assets/-prefixed path into an
// assets-relative, slash separated path.
func CleanPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return strings.TrimPrefix(s, "./")
}
