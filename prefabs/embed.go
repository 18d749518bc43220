package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

// DiskRoot is checked before the embedded copies, so prefabs can be tuned
// without rebuilding. Empty disables the override.
var DiskRoot = "prefabs"

// Load returns a prefab spec, preferring the on-disk copy.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, ok := readDisk(clean); ok {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

// LoadScript returns a tengo script from the scripts directory, preferring
// the on-disk copy.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, ok := readDisk(clean); ok {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

func readDisk(clean string) ([]byte, bool) {
	if DiskRoot == "" || clean == "" {
		return nil, false
	}
	data, err := os.ReadFile(filepath.Join(DiskRoot, filepath.FromSlash(clean)))
	if err != nil {
		return nil, false
	}
	return data, true
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "prefabs/scripts/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return "scripts/" + s
}
