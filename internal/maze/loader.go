package maze

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed maps/*.yaml
var builtinFS embed.FS

// Parse decodes a map document shaped {width, height, layout: [[int]]}.
// JSON documents are accepted as well since JSON is valid YAML.
// The result is validated; rows longer than width are trimmed.
func Parse(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("maze: parse: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l.Clone(), nil
}

// LoadFile reads and parses a map file.
func LoadFile(p string) (*Layout, error) {
	ext := strings.ToLower(filepath.Ext(p))
	if !isSupportedExtension(ext) {
		return nil, fmt.Errorf("maze: unsupported extension %q for %s", ext, p)
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("maze: reading file %s: %w", p, err)
	}

	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return l, nil
}

// Load resolves a built-in map name first, then falls back to a file path.
func Load(nameOrPath string) (*Layout, error) {
	if nameOrPath == "" {
		return nil, fmt.Errorf("%w: no map configured", ErrInvalidLayout)
	}
	if l, err := Builtin(nameOrPath); err == nil {
		return l, nil
	}
	return LoadFile(nameOrPath)
}

// Builtin returns a fresh copy of an embedded map.
func Builtin(name string) (*Layout, error) {
	data, err := builtinFS.ReadFile(path.Join("maps", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("maze: unknown built-in map %q", name)
	}
	return Parse(data)
}

// Names returns the built-in map names in sorted order.
func Names() []string {
	entries, err := fs.ReadDir(builtinFS, "maps")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// FormatExtensions returns supported map file extensions.
func FormatExtensions() []string {
	return []string{".json", ".yaml", ".yml"}
}

func isSupportedExtension(ext string) bool {
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
