package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

const DefaultTileSize = 32

type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	TileSize  float64     `json:"tile_size,omitempty"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Physics bool `json:"physics"`
}

type Entity struct {
	Type  string                 `json:"type"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// Tile returns the tile size in pixels.
func (l *Level) Tile() float64 {
	if l == nil || l.TileSize <= 0 {
		return DefaultTileSize
	}
	return l.TileSize
}

// PixelSize returns the level size in pixels.
func (l *Level) PixelSize() (float64, float64) {
	if l == nil {
		return 0, 0
	}
	return float64(l.Width) * l.Tile(), float64(l.Height) * l.Tile()
}

// Validate checks that every layer covers the whole grid.
func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("level: invalid size %dx%d", l.Width, l.Height)
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("level: layer %d has %d tiles, want %d", i, len(layer), l.Width*l.Height)
		}
	}
	return nil
}

// LoadLevelFromFS reads a level embedded in the binary.
func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, cleanLevelPath(name))
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return decode(data)
}

// Load reads a level from disk when the path exists, otherwise from the
// embedded levels.
func Load(name string) (*Level, error) {
	if data, err := os.ReadFile(name); err == nil {
		return decode(data)
	}
	return LoadLevelFromFS(name)
}

// Save writes lvl as indented JSON.
func Save(path string, lvl *Level) error {
	data, err := json.MarshalIndent(lvl, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal level: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create level dir: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write level: %w", err)
	}
	return nil
}

func decode(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		s = after
	}
	return s
}
