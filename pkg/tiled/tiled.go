package tiled

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Version is the tiled-extractor release version.
const Version = "0.1.0"

// Load reads and parses a Tiled JSON map export from path.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a Tiled JSON map export.
func Parse(data []byte) (*Map, error) {
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse map file: %w", err)
	}
	return &m, nil
}

// TileImage resolves a global tile id to the image path stored in the
// owning tileset. Tilesets are scanned in order: the tileset at index i
// owns gid if its FirstGID is <= gid and it is either the last tileset or
// gid is below the next tileset's FirstGID.
//
// An unresolvable gid is an error, not a silent miss: a map that
// references a tile it never defines is malformed.
func (m *Map) TileImage(gid int) (string, error) {
	for i := range m.Tilesets {
		ts := &m.Tilesets[i]
		if ts.FirstGID > gid {
			continue
		}
		if i+1 < len(m.Tilesets) && gid >= m.Tilesets[i+1].FirstGID {
			continue
		}

		localID := gid - ts.FirstGID
		for _, tile := range ts.Tiles {
			if tile.ID == localID {
				return tile.Image, nil
			}
		}
		return "", fmt.Errorf("tileset %q has no tile with local id %d (gid %d)", ts.Name, localID, gid)
	}
	return "", fmt.Errorf("no tileset owns gid %d", gid)
}

// FormatImagePath normalizes a tileset image path to forward-slash
// separators. When relative is true it additionally strips any leading
// parent-directory segments, so "../../tiles/grass.png" becomes
// "tiles/grass.png". Pure string transform; the filesystem is never
// consulted.
func FormatImagePath(path string, relative bool) string {
	normalized := strings.ReplaceAll(path, `\`, "/")
	if !relative {
		return normalized
	}

	segments := strings.Split(normalized, "/")
	i := 0
	for i < len(segments) && segments[i] == ".." {
		i++
	}
	return strings.Join(segments[i:], "/")
}
