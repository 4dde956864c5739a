package tiled

// Map represents the root of a Tiled JSON map export. Only the parts the
// converter consumes are mapped explicitly; unknown keys in the export are
// ignored during decoding.
type Map struct {
	Version    string    `json:"version,omitempty"`
	Width      int       `json:"width,omitempty"`
	Height     int       `json:"height,omitempty"`
	TileWidth  int       `json:"tilewidth,omitempty"`
	TileHeight int       `json:"tileheight,omitempty"`
	Layers     []Layer   `json:"layers"`
	Tilesets   []Tileset `json:"tilesets"`
}

// Layer is a named, ordered group of objects. The name is unique per map
// and becomes the key in the converted output.
type Layer struct {
	Name    string   `json:"name"`
	Type    string   `json:"type,omitempty"`
	Objects []Object `json:"objects"`
}

// Object is one entity placed on a layer: a plain point/rectangle, a
// polyline/polygon shape, or a tile image reference (gid).
//
// Presence-sensitive fields are pointers so that an absent key can be told
// apart from a zero value; classification happens once, after decoding,
// based on which of GID/Polyline/Polygon are present.
type Object struct {
	ID       int      `json:"id,omitempty"`
	Name     string   `json:"name"`
	Type     string   `json:"type,omitempty"`
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Rotation float64  `json:"rotation,omitempty"`
	GID      *int     `json:"gid,omitempty"`
	Polyline []Point  `json:"polyline,omitempty"`
	Polygon  []Point  `json:"polygon,omitempty"`
}

// Point is a coordinate pair relative to the owning object's position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Tileset owns a contiguous block of global tile ids starting at FirstGID.
// Tilesets in a map are sorted by ascending FirstGID and do not overlap.
type Tileset struct {
	FirstGID int    `json:"firstgid"`
	Name     string `json:"name,omitempty"`
	Tiles    []Tile `json:"tiles,omitempty"`
}

// Tile is a single tile definition inside a tileset. ID is local to the
// tileset; the global id of the tile is FirstGID+ID.
type Tile struct {
	ID          int    `json:"id"`
	Image       string `json:"image"`
	ImageWidth  int    `json:"imagewidth,omitempty"`
	ImageHeight int    `json:"imageheight,omitempty"`
}
