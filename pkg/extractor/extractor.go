package extractor

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tiledtools/tiled-extractor/pkg/tiled"

	"gopkg.in/yaml.v3"
)

// Kind discriminates the three record variants produced by extraction.
type Kind int

const (
	// KindPlain is a point or rectangle object: name, width, height, x, y.
	KindPlain Kind = iota
	// KindShape is a polyline or polygon object: name, width, height and
	// an absolute-coordinate point list.
	KindShape
	// KindTile is a tile image reference: width, height, x, y and the
	// image path resolved against the map's tilesets. Tile records carry
	// no name.
	KindTile
)

// String returns a human-readable kind name for summaries and errors.
func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindShape:
		return "shape"
	case KindTile:
		return "tile"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Dot is an absolute [x, y] coordinate pair.
type Dot [2]float64

// Record is one converted object. Kind determines which fields are
// meaningful; serialization emits exactly the fields of the variant.
// Width and Height are nil when the source object omits them, in which
// case they are left out of the output as well.
type Record struct {
	Kind   Kind
	Name   string
	Width  *float64
	Height *float64
	X, Y   float64 // plain and tile records
	Dots   []Dot   // shape records
	Image  string  // tile records
}

// LayerRecords pairs a layer name with its converted objects, in source
// order.
type LayerRecords struct {
	Name    string
	Records []Record
}

// Document is the converted output: a mapping from layer name to records
// that preserves the source map's layer and object order. Go maps do not
// keep insertion order, so the mapping is held as an ordered slice and
// serialized through custom marshallers.
type Document struct {
	Layers []LayerRecords
}

// Config controls extraction for a whole run.
type Config struct {
	// ImageOriginCorrection rewrites a tile record's y to y-height,
	// converting the anchor from bottom-left to top-left.
	ImageOriginCorrection bool
	// RelativeImagePaths strips leading parent-directory segments from
	// resolved tileset image paths.
	RelativeImagePaths bool
}

// Extract converts a parsed Tiled map into a Document. Layers and objects
// are processed strictly in input order; the input map is not modified.
//
// A malformed object (missing required field, unresolvable gid) aborts
// extraction with an error naming the layer and the object's index in it.
func Extract(m *tiled.Map, cfg Config) (*Document, error) {
	doc := &Document{Layers: make([]LayerRecords, 0, len(m.Layers))}

	for _, layer := range m.Layers {
		lr := LayerRecords{
			Name:    layer.Name,
			Records: make([]Record, 0, len(layer.Objects)),
		}
		for i := range layer.Objects {
			rec, err := convertObject(m, &layer.Objects[i], cfg)
			if err != nil {
				return nil, fmt.Errorf("layer %q, object %d: %w", layer.Name, i, err)
			}
			lr.Records = append(lr.Records, rec)
		}
		doc.Layers = append(doc.Layers, lr)
	}

	return doc, nil
}

// convertObject classifies a single object and builds its record.
// Classification order matters: gid wins over polyline, polyline over
// polygon, anything else is plain.
func convertObject(m *tiled.Map, obj *tiled.Object, cfg Config) (Record, error) {
	if obj.X == nil || obj.Y == nil {
		return Record{}, fmt.Errorf("malformed object %q: missing x/y position", obj.Name)
	}

	rec := Record{Width: obj.Width, Height: obj.Height}

	switch {
	case obj.GID != nil:
		rec.Kind = KindTile
		image, err := m.TileImage(*obj.GID)
		if err != nil {
			return Record{}, err
		}
		rec.Image = tiled.FormatImagePath(image, cfg.RelativeImagePaths)
		rec.X = *obj.X
		rec.Y = *obj.Y
		if cfg.ImageOriginCorrection {
			if obj.Height == nil {
				return Record{}, fmt.Errorf("malformed object %q: origin correction requires a height", obj.Name)
			}
			rec.Y -= *obj.Height
		}

	case obj.Polyline != nil:
		rec.Kind = KindShape
		rec.Name = obj.Name
		rec.Dots = absoluteDots(*obj.X, *obj.Y, obj.Polyline)

	case obj.Polygon != nil:
		rec.Kind = KindShape
		rec.Name = obj.Name
		rec.Dots = absoluteDots(*obj.X, *obj.Y, obj.Polygon)

	default:
		rec.Kind = KindPlain
		rec.Name = obj.Name
		rec.X = *obj.X
		rec.Y = *obj.Y
	}

	return rec, nil
}

// absoluteDots translates relative shape points into absolute coordinates
// using the object's own position as origin. Order and length are
// preserved; an empty point list yields an empty (non-nil) result.
func absoluteDots(originX, originY float64, points []tiled.Point) []Dot {
	dots := make([]Dot, len(points))
	for i, p := range points {
		dots[i] = Dot{originX + p.X, originY + p.Y}
	}
	return dots
}

// MarshalJSON emits the variant's exact field set, in a stable field order.
func (r Record) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case KindShape:
		dots := r.Dots
		if dots == nil {
			dots = []Dot{}
		}
		return json.Marshal(struct {
			Name   string   `json:"name"`
			Width  *float64 `json:"width,omitempty"`
			Height *float64 `json:"height,omitempty"`
			Dots   []Dot    `json:"dots"`
		}{r.Name, r.Width, r.Height, dots})

	case KindTile:
		return json.Marshal(struct {
			Width  *float64 `json:"width,omitempty"`
			Height *float64 `json:"height,omitempty"`
			X      float64  `json:"x"`
			Y      float64  `json:"y"`
			Image  string   `json:"image"`
		}{r.Width, r.Height, r.X, r.Y, r.Image})

	default:
		return json.Marshal(struct {
			Name   string   `json:"name"`
			Width  *float64 `json:"width,omitempty"`
			Height *float64 `json:"height,omitempty"`
			X      float64  `json:"x"`
			Y      float64  `json:"y"`
		}{r.Name, r.Width, r.Height, r.X, r.Y})
	}
}

// MarshalJSON writes the document as a JSON object whose keys appear in
// source layer order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, layer := range d.Layers {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(layer.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		records := layer.Records
		if records == nil {
			records = []Record{}
		}
		value, err := json.Marshal(records)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML mirrors MarshalJSON for YAML output, using explicit nodes to
// keep layer order intact.
func (d *Document) MarshalYAML() (interface{}, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	for _, layer := range d.Layers {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: layer.Name}
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, rec := range layer.Records {
			node, err := rec.yamlNode()
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, node)
		}
		root.Content = append(root.Content, key, seq)
	}

	return root, nil
}

// MarshalYAML emits the same per-variant field set as MarshalJSON.
func (r Record) MarshalYAML() (interface{}, error) {
	return r.yamlNode()
}

func (r Record) yamlNode() (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	add := func(key string, value any) error {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(value); err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		node.Content = append(node.Content, keyNode, valueNode)
		return nil
	}

	if r.Kind != KindTile {
		if err := add("name", r.Name); err != nil {
			return nil, err
		}
	}
	if r.Width != nil {
		if err := add("width", *r.Width); err != nil {
			return nil, err
		}
	}
	if r.Height != nil {
		if err := add("height", *r.Height); err != nil {
			return nil, err
		}
	}

	switch r.Kind {
	case KindShape:
		dots := r.Dots
		if dots == nil {
			dots = []Dot{}
		}
		if err := add("dots", dots); err != nil {
			return nil, err
		}
	case KindTile:
		if err := add("x", r.X); err != nil {
			return nil, err
		}
		if err := add("y", r.Y); err != nil {
			return nil, err
		}
		if err := add("image", r.Image); err != nil {
			return nil, err
		}
	default:
		if err := add("x", r.X); err != nil {
			return nil, err
		}
		if err := add("y", r.Y); err != nil {
			return nil, err
		}
	}

	return node, nil
}

// CountByKind returns how many records of each kind the document holds,
// for run summaries.
func (d *Document) CountByKind() map[Kind]int {
	counts := make(map[Kind]int)
	for _, layer := range d.Layers {
		for _, rec := range layer.Records {
			counts[rec.Kind]++
		}
	}
	return counts
}
