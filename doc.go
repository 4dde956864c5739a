// Package tiledextractor converts object layers from a Tiled map editor
// JSON export into a simplified document of named layers, each holding
// plain point/rectangle records, absolute-coordinate polyline/polygon
// records, or tile image references resolved against the map's tilesets.
//
// The CLI lives in cmd/tiled-extractor; this root package exposes the same
// pipeline as a Go API so that asset pipelines can embed the conversion
// without shelling out.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named tiledextractor:
//
//	import "github.com/tiledtools/tiled-extractor" // package tiledextractor
//
// # Quick start
//
//	result, err := tiledextractor.Run(tiledextractor.Options{
//	    InputPath: "assets/maps/collisions.json",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = result.Store(tiledextractor.StoreOptions{Name: "collisions", DestDir: "assets/data"})
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output.
//
// # Overwrite confirmation
//
// Store creates the output file exclusively. When the file already exists
// the prompter configured in [StoreOptions] is asked whether to replace
// it; the default prompter runs an interactive y/n loop on the console,
// and writer.AutoApprove skips the question entirely. A refused overwrite
// or a missing destination directory ends the store step with a message,
// not an error.
//
// # Tile images
//
// Objects carrying a gid are resolved to a tileset image path. Set
// [Options.ImageOriginCorrection] to move the anchor from Tiled's
// bottom-left to top-left, and [Options.RelativeImagePaths] to strip
// leading "../" segments from the stored image paths.
package tiledextractor
