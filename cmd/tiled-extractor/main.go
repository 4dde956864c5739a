package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tiledextractor "github.com/tiledtools/tiled-extractor"
	"github.com/tiledtools/tiled-extractor/pkg/extractor"
	"github.com/tiledtools/tiled-extractor/pkg/tiled"
	"github.com/tiledtools/tiled-extractor/pkg/writer"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const version = tiled.Version

var (
	inputPath        string
	outputName       string
	destDir          string
	outputFormat     string
	originCorrection bool
	relativePaths    bool
	assumeYes        bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tiled-extractor",
		Short: "Convert Tiled object layers into a simplified layer document",
		Long:  "A tool to convert object layers from a Tiled map editor JSON export into a simplified document of named layers with point, shape, and tile-image records",
		Run:   run,
	}

	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Path to the Tiled JSON export (required)")
	rootCmd.Flags().StringVarP(&outputName, "name", "n", "", "Output file name without extension (default: input file name)")
	rootCmd.Flags().StringVarP(&destDir, "dest", "d", ".", "Destination directory for the output file")
	rootCmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json, yaml")
	rootCmd.Flags().BoolVar(&originCorrection, "origin-correction", false, "Anchor tile images at their top-left corner (y becomes y-height)")
	rootCmd.Flags().BoolVar(&relativePaths, "relative-paths", false, "Strip leading \"../\" segments from resolved tile image paths")
	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Replace an existing output file without asking")

	rootCmd.MarkFlagRequired("input")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tiled-extractor version %s\n", version)
		},
	}

	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	cyan.Println("\n🗺  Tiled Layer Extractor")
	cyan.Println("=========================")
	cyan.Println()

	format, err := writer.ParseFormat(outputFormat)
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	result, err := tiledextractor.Run(tiledextractor.Options{
		InputPath:             inputPath,
		ImageOriginCorrection: originCorrection,
		RelativeImagePaths:    relativePaths,
		Logger:                &cliLogger{},
	})
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// Display extracted stats.
	doc := result.Document
	counts := doc.CountByKind()
	cyan.Println("\n📊 Extraction Summary:")
	fmt.Printf("  • Layers: %d\n", len(doc.Layers))
	fmt.Printf("  • Records: %d plain, %d shape, %d tile\n",
		counts[extractor.KindPlain],
		counts[extractor.KindShape],
		counts[extractor.KindTile])
	for _, layer := range doc.Layers {
		fmt.Printf("  • %s: %d object(s)\n", layer.Name, len(layer.Records))
	}

	name := outputName
	if name == "" {
		base := filepath.Base(result.InputPath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	var prompter writer.Prompter
	if assumeYes {
		prompter = writer.AutoApprove{}
	}

	green.Printf("\n💾 Storing %s.%s...\n", name, format.Ext())
	err = result.Store(tiledextractor.StoreOptions{
		Name:     name,
		DestDir:  destDir,
		Format:   format,
		Prompter: prompter,
	})
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// cliLogger implements tiledextractor.Logger with colored terminal output.
type cliLogger struct{}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Printf(format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Printf("⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Printf("✗ "+format+"\n", args...)
}
