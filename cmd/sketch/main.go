// Command sketch renders the gallery demos to image files.
//
// The output format follows the extension of -o: png, jpg, gif, tiff,
// bmp, svg, pdf or eps.
//
//	sketch -demo map -shapefile ne_110m_land.shp -airports airports.csv -o map.pdf
//	sketch -config sketch.toml -w 1200
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/gallery"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "sketch:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("sketch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		demo       = fs.String("demo", "", "demo to render (see -list)")
		output     = fs.String("o", "", "output file; the extension picks the format")
		width      = fs.Int("w", 0, "image width")
		height     = fs.Int("h", 0, "image height")
		configPath = fs.String("config", "", "TOML file with default settings")
		shapefile  = fs.String("shapefile", "", "shapefile for the map demo")
		geoJSON    = fs.String("geojson", "", "GeoJSON file for the map demo")
		airports   = fs.String("airports", "", "airports CSV for the map demo")
		bench      = fs.String("bench", "", "benchmark results for the chart demos")
		list       = fs.Bool("list", false, "list the demos and output formats")
		verbose    = fs.Bool("v", false, "log debug messages to stderr")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *list {
		fmt.Fprintln(stdout, "demos:  ", strings.Join(gallery.Names(), " "))
		fmt.Fprintln(stdout, "formats:", strings.Join(sketch.Formats(), " "))
		return nil
	}

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = loadConfig(*configPath); err != nil {
			return err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "demo":
			cfg.Demo = *demo
		case "o":
			cfg.Output = *output
		case "w":
			cfg.Width = *width
		case "h":
			cfg.Height = *height
		case "shapefile":
			cfg.Inputs.Shapefile = *shapefile
		case "geojson":
			cfg.Inputs.GeoJSON = *geoJSON
		case "airports":
			cfg.Inputs.Airports = *airports
		case "bench":
			cfg.Inputs.Benchmarks = *bench
		case "v":
			if *verbose {
				cfg.LogLevel = "debug"
			}
		}
	})

	level, logging, err := cfg.level()
	if err != nil {
		return err
	}
	if logging {
		sketch.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
		defer sketch.SetLogger(nil)
	}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", cfg.Width, cfg.Height)
	}

	var opts []sketch.Option
	if cfg.Font != "" {
		size := cfg.FontSize
		if size <= 0 {
			size = 12
		}
		opts = append(opts, sketch.WithFont(cfg.Font, size))
	} else if cfg.FontSize > 0 {
		opts = append(opts, sketch.WithFontSize(cfg.FontSize))
	}

	d := sketch.NewDrawing(cfg.Width, cfg.Height, cfg.Output, opts...)
	if err := gallery.Render(d, cfg.Demo, cfg.Inputs); err != nil {
		return err
	}
	if err := d.Finish(); err != nil {
		return err
	}
	sketch.Logger().Info("sketch: wrote drawing", "demo", cfg.Demo, "file", cfg.Output,
		"width", cfg.Width, "height", cfg.Height)
	return nil
}
