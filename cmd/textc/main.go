// Command textc compiles a tabular style/string specification into a
// packed text-mesh document plus a glyph atlas.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/gogpu/textc"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		showHelp bool
		verbose  bool
		debug    bool
	)

	cfg := textc.DefaultConfig()
	pflag.StringVarP(&cfg.Dir, "dir", "d", cfg.Dir, "Working directory holding the input tables")
	pflag.StringVar(&cfg.StylesFile, "styles", cfg.StylesFile, "Styles table file name, relative to --dir")
	pflag.StringVar(&cfg.StringsFile, "strings", cfg.StringsFile, "Strings table file name, relative to --dir")
	pflag.StringVar(&cfg.FontsDir, "fonts", cfg.FontsDir, "Font directory, relative to --dir")
	pflag.StringVarP(&cfg.OutDir, "out", "o", cfg.OutDir, "Output directory, relative to --dir")
	pflag.StringVar(&cfg.CacheFile, "cache", cfg.CacheFile, "Incremental cache file, relative to --dir")
	pflag.StringVar(&cfg.MSDFGenPath, "msdfgen", cfg.MSDFGenPath, "Path to the msdfgen binary")
	pflag.IntVar(&cfg.BitmapSize, "bitmap-size", cfg.BitmapSize, "Glyph render resolution in pixels")
	pflag.IntVar(&cfg.Padding, "padding", cfg.Padding, "Padding around glyph ink bounds in pixels")
	pflag.IntVar(&cfg.PxRange, "pxrange", cfg.PxRange, "Distance field range in pixels")
	pflag.BoolVar(&cfg.DebugPages, "debug-pages", cfg.DebugPages, "Write per-page preview images")
	pflag.BoolVarP(&verbose, "verbose", "v", false, "Log lifecycle events to stderr")
	pflag.BoolVar(&debug, "debug", false, "Log full per-stage diagnostics to stderr")
	pflag.BoolVarP(&showHelp, "help", "h", false, "Show help message")
	pflag.Parse()

	if showHelp {
		printHelp()
		return 0
	}

	args := pflag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one language argument required")
		printHelp()
		return 1
	}
	cfg.Language = args[0]

	if verbose || debug {
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		textc.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	}

	if err := textc.Compile(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printHelp() {
	fmt.Println("textc - offline text-mesh compiler")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  textc [flags] <language>")
	fmt.Println()
	fmt.Println("Flags:")
	pflag.PrintDefaults()
}
