package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	flags "github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"icoforge/internal/assets"
	"icoforge/internal/export"
	"icoforge/internal/icon"
	"icoforge/internal/imgsrc"
	"icoforge/internal/project"
	"icoforge/internal/render"
)

type options struct {
	Project      string `long:"project" env:"ICOFORGE_PROJECT" description:"YAML project file with layer patches"`
	Image        string `long:"image" env:"ICOFORGE_IMAGE" description:"User image file or data URI (PNG, JPEG, BMP, WebP, ICO or SVG)"`
	Out          string `long:"out" short:"o" default:"folder.ico" description:"Output path"`
	Format       string `long:"format" choice:"ico" choice:"zip" default:"ico" description:"Output container"`
	LoadStack    string `long:"load-stack" description:"Start from a previously saved layer stack JSON instead of the defaults"`
	SaveStack    string `long:"save-stack" description:"Also write the layer stack JSON to this path"`
	EmitDataURIs string `long:"emit-data-uris" description:"Also write the user image sources as a size-keyed data URI map to this path"`
	Debug        bool   `long:"debug" env:"ICOFORGE_DEBUG" description:"Enable verbose debug output"`
}

func main() {
	_ = godotenv.Load()

	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	// Configure slog
	logLevel := slog.LevelInfo
	if opts.Debug {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cancel in-flight renders on shutdown signals; no partial output is
	// written after cancellation.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		slog.Error("Export failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	stack := icon.NewStack()
	if opts.LoadStack != "" {
		doc, err := os.ReadFile(opts.LoadStack)
		if err != nil {
			return fmt.Errorf("failed to read stack JSON: %w", err)
		}
		stack, err = icon.DecodeStack(doc)
		if err != nil {
			return err
		}
		slog.Debug("Loaded stack", "path", opts.LoadStack)
	}

	imagePath := opts.Image
	if opts.Project != "" {
		proj, err := project.Load(opts.Project)
		if err != nil {
			return err
		}
		if err := proj.Apply(stack); err != nil {
			return err
		}
		if imagePath == "" {
			imagePath = proj.Image
		}
		slog.Debug("Applied project file", "path", opts.Project, "patches", len(proj.Layers))
	}

	if imagePath != "" {
		if err := loadUserImage(stack, imagePath); err != nil {
			return err
		}
	}

	if opts.EmitDataURIs != "" {
		if err := writeDataURIs(stack, opts.EmitDataURIs); err != nil {
			return err
		}
	}

	engine := render.NewEngine(assets.NewCache(), imgsrc.StdDecoder{})
	pipeline := export.NewPipeline(engine)

	switch opts.Format {
	case "zip":
		var buf bytes.Buffer
		if err := pipeline.ExportZIP(ctx, stack, &buf); err != nil {
			return err
		}
		if err := os.WriteFile(opts.Out, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write archive: %w", err)
		}
	default:
		data, err := pipeline.ExportICO(ctx, stack)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.Out, data, 0644); err != nil {
			return fmt.Errorf("failed to write icon: %w", err)
		}
	}
	slog.Info("Export complete", "out", opts.Out, "format", opts.Format)

	if opts.SaveStack != "" {
		doc, err := icon.EncodeStack(stack)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.SaveStack, doc, 0644); err != nil {
			return fmt.Errorf("failed to write stack JSON: %w", err)
		}
		slog.Info("Stack saved", "path", opts.SaveStack)
	}
	return nil
}

// loadUserImage reads the user image, from a file or a data URI, and assigns
// it to the user image layer: ICO and SVG inputs populate per-size sources in
// bulk, everything else becomes the single global source.
func loadUserImage(stack *icon.Stack, path string) error {
	var data []byte
	var err error
	if strings.HasPrefix(path, "data:") {
		data, err = imgsrc.DecodeDataURI(path)
		if err != nil {
			return err
		}
		path = "(data URI)"
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}
	}

	layer := stack.ByKind(icon.UserImage)
	format := imgsrc.DetectFormat(data)
	slog.Debug("Loaded user image", "path", path, "format", format.String(), "bytes", len(data))

	switch format {
	case imgsrc.FormatICO:
		bySize, err := imgsrc.ImportICO(data)
		if err != nil {
			return err
		}
		return layer.SetSourceBySize(bySize)
	case imgsrc.FormatSVG:
		bySize, err := imgsrc.ImportSVG(data)
		if err != nil {
			return err
		}
		return layer.SetSourceBySize(bySize)
	case imgsrc.FormatUnknown:
		return fmt.Errorf("unrecognized image format in %s", path)
	default:
		layer.SetSource(data)
		return nil
	}
}

// writeDataURIs serializes the user image sources as a JSON map of size to
// data URI, the shape editor frontends consume. A single global source is
// keyed by the canonical canvas size.
func writeDataURIs(stack *icon.Stack, path string) error {
	layer := stack.ByKind(icon.UserImage)
	bySize := layer.SourceBySize
	if bySize == nil && layer.Source != nil {
		bySize = map[icon.Size][]byte{icon.CanvasSize: layer.Source}
	}
	if len(bySize) == 0 {
		return fmt.Errorf("no user image sources to emit")
	}
	doc, err := json.MarshalIndent(imgsrc.ImportDataURIs(bySize), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode data URI map: %w", err)
	}
	if err := os.WriteFile(path, doc, 0644); err != nil {
		return fmt.Errorf("failed to write data URI map: %w", err)
	}
	slog.Info("Data URIs saved", "path", path, "sizes", len(bySize))
	return nil
}
