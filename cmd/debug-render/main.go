package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"icoforge/internal/assets"
	"icoforge/internal/icon"
	"icoforge/internal/imgsrc"
	"icoforge/internal/render"
)

// debug-render composites a single size to a standalone PNG for quick
// visual inspection, with key=value overrides applied to the default stack.
func main() {
	// Flags
	size := flag.Int("size", 256, "Render size (must be canonical: 16, 20, 24, 32, 40, 64, 256)")
	image := flag.String("image", "", "User image file")
	out := flag.String("out", "debug.png", "Output PNG path")
	flag.Parse()

	// Configure logging
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(handler))

	stack := icon.NewStack()

	// Apply key=value overrides, e.g. front.color=#4488FF user.opacity=80
	for _, arg := range flag.Args() {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 {
			fmt.Printf("Invalid argument: %s (expected key=value)\n", arg)
			continue
		}
		if err := applyOverride(stack, parts[0], parts[1]); err != nil {
			slog.Error("Bad override", "key", parts[0], "error", err)
			os.Exit(1)
		}
	}

	if *image != "" {
		data, err := os.ReadFile(*image)
		if err != nil {
			slog.Error("Failed to read image", "error", err)
			os.Exit(1)
		}
		stack.ByKind(icon.UserImage).SetSource(data)
	}

	engine := render.NewEngine(assets.NewCache(), imgsrc.StdDecoder{})
	img, err := engine.Render(context.Background(), stack, icon.Size(*size))
	if err != nil {
		slog.Error("Render failed", "error", err)
		os.Exit(1)
	}

	f, err := os.Create(*out)
	if err != nil {
		slog.Error("Failed to create output", "error", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		slog.Error("Failed to encode PNG", "error", err)
		os.Exit(1)
	}
	slog.Info("Rendered", "size", *size, "out", *out)
}

// applyOverride mutates one stack attribute addressed as layer.attribute.
func applyOverride(stack *icon.Stack, key, value string) error {
	parts := strings.SplitN(key, ".", 2)
	if len(parts) != 2 {
		return fmt.Errorf("expected layer.attribute, got %q", key)
	}

	var kind icon.Kind
	switch parts[0] {
	case "back":
		kind = icon.BackFolder
	case "front":
		kind = icon.FrontFolder
	case "user":
		kind = icon.UserImage
	default:
		return fmt.Errorf("unknown layer %q (want back, front or user)", parts[0])
	}
	layer := stack.ByKind(kind)

	switch parts[1] {
	case "color":
		if _, err := icon.ParseHex(value); err != nil {
			return err
		}
		layer.Color = &icon.Color{Kind: icon.FillSolid, Primary: value}
		layer.UseColor = true
	case "opacity":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("opacity must be an integer: %w", err)
		}
		return layer.SetOpacity(n)
	case "scale":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("scale must be a number: %w", err)
		}
		return layer.SetScale(f)
	case "visible":
		layer.Visible = value == "true"
	default:
		return fmt.Errorf("unknown attribute %q", parts[1])
	}
	return nil
}
