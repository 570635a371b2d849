// Copyright 2024 Fantom Foundation
// This file is part of prior-plot, the prior sampling and plotting tool.
//
// prior-plot is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// prior-plot is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with prior-plot. If not, see <http://www.gnu.org/licenses/>.

package plot

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Supported output formats, selected by file extension.
const (
	FormatPNG  = ".png"
	FormatSVG  = ".svg"
	FormatHTML = ".html"
)

// pngDPI is the resolution of rendered PNG files.
const pngDPI = 150

// Formats returns the supported output file extensions.
func Formats() []string {
	return []string{FormatPNG, FormatSVG, FormatHTML}
}

// formatOf returns the output format of path.
func formatOf(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range Formats() {
		if ext == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported output format %q of %v; use one of %v", ext, path, strings.Join(Formats(), ", "))
}

// CheckOutputFile verifies the format of path before any work is done.
func CheckOutputFile(path string) error {
	_, err := formatOf(path)
	return err
}

// Render encodes the figure with its metadata in the format selected by path.
func Render(fig *Figure, path string, md Metadata) ([]byte, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	width, height := fig.Size()
	var buf bytes.Buffer
	switch format {
	case FormatPNG:
		img := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(pngDPI))
		fig.Draw(draw.New(img))
		if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
			return nil, err
		}
		return embedPNGMetadata(buf.Bytes(), md)
	case FormatSVG:
		img := vgsvg.New(width, height)
		fig.Draw(draw.New(img))
		if _, err := img.WriteTo(&buf); err != nil {
			return nil, err
		}
		return embedSVGMetadata(buf.Bytes(), md)
	default:
		if err := renderHTML(&buf, fig, md); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

// SaveWithMetadata renders the figure and atomically replaces path with it,
// so a failure never leaves a partially written file behind.
func SaveWithMetadata(fig *Figure, path string, md Metadata) error {
	data, err := Render(fig, path, md)
	if err != nil {
		return err
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write %v; %w", path, err)
	}
	return nil
}

// LoadMetadata reads the provenance metadata of a PNG or SVG file.
func LoadMetadata(path string) (map[string]string, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatPNG:
		return readPNGMetadata(data)
	case FormatSVG:
		return readSVGMetadata(data)
	default:
		return readHTMLMetadata(data)
	}
}
