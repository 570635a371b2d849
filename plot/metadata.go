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
	"encoding/binary"
	"encoding/xml"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

// Keys of the provenance metadata embedded in output files.
const (
	MetadataCmd     = "cmd"
	MetadataTitle   = "title"
	MetadataCaption = "caption"
)

// Metadata describes how an output file was produced.
type Metadata struct {
	Cmd     string // command line that produced the file
	Title   string
	Caption string
}

// entries returns the metadata as ordered key/value pairs.
func (m Metadata) entries() [][2]string {
	return [][2]string{
		{MetadataCmd, m.Cmd},
		{MetadataTitle, m.Title},
		{MetadataCaption, m.Caption},
	}
}

// Map returns the metadata keyed by the metadata key names.
func (m Metadata) Map() map[string]string {
	res := map[string]string{}
	for _, e := range m.entries() {
		res[e[0]] = e[1]
	}
	return res
}

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// errNotPNG is returned for data without PNG signature.
var errNotPNG = errors.New("not a PNG file")

// writeChunk writes a PNG chunk with its length and CRC.
func writeChunk(w io.Writer, kind string, data []byte) error {
	var header [8]byte
	binary.BigEndian.PutUint32(header[:4], uint32(len(data)))
	copy(header[4:], kind)
	crc := crc32.NewIEEE()
	crc.Write(header[4:])
	crc.Write(data)
	var footer [4]byte
	binary.BigEndian.PutUint32(footer[:], crc.Sum32())
	for _, b := range [][]byte{header[:], data, footer[:]} {
		if _, err := w.Write(b); err != nil {
			return err
		}
	}
	return nil
}

// isLatin1Printable reports whether s can be stored in a tEXt chunk.
func isLatin1Printable(s string) bool {
	for _, r := range s {
		if r > 0xff || (r < 0x20 && r != '\n') {
			return false
		}
	}
	return true
}

// textChunk encodes a key/value pair as tEXt, or as iTXt for text outside Latin-1.
func textChunk(key, value string) (string, []byte) {
	if isLatin1Printable(value) {
		var b bytes.Buffer
		b.WriteString(key)
		b.WriteByte(0)
		for _, r := range value {
			b.WriteByte(byte(r))
		}
		return "tEXt", b.Bytes()
	}
	// keyword, null, compression flag, compression method, empty language
	// tag and translated keyword, each null terminated, then UTF-8 text
	var b bytes.Buffer
	b.WriteString(key)
	b.Write([]byte{0, 0, 0, 0, 0})
	b.WriteString(value)
	return "iTXt", b.Bytes()
}

// embedPNGMetadata inserts text chunks right after the IHDR chunk of png.
func embedPNGMetadata(png []byte, md Metadata) ([]byte, error) {
	if !bytes.HasPrefix(png, pngSignature) {
		return nil, errNotPNG
	}
	// signature, then IHDR: length (4), type (4), 13 data bytes, crc (4)
	ihdrEnd := len(pngSignature) + 4 + 4 + 13 + 4
	if len(png) < ihdrEnd || string(png[len(pngSignature)+4:len(pngSignature)+8]) != "IHDR" {
		return nil, fmt.Errorf("PNG does not start with an IHDR chunk")
	}
	var out bytes.Buffer
	out.Write(png[:ihdrEnd])
	for _, e := range md.entries() {
		if e[1] == "" {
			continue
		}
		kind, data := textChunk(e[0], e[1])
		if err := writeChunk(&out, kind, data); err != nil {
			return nil, err
		}
	}
	out.Write(png[ihdrEnd:])
	return out.Bytes(), nil
}

// readPNGMetadata collects all tEXt and iTXt chunks of a PNG stream.
func readPNGMetadata(data []byte) (map[string]string, error) {
	if !bytes.HasPrefix(data, pngSignature) {
		return nil, errNotPNG
	}
	res := map[string]string{}
	rest := data[len(pngSignature):]
	for len(rest) >= 12 {
		length := int(binary.BigEndian.Uint32(rest[:4]))
		kind := string(rest[4:8])
		if len(rest) < 12+length {
			return nil, fmt.Errorf("truncated %v chunk", kind)
		}
		body := rest[8 : 8+length]
		if crc32.ChecksumIEEE(rest[4:8+length]) != binary.BigEndian.Uint32(rest[8+length:12+length]) {
			return nil, fmt.Errorf("corrupt %v chunk", kind)
		}
		switch kind {
		case "tEXt":
			if key, value, found := bytes.Cut(body, []byte{0}); found {
				runes := make([]rune, len(value))
				for i, b := range value {
					runes[i] = rune(b)
				}
				res[string(key)] = string(runes)
			}
		case "iTXt":
			if key, value, found := bytes.Cut(body, []byte{0}); found && len(value) >= 2 && value[0] == 0 {
				// skip compression method, language tag and translated keyword
				fields := bytes.SplitN(value[2:], []byte{0}, 3)
				if len(fields) == 3 {
					res[string(key)] = string(fields[2])
				}
			}
		case "IEND":
			return res, nil
		}
		rest = rest[12+length:]
	}
	return res, nil
}

// svgMetadata is the metadata element inserted into SVG output.
type svgMetadata struct {
	XMLName xml.Name   `xml:"metadata"`
	ID      string     `xml:"id,attr"`
	Entries []svgEntry `xml:"entry"`
}

type svgEntry struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

const svgMetadataID = "provenance"

// embedSVGMetadata inserts a title and a metadata element after the opening svg tag.
func embedSVGMetadata(svg []byte, md Metadata) ([]byte, error) {
	start := bytes.Index(svg, []byte("<svg"))
	if start < 0 {
		return nil, fmt.Errorf("not an SVG document")
	}
	end := bytes.IndexByte(svg[start:], '>')
	if end < 0 {
		return nil, fmt.Errorf("unterminated svg element")
	}
	end += start + 1

	elem := svgMetadata{ID: svgMetadataID}
	for _, e := range md.entries() {
		elem.Entries = append(elem.Entries, svgEntry{Key: e[0], Value: e[1]})
	}
	encoded, err := xml.Marshal(elem)
	if err != nil {
		return nil, err
	}
	var title bytes.Buffer
	if md.Title != "" {
		title.WriteString("<title>")
		if err := xml.EscapeText(&title, []byte(md.Title)); err != nil {
			return nil, err
		}
		title.WriteString("</title>\n")
	}

	var out bytes.Buffer
	out.Write(svg[:end])
	out.WriteString("\n")
	out.Write(title.Bytes())
	out.Write(encoded)
	out.WriteString("\n")
	out.Write(svg[end:])
	return out.Bytes(), nil
}

// readSVGMetadata extracts the provenance metadata element of an SVG document.
func readSVGMetadata(data []byte) (map[string]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("no provenance metadata found")
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "metadata" {
			continue
		}
		var elem svgMetadata
		if err := dec.DecodeElement(&elem, &start); err != nil {
			return nil, err
		}
		if elem.ID != svgMetadataID {
			continue
		}
		res := map[string]string{}
		for _, e := range elem.Entries {
			res[e.Key] = e.Value
		}
		return res, nil
	}
}
