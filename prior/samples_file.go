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

package prior

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
)

// WriteSamples writes samples as CSV with a header row. Files ending in .gz
// are gzip compressed, files ending in .bz2 are bzip2 compressed.
func WriteSamples(path string, s *Samples) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create samples file %v; %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	var w io.WriteCloser
	switch {
	case strings.HasSuffix(path, ".gz"):
		w = gzip.NewWriter(file)
	case strings.HasSuffix(path, ".bz2"):
		if w, err = bzip2.NewWriter(file, &bzip2.WriterConfig{Level: bzip2.BestCompression}); err != nil {
			return err
		}
	default:
		w = nopCloser{file}
	}
	if err := EncodeSamples(w, s); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// ReadSamples reads a samples file written by WriteSamples.
func ReadSamples(path string) (*Samples, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open samples file %v; %w", path, err)
	}
	defer file.Close()

	var r io.Reader = file
	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	case strings.HasSuffix(path, ".bz2"):
		bz, err := bzip2.NewReader(file, &bzip2.ReaderConfig{})
		if err != nil {
			return nil, err
		}
		defer bz.Close()
		r = bz
	}
	return DecodeSamples(r)
}

// EncodeSamples writes samples as CSV to w.
func EncodeSamples(w io.Writer, s *Samples) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.Params); err != nil {
		return err
	}
	row := make([]string, len(s.Params))
	for i := 0; i < s.Len(); i++ {
		for j, p := range s.Params {
			row[j] = strconv.FormatFloat(s.Columns[p][i], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeSamples reads CSV samples with a header row from r.
func DecodeSamples(r io.Reader) (*Samples, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read samples header; %w", err)
	}
	s := NewSamples(header, 0)
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for j, p := range header {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid value %q for %v", line, record[j], p)
			}
			s.Columns[p] = append(s.Columns[p], v)
		}
	}
	return s, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
