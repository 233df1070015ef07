// Zaparoo Trigram
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Trigram.
//
// Zaparoo Trigram is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Trigram is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Trigram.  If not, see <http://www.gnu.org/licenses/>.

package helpers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ZaparooProject/go-trigram/pkg/trigram"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// StdinPath is the input path that means "read standard input".
const StdinPath = "-"

const maxLineSize = 1024 * 1024

var ErrNoInput = errors.New("no input path given")

// OpenInput opens path on fs, or returns stdin when path is StdinPath. The
// returned reader decodes UTF-16 files that start with a byte order mark and
// strips a UTF-8 byte order mark, so every caller sees plain UTF-8.
func OpenInput(fs afero.Fs, path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "" {
		return nil, ErrNoInput
	}

	var rc io.ReadCloser
	if path == StdinPath {
		rc = io.NopCloser(stdin)
	} else {
		f, err := fs.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		rc = f
	}

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return &decodedReader{
		Reader: transform.NewReader(rc, decoder),
		closer: rc,
	}, nil
}

type decodedReader struct {
	io.Reader
	closer io.Closer
}

func (r *decodedReader) Close() error {
	//nolint:wrapcheck // passthrough close
	return r.closer.Close()
}

// ReadLines returns one entry per non-blank line. Trailing carriage returns
// are dropped so files with CRLF endings read the same.
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lines: %w", err)
	}
	return lines, nil
}

// ReadPairs parses a CSV with "left" and "right" header columns.
func ReadPairs(r io.Reader) ([]trigram.Pair, error) {
	var pairs []trigram.Pair
	if err := gocsv.Unmarshal(r, &pairs); err != nil {
		return nil, fmt.Errorf("failed to parse pairs csv: %w", err)
	}
	log.Debug().Int("pairs", len(pairs)).Msg("read pairs from csv")
	return pairs, nil
}

// ReadLinesFile opens path and reads it with ReadLines.
func ReadLinesFile(fs afero.Fs, path string, stdin io.Reader) ([]string, error) {
	rc, err := OpenInput(fs, path, stdin)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close input")
		}
	}()
	return ReadLines(rc)
}

// ReadPairsFile opens path and reads it with ReadPairs.
func ReadPairsFile(fs afero.Fs, path string, stdin io.Reader) ([]trigram.Pair, error) {
	rc, err := OpenInput(fs, path, stdin)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close input")
		}
	}()
	return ReadPairs(rc)
}
