// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package file

import (
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Options for configuring the Parser.
type Option func(*Parser)

// Parser reads small text files, such as sysfs attributes, and command
// output with customizable settings.
type Parser struct {
	fsys         fs.FS
	delimiter    string
	maxSize      int
	skipComments bool
}

// WithFS sets the filesystem paths are resolved against.
// Default is the host root ("/"). Absolute paths are made relative to it.
func WithFS(fsys fs.FS) Option {
	return func(p *Parser) {
		p.fsys = fsys
	}
}

// WithMaxSize sets the maximum content size in bytes.
// Default is 1MB.
func WithMaxSize(size int) Option {
	return func(p *Parser) {
		p.maxSize = size
	}
}

// WithSkipComments sets whether lines starting with "#" are dropped.
// Default is true.
func WithSkipComments(skip bool) Option {
	return func(p *Parser) {
		p.skipComments = skip
	}
}

// NewParser creates a new parser with the provided options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		fsys:         os.DirFS("/"),
		delimiter:    "\n",
		maxSize:      1 << 20, // 1MB default
		skipComments: true,
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ReadFile returns the raw content of path after size and UTF-8 validation.
func (p *Parser) ReadFile(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	b, err := fs.ReadFile(p.fsys, strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	if err := p.validate(b); err != nil {
		return nil, fmt.Errorf("file %q: %w", path, err)
	}

	return b, nil
}

// GetLines reads the file at path and returns its non-empty lines.
func (p *Parser) GetLines(path string) ([]string, error) {
	b, err := p.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.split(b), nil
}

// ParseLines splits already captured content, such as command output, into
// non-empty lines using the same rules as GetLines.
func (p *Parser) ParseLines(b []byte) ([]string, error) {
	if err := p.validate(b); err != nil {
		return nil, err
	}
	return p.split(b), nil
}

// GetUint reads a file holding a single unsigned integer, as sysfs attributes do.
func (p *Parser) GetUint(path string) (uint64, error) {
	lines, err := p.GetLines(path)
	if err != nil {
		return 0, err
	}
	if len(lines) == 0 {
		return 0, fmt.Errorf("file %q is empty", path)
	}

	v, err := strconv.ParseUint(lines[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("file %q does not hold an unsigned integer: %w", path, err)
	}
	return v, nil
}

func (p *Parser) validate(b []byte) error {
	if len(b) > p.maxSize {
		return fmt.Errorf("content exceeds maximum size of %d bytes", p.maxSize)
	}
	if !utf8.Valid(b) {
		return fmt.Errorf("content is not valid UTF-8")
	}
	return nil
}

func (p *Parser) split(b []byte) []string {
	parts := strings.Split(string(b), p.delimiter)

	result := make([]string, 0, len(parts))
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		if p.skipComments && strings.HasPrefix(clean, "#") {
			continue
		}
		result = append(result, clean)
	}

	return result
}
