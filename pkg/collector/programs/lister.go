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

package programs

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/NVIDIA/hostprobe/pkg/collector/file"
	"github.com/NVIDIA/hostprobe/pkg/defaults"
)

const (
	dpkgStatusInstalled = "ii"
	appSuffix           = ".app"
	applicationsDir     = "/Applications"
)

// Lister returns the names of installed programs. Implementations never fail:
// an unavailable source yields an empty list.
type Lister interface {
	List(ctx context.Context) []string
}

// NewLister selects the listing strategy for an OS and platform family.
func NewLister(goos, family string) Lister {
	switch {
	case goos == "darwin":
		return &ApplicationsLister{}
	case strings.EqualFold(family, "debian"):
		return &DpkgLister{}
	default:
		return NoopLister{}
	}
}

// DpkgLister lists packages known to dpkg in the installed state.
type DpkgLister struct {
	// Run returns the output of "dpkg -l"; defaults to running the command.
	Run func(ctx context.Context) ([]byte, error)
}

// List returns the package names of every "ii" row of "dpkg -l".
func (d *DpkgLister) List(ctx context.Context) []string {
	run := d.Run
	if run == nil {
		run = runDpkg
	}

	out, err := run(ctx)
	if err != nil {
		slog.Debug("dpkg listing unavailable", slog.String("error", err.Error()))
		return []string{}
	}

	return ParseDpkg(out)
}

// ParseDpkg extracts installed package names from "dpkg -l" output.
//
//	ii  python3  3.8.10  amd64  interactive high-level object-oriented language
func ParseDpkg(out []byte) []string {
	lines, err := file.NewParser(
		file.WithSkipComments(false),
		file.WithMaxSize(64<<20),
	).ParseLines(out)
	if err != nil {
		slog.Debug("unparsable dpkg output", slog.String("error", err.Error()))
		return []string{}
	}

	names := make([]string, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] != dpkgStatusInstalled {
			continue
		}
		names = append(names, fields[1])
	}
	return names
}

func runDpkg(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.ProgramListTimeout)
	defer cancel()

	return exec.CommandContext(ctx, "dpkg", "-l").Output()
}

// ApplicationsLister lists application bundles in the macOS Applications folder.
type ApplicationsLister struct {
	// FS is the Applications folder; defaults to /Applications.
	FS fs.FS
}

// List returns bundle names with the ".app" suffix removed, sorted.
func (a *ApplicationsLister) List(_ context.Context) []string {
	fsys := a.FS
	if fsys == nil {
		fsys = os.DirFS(applicationsDir)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		slog.Debug("applications folder unavailable", slog.String("error", err.Error()))
		return []string{}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), appSuffix)
		if !ok || name == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NoopLister is used on platforms without a supported package source.
type NoopLister struct{}

// List always returns an empty list.
func (NoopLister) List(context.Context) []string {
	return []string{}
}
