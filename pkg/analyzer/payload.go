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

package analyzer

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/language"

	"github.com/NVIDIA/hostprobe/pkg/defaults"
	"github.com/NVIDIA/hostprobe/pkg/snapshotter"
)

const (
	// SummaryNote marks a payload that was reduced to a Summary.
	SummaryNote = "Data summarized due to size limits"

	maxSummaryString     = 256
	maxSummaryPartitions = 64

	contentSeparator = "\n\n"
)

// ErrCeilingTooSmall is returned when not even an empty summary fits under the ceiling.
var ErrCeilingTooSmall = errors.New("payload ceiling too small for summary")

// Payload is what gets sent for analysis: the instruction and either the
// full snapshot or its Summary.
type Payload struct {
	Prompt     string
	Data       any
	Summarized bool
}

// Summary is the reduced form of a snapshot that did not fit under the ceiling.
type Summary struct {
	OS            *string       `json:"os"`
	OSVersion     *string       `json:"os_version"`
	CPUCount      *int          `json:"cpu_count"`
	MemoryTotal   *uint64       `json:"memory_total"`
	MemoryPercent *float64      `json:"memory_percent"`
	DiskUsage     []SummaryDisk `json:"disk_usage"`
	Note          string        `json:"note"`
}

// SummaryDisk is the usage of one partition in a Summary.
type SummaryDisk struct {
	Mountpoint string `json:"mountpoint"`
	Total      uint64 `json:"total"`
	Used       uint64 `json:"used"`
}

// Shaper builds payloads. The zero value uses defaults.PayloadCeiling and
// English prompts.
type Shaper struct {
	Ceiling  int
	Language language.Tag
}

// Shape builds a payload with the default Shaper.
func Shape(snap *snapshotter.Snapshot, prompt string) (*Payload, error) {
	return Shaper{}.Shape(snap, prompt)
}

// Shape serializes snap and, when it is larger than the ceiling, replaces it
// with a Summary. An empty prompt selects the default prompt for the
// shaper's language.
func (s Shaper) Shape(snap *snapshotter.Snapshot, prompt string) (*Payload, error) {
	if snap == nil {
		return nil, errors.New("snapshot is required")
	}
	if prompt == "" {
		prompt = DefaultPrompt(s.language())
	}

	data, err := encodeData(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	if len(data) <= s.ceiling() {
		return &Payload{Prompt: prompt, Data: snap}, nil
	}

	sum := Summarize(snap)
	if err := s.fit(sum, len(prompt)+len(contentSeparator)); err != nil {
		return nil, err
	}
	return &Payload{Prompt: prompt, Data: sum, Summarized: true}, nil
}

// fit drops trailing partitions, then the OS version and name, until the
// encoded summary plus overhead bytes is within the ceiling.
func (s Shaper) fit(sum *Summary, overhead int) error {
	for {
		data, err := encodeData(sum)
		if err != nil {
			return fmt.Errorf("failed to serialize summary: %w", err)
		}
		if overhead+len(data) <= s.ceiling() {
			return nil
		}
		switch {
		case len(sum.DiskUsage) > 0:
			sum.DiskUsage = sum.DiskUsage[:len(sum.DiskUsage)-1]
		case sum.OSVersion != nil:
			sum.OSVersion = nil
		case sum.OS != nil:
			sum.OS = nil
		default:
			return fmt.Errorf("%w: %d bytes", ErrCeilingTooSmall, s.ceiling())
		}
	}
}

// Content renders the message body: the prompt, a blank line, then the
// indented JSON form of the data.
func (p *Payload) Content() (string, error) {
	data, err := encodeData(p.Data)
	if err != nil {
		return "", fmt.Errorf("failed to serialize payload data: %w", err)
	}
	return p.Prompt + contentSeparator + string(data), nil
}

// Summarize reduces snap to OS identity, CPU count, memory and disk usage.
// Failed sections leave their summary fields null.
func Summarize(snap *snapshotter.Snapshot) *Summary {
	sum := &Summary{
		DiskUsage: []SummaryDisk{},
		Note:      SummaryNote,
	}

	if sys, ok := snap.System.Get(); ok {
		sum.OS = truncatePtr(sys.OS)
		sum.OSVersion = truncatePtr(sys.OSVersion)
	}

	if hw, ok := snap.Hardware.Get(); ok {
		sum.CPUCount = hw.CPUCount
		if hw.Memory != nil {
			total, percent := hw.Memory.Total, hw.Memory.Percent
			sum.MemoryTotal = &total
			sum.MemoryPercent = &percent
		}
		for i, d := range hw.DiskUsage {
			if i == maxSummaryPartitions {
				break
			}
			sum.DiskUsage = append(sum.DiskUsage, SummaryDisk{
				Mountpoint: truncate(d.Mountpoint),
				Total:      d.Total,
				Used:       d.Used,
			})
		}
	}

	return sum
}

func (s Shaper) ceiling() int {
	if s.Ceiling > 0 {
		return s.Ceiling
	}
	return defaults.PayloadCeiling
}

func (s Shaper) language() language.Tag {
	if s.Language == language.Und {
		return SupportedLanguages[0]
	}
	return s.Language
}

// encodeData is the single encoding used both to measure and to send data.
func encodeData(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func truncatePtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := truncate(*s)
	return &t
}

// truncate cuts s to maxSummaryString bytes without splitting a rune.
func truncate(s string) string {
	if len(s) <= maxSummaryString {
		return s
	}
	cut := maxSummaryString
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
