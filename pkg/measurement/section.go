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

package measurement

import (
	"encoding/json"
	"errors"

	"gopkg.in/yaml.v3"
)

// KeyError is the only key of a failed section's serialized form.
const KeyError = "error"

const unknownError = "unknown error"

// Section is the outcome of one probe: either Ok with a payload, or Failed
// with a reason. A Failed section serializes as {"error": "<reason>"} and an
// Ok section serializes as its payload, so consumers can tell
// "probe failed" apart from "legitimately empty".
type Section[T any] struct {
	Value T
	Err   string
}

// Ok creates a successful section holding v.
func Ok[T any](v T) Section[T] {
	return Section[T]{Value: v}
}

// Failed creates a failed section carrying err's message.
func Failed[T any](err error) Section[T] {
	msg := unknownError
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return Section[T]{Err: msg}
}

// IsFailed reports whether the probe behind this section failed.
func (s Section[T]) IsFailed() bool {
	return s.Err != ""
}

// Get returns the payload and true for an Ok section, or the zero value and false.
func (s Section[T]) Get() (T, bool) {
	if s.IsFailed() {
		var zero T
		return zero, false
	}
	return s.Value, true
}

// Error returns the failure reason as an error, or nil for an Ok section.
func (s Section[T]) Error() error {
	if !s.IsFailed() {
		return nil
	}
	return errors.New(s.Err)
}

type errorMarker struct {
	Error string `json:"error" yaml:"error"`
}

// MarshalJSON writes the payload, or the error marker for a failed section.
func (s Section[T]) MarshalJSON() ([]byte, error) {
	if s.IsFailed() {
		return json.Marshal(errorMarker{Error: s.Err})
	}
	return json.Marshal(s.Value)
}

// UnmarshalJSON reads either an error marker or a payload.
// An object with the single key "error" holding a string is a failed section.
func (s *Section[T]) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err == nil && len(obj) == 1 {
		if raw, ok := obj[KeyError]; ok {
			var msg string
			if err := json.Unmarshal(raw, &msg); err == nil {
				if msg == "" {
					msg = unknownError
				}
				*s = Section[T]{Err: msg}
				return nil
			}
		}
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Section[T]{Value: v}
	return nil
}

// MarshalYAML writes the payload, or the error marker for a failed section.
func (s Section[T]) MarshalYAML() (any, error) {
	if s.IsFailed() {
		return errorMarker{Error: s.Err}, nil
	}
	return s.Value, nil
}

// UnmarshalYAML reads either an error marker or a payload.
func (s *Section[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode && len(node.Content) == 2 &&
		node.Content[0].Value == KeyError && node.Content[1].Kind == yaml.ScalarNode {
		msg := node.Content[1].Value
		if msg == "" {
			msg = unknownError
		}
		*s = Section[T]{Err: msg}
		return nil
	}

	var v T
	if err := node.Decode(&v); err != nil {
		return err
	}
	*s = Section[T]{Value: v}
	return nil
}
