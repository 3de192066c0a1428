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

// Package serializer renders host snapshots as JSON, YAML or a flat table and
// reads them back.
//
// # Writing
//
// Marshal renders a value in one format:
//
//	out, err := serializer.Marshal(serializer.FormatYAML, snap)
//
// NewFileWriterOrStdout picks the destination from a location string:
//
//	w, err := serializer.NewFileWriterOrStdout(serializer.FormatJSON, "cm://monitoring/host-snapshot")
//	if err != nil {
//	    return err
//	}
//	if c, ok := w.(serializer.Closer); ok {
//	    defer c.Close()
//	}
//	err = w.Serialize(ctx, snap)
//
// An empty location or "-" is stdout, cm://namespace/name is a Kubernetes
// ConfigMap written with server-side apply, and anything else is a file.
//
// Table output flattens the JSON form of a value into sorted FIELD/VALUE
// rows such as "hardware.disk_usage.[0].total". It cannot be read back.
//
// # Reading
//
// FromFile loads a file, an http(s) URL or a ConfigMap into a typed value:
//
//	snap, err := serializer.FromFile[snapshotter.Snapshot]("host.yaml")
//
// The format of files and URLs follows the extension (.json, .yaml, .yml).
// A ConfigMap records the format it was written in.
package serializer
