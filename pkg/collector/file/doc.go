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

// Package file provides a small line-oriented parser for host files and
// captured command output.
//
// Paths are resolved against an fs.FS, the host root by default, so probes
// can be tested against an in-memory tree:
//
//	p := file.NewParser(file.WithFS(fstest.MapFS{
//	    "sys/devices/system/cpu/cpu0/cpufreq/scaling_cur_freq": {Data: []byte("2400000\n")},
//	}))
//	khz, err := p.GetUint("/sys/devices/system/cpu/cpu0/cpufreq/scaling_cur_freq")
//
// Content larger than the configured maximum (1MB by default) or not valid
// UTF-8 is rejected. Empty lines are always dropped; comment lines starting
// with "#" are dropped unless WithSkipComments(false) is given.
package file
