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

package collector

import "context"

// Collector gathers one section of a host snapshot.
type Collector[T any] interface {
	Collect(ctx context.Context) (T, error)
}

// CollectorFunc adapts a function to the Collector interface.
type CollectorFunc[T any] func(ctx context.Context) (T, error)

// Collect calls f(ctx).
func (f CollectorFunc[T]) Collect(ctx context.Context) (T, error) {
	return f(ctx)
}
