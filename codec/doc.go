// Copyright 2025 The Rivaas Authors
// Copyright 2025 Company.info B.V.
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

// Package codec provides the encoders and decoders used for route files and
// command output.
//
// Codecs are looked up by [Type] in a process-wide registry. JSON, YAML and
// TOML are registered at init; [TypeFromPath] maps a file extension to one
// of them.
//
//	t, ok := codec.TypeFromPath("routes.yaml")
//	dec, err := codec.GetDecoder(t)
//
//	var doc map[string]any
//	err = dec.Decode(data, &doc)
//
// Additional formats can be registered with [RegisterEncoder] and
// [RegisterDecoder].
package codec
