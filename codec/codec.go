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

package codec

import (
	"path/filepath"
	"strings"
)

// Type identifies a codec.
type Type string

// Encoder converts Go values into encoded bytes.
// Implementations must be safe for concurrent use.
type Encoder interface {
	Encode(v any) ([]byte, error)
}

// Decoder converts encoded bytes into the value pointed to by v.
// Implementations must be safe for concurrent use.
type Decoder interface {
	Decode(data []byte, v any) error
}

// extensions maps file extensions to built-in codec types.
var extensions = map[string]Type{
	".json": TypeJSON,
	".yaml": TypeYAML,
	".yml":  TypeYAML,
	".toml": TypeTOML,
}

// TypeFromPath returns the codec type matching the extension of path.
//
// Example:
//
//	codec.TypeFromPath("routes.yml")  // TypeYAML, true
//	codec.TypeFromPath("routes.ini")  // "", false
func TypeFromPath(path string) (Type, bool) {
	t, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return t, ok
}
