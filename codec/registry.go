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
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
)

var (
	// ErrEncoderNotFound indicates that no encoder is registered for a type.
	ErrEncoderNotFound = errors.New("encoder not found for type")

	// ErrDecoderNotFound indicates that no decoder is registered for a type.
	ErrDecoderNotFound = errors.New("decoder not found for type")
)

// Registry holds the registered encoders and decoders.
type Registry struct {
	mu       sync.RWMutex
	encoders map[Type]Encoder
	decoders map[Type]Decoder
}

var registry = &Registry{
	encoders: make(map[Type]Encoder),
	decoders: make(map[Type]Decoder),
}

// RegisterEncoder registers an encoder for the given type, replacing any
// previous one.
func RegisterEncoder(name Type, encoder Encoder) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.encoders[name] = encoder
}

// RegisterDecoder registers a decoder for the given type, replacing any
// previous one.
func RegisterDecoder(name Type, decoder Decoder) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.decoders[name] = decoder
}

// GetEncoder retrieves the encoder registered for the given type.
func GetEncoder(name Type) (Encoder, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	encoder, exists := registry.encoders[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrEncoderNotFound, name)
	}

	return encoder, nil
}

// GetDecoder retrieves the decoder registered for the given type.
func GetDecoder(name Type) (Decoder, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	decoder, exists := registry.decoders[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrDecoderNotFound, name)
	}

	return decoder, nil
}

// EncoderTypes returns the registered encoder types, sorted.
func EncoderTypes() []Type {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	types := make([]Type, 0, len(registry.encoders))
	for t := range registry.encoders {
		types = append(types, t)
	}
	slices.Sort(types)

	return types
}

// DecoderForPath returns the codec type and decoder matching the extension
// of path.
func DecoderForPath(path string) (Type, Decoder, error) {
	typ, ok := TypeFromPath(path)
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrDecoderNotFound, filepath.Ext(path))
	}

	decoder, err := GetDecoder(typ)
	if err != nil {
		return "", nil, err
	}

	return typ, decoder, nil
}
