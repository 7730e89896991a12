// Copyright 2025 The Rivaas Authors
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

package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanPlaceholders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		want    []placeholder
	}{
		{
			name:    "no placeholders",
			pattern: "/static/path",
			want:    nil,
		},
		{
			name:    "single",
			pattern: "/user/{id}",
			want:    []placeholder{{Name: "id", Start: 6, End: 10}},
		},
		{
			name:    "important",
			pattern: "/{!slug}",
			want:    []placeholder{{Name: "slug", Important: true, Start: 1, End: 8}},
		},
		{
			name:    "adjacent",
			pattern: "{a}{b}",
			want: []placeholder{
				{Name: "a", Start: 0, End: 3},
				{Name: "b", Start: 3, End: 6},
			},
		},
		{
			name:    "doubled braces",
			pattern: "/{{id}}",
			want:    []placeholder{{Name: "id", Start: 2, End: 6}},
		},
		{
			name:    "non-ASCII name bytes",
			pattern: "/{café}",
			want:    []placeholder{{Name: "café", Start: 1, End: 8}},
		},
		{
			name:    "malformed placeholders are text",
			pattern: "/{}/{a-b}/{!}/{ab",
			want:    nil,
		},
		{
			name:    "double important marker",
			pattern: "/{!!x}",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, scanPlaceholders(tt.pattern))
		})
	}
}

func TestStripPlaceholders(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "-", stripPlaceholders("{a}-{b}"))
	assert.Equal(t, "", stripPlaceholders("{a}{!b}"))
	assert.Equal(t, "/x/", stripPlaceholders("/x/{id}"))
	assert.Equal(t, "{}", stripPlaceholders("{}"))
}

func TestLastAndFirstChar(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", lastChar("", true))
	assert.Equal(t, "é", lastChar("/é", true))
	assert.Equal(t, "\xa9", lastChar("/é", false))
	assert.Equal(t, "é", firstChar("é/", true))
	assert.Equal(t, "\xc3", firstChar("é/", false))
	assert.Equal(t, "", firstChar("", false))
}

func TestHasHighByte(t *testing.T) {
	t.Parallel()

	assert.False(t, hasHighByte("/plain/ascii"))
	assert.True(t, hasHighByte("/café"))
	assert.True(t, hasHighByte("\xff"))
}
