// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package trie_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/prostgen/internal/trie"
)

func TestTrie(t *testing.T) {
	t.Parallel()

	tests := []struct {
		data []string
		keys []string
		want []string
	}{
		{
			data: []string{".foo", ".foo.bar", ".baz"},
			keys: []string{".foo", ".foo.bar", ".foo.bar.Baz", ".foobar", ".baz.x", ".qux", "foo.bar"},
			want: []string{".foo", ".foo.bar", ".foo.bar", "", ".baz", "", ".foo.bar"},
		},
		{
			data: []string{".", ".google.protobuf"},
			keys: []string{".google.protobuf.Any", ".google.type.Date", "."},
			want: []string{".google.protobuf", ".", "."},
		},
	}

	for _, test := range tests {
		t.Run("", func(t *testing.T) {
			t.Parallel()

			tr := new(trie.Trie[int])
			for i, s := range test.data {
				tr.Insert(s, i)
			}
			assert.Equal(t, len(test.data), tr.Len())

			for i, key := range test.keys {
				prefix, _, ok := tr.Get(key)
				assert.Equal(t, test.want[i] != "", ok, "#%d", i)
				assert.Equal(t, test.want[i], prefix, "#%d", i)
			}
		})
	}
}

func TestTrieValues(t *testing.T) {
	t.Parallel()

	var tr trie.Trie[string]
	tr.Insert(".google.protobuf", "::prost_types")
	tr.Insert(".google.protobuf", "::pbjson_types")
	assert.Equal(t, 1, tr.Len())

	prefix, v, ok := tr.Get(".google.protobuf.Timestamp")
	assert.True(t, ok)
	assert.Equal(t, ".google.protobuf", prefix)
	assert.Equal(t, "::pbjson_types", v)

	_, v, ok = tr.Get(".google")
	assert.False(t, ok)
	assert.Empty(t, v)
}
