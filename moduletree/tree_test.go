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

package moduletree_test

import (
	"strings"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/prostgen/moduletree"
)

func text(s string) string {
	return strings.TrimPrefix(dedent.Dedent(s), "\n")
}

func build(pkgs ...string) *moduletree.Node {
	root := new(moduletree.Node)
	for _, pkg := range pkgs {
		var path []string
		if pkg != "" {
			path = strings.Split(pkg, ".")
		}
		root.Insert(path)
	}
	return root
}

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pkgs     []string
		features bool
		want     string
	}{
		{
			name: "empty",
			want: "// @generated\n",
		},
		{
			name: "siblings",
			pkgs: []string{"a.c", "a.b"},
			want: text(`
				// @generated
				pub mod a {
				    pub mod b {
				        include!("a.b.rs");
				        // @@protoc_insertion_point(a.b)
				    }
				    pub mod c {
				        include!("a.c.rs");
				        // @@protoc_insertion_point(a.c)
				    }
				}
			`),
		},
		{
			name: "prefix package",
			pkgs: []string{"a.b", "a"},
			want: text(`
				// @generated
				pub mod a {
				    include!("a.rs");
				    // @@protoc_insertion_point(a)
				    pub mod b {
				        include!("a.b.rs");
				        // @@protoc_insertion_point(a.b)
				    }
				}
			`),
		},
		{
			name:     "features",
			pkgs:     []string{"foo.v1", ""},
			features: true,
			want: text(`
				// @generated
				include!("_.rs");
				// @@protoc_insertion_point()
				pub mod foo {
				    pub mod v1 {
				        #[cfg(feature = "foo.v1")]
				        include!("foo.v1.rs");
				        // @@protoc_insertion_point(foo.v1)
				    }
				}
			`),
		},
		{
			name: "keywords",
			pkgs: []string{"type.self"},
			want: text(`
				// @generated
				pub mod r#type {
				    pub mod self_ {
				        include!("type.self.rs");
				        // @@protoc_insertion_point(type.self)
				    }
				}
			`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := moduletree.Render(build(tt.pkgs...), moduletree.RenderOptions{Features: tt.features})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInsertIdempotent(t *testing.T) {
	t.Parallel()

	once := moduletree.Render(build("a.b"), moduletree.RenderOptions{})
	twice := moduletree.Render(build("a.b", "a.b"), moduletree.RenderOptions{})
	assert.Equal(t, once, twice)
}

func TestRenderDeterministic(t *testing.T) {
	t.Parallel()

	pkgs := []string{"z.y", "a.b.c", "m", "a.b", "a.a", "z"}
	want := moduletree.Render(build(pkgs...), moduletree.RenderOptions{})
	for i := range pkgs {
		rotated := append(append([]string(nil), pkgs[i:]...), pkgs[:i]...)
		assert.Equal(t, want, moduletree.Render(build(rotated...), moduletree.RenderOptions{}))
	}
}

func TestTreeShape(t *testing.T) {
	t.Parallel()

	root := build("a.b", "a.c")
	assert.Equal(t, []string{"a"}, root.Segments())
	_, ok := root.Leaf()
	assert.False(t, ok)

	a := root.Child("a")
	require.NotNil(t, a)
	_, ok = a.Leaf()
	assert.False(t, ok)
	assert.Equal(t, []string{"b", "c"}, a.Segments())

	for _, seg := range []string{"b", "c"} {
		child := a.Child(seg)
		require.NotNil(t, child)
		pkg, ok := child.Leaf()
		assert.True(t, ok)
		assert.Equal(t, "a."+seg, pkg)
		assert.Empty(t, child.Segments())
	}
	assert.Nil(t, a.Child("d"))
}

func TestRenderFileName(t *testing.T) {
	t.Parallel()

	got := moduletree.Render(build("", "x"), moduletree.RenderOptions{
		FileName: func(pkg string) string {
			if pkg == "" {
				return "root.rs"
			}
			return "gen/" + pkg + ".rs"
		},
	})
	assert.Contains(t, got, "\ninclude!(\"root.rs\");\n")
	assert.Contains(t, got, "    include!(\"gen/x.rs\");\n")
}

func TestDump(t *testing.T) {
	t.Parallel()

	dump := build("a.b", "a", "c").Dump()
	t.Log(dump)
	assert.Contains(t, dump, "crate")
	assert.Contains(t, dump, `b ("a.b")`)
	assert.Contains(t, dump, `a ("a")`)
}
