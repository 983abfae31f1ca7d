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

package moduletree

import (
	"fmt"
	"strings"

	"github.com/bufbuild/prostgen/internal/ident"
)

const indent = "    "

// RenderOptions controls [Render].
type RenderOptions struct {
	// If set, each include is guarded by a cargo feature named after its
	// package. The module of files without a package is never guarded.
	Features bool

	// FileName maps a package to the name of the file holding its module.
	// If nil, the package name plus ".rs" is used, and "_.rs" for the
	// package-less module.
	FileName func(pkg string) string
}

// Render produces the text of an include file for the tree rooted at root.
//
// Each package's module is pulled in with include! at the node where its
// package name ends, and every child segment becomes a nested pub mod. The
// output only depends on the set of inserted paths.
func Render(root *Node, opts RenderOptions) string {
	r := renderer{opts: opts}
	r.WriteString("// @generated\n")
	r.node(root, 0)
	return r.String()
}

type renderer struct {
	strings.Builder
	opts RenderOptions
}

func (r *renderer) node(n *Node, depth int) {
	if pkg, ok := n.Leaf(); ok {
		if r.opts.Features && pkg != "" {
			r.line(depth, fmt.Sprintf("#[cfg(feature = %q)]", pkg))
		}
		r.line(depth, fmt.Sprintf("include!(%q);", r.fileName(pkg)))
		r.line(depth, fmt.Sprintf("// @@protoc_insertion_point(%s)", pkg))
	}
	n.children.Scan(func(seg string, child *Node) bool {
		r.line(depth, fmt.Sprintf("pub mod %s {", ident.Module(seg)))
		r.node(child, depth+1)
		r.line(depth, "}")
		return true
	})
}

func (r *renderer) line(depth int, text string) {
	for range depth {
		r.WriteString(indent)
	}
	r.WriteString(text)
	r.WriteByte('\n')
}

func (r *renderer) fileName(pkg string) string {
	if r.opts.FileName != nil {
		return r.opts.FileName(pkg)
	}
	if pkg == "" {
		return "_.rs"
	}
	return pkg + ".rs"
}
