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

// Package moduletree arranges generated modules into the tree implied by
// their dotted package names, and renders that tree as a single include
// file with one nested Rust module per package segment.
package moduletree

import (
	"fmt"
	"strings"

	"github.com/ddddddO/gtree"
	"github.com/tidwall/btree"
)

// Node is one package segment in the module tree. The root node has no
// segment of its own.
//
// The zero value is an empty tree, ready to use.
type Node struct {
	children btree.Map[string, *Node]

	// Set when some package ends at this node.
	leaf   string
	isLeaf bool
}

// Insert adds the module at path to the tree, marking the node for its
// last segment as the leaf for the package strings.Join(path, "."). An
// empty path marks the root, which is where modules of files without a
// package go.
//
// Inserting the same path twice has no further effect.
func (n *Node) Insert(path []string) {
	cur := n
	for _, seg := range path {
		child, ok := cur.children.Get(seg)
		if !ok {
			child = new(Node)
			cur.children.Set(seg, child)
		}
		cur = child
	}
	cur.leaf = strings.Join(path, ".")
	cur.isLeaf = true
}

// Leaf returns the package whose module sits at this node, if any.
func (n *Node) Leaf() (pkg string, ok bool) {
	return n.leaf, n.isLeaf
}

// Child returns the child for segment, or nil.
func (n *Node) Child(segment string) *Node {
	child, _ := n.children.Get(segment)
	return child
}

// Segments returns the segments of n's children in sorted order.
func (n *Node) Segments() []string {
	return n.children.Keys()
}

// Dump renders the tree in a human-readable form, for debugging.
func (n *Node) Dump() string {
	root := gtree.NewRoot(n.label("crate"))
	n.dump(root)

	var out strings.Builder
	if err := gtree.OutputFromRoot(&out, root); err != nil {
		return fmt.Sprintf("<moduletree: %v>", err)
	}
	return out.String()
}

func (n *Node) dump(g *gtree.Node) {
	n.children.Scan(func(seg string, child *Node) bool {
		child.dump(g.Add(child.label(seg)))
		return true
	})
}

func (n *Node) label(seg string) string {
	if n.isLeaf {
		return fmt.Sprintf("%s (%q)", seg, n.leaf)
	}
	return seg
}
