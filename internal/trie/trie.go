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

// Package trie provides a map keyed by fully-qualified protobuf names that
// answers longest-prefix queries.
package trie

import (
	"strings"
)

// Trie maps dotted protobuf paths, like ".google.protobuf", to values.
// Lookups return the entry for the longest prefix of the query, where
// prefixes are matched on whole name segments: ".foo" is a prefix of
// ".foo.bar" but not of ".foobar".
//
// The zero value is empty and ready to use.
type Trie[V any] struct {
	root node[V]
	len  int
}

type node[V any] struct {
	children map[string]*node[V]
	value    V
	set      bool
}

// Len returns the number of entries in the trie.
func (t *Trie[V]) Len() int {
	return t.len
}

// Insert adds path to the trie, replacing any value already stored for it.
// The path "." (or "") is the root, which is a prefix of every query.
func (t *Trie[V]) Insert(path string, value V) {
	n := &t.root
	for _, seg := range segments(path) {
		if n.children == nil {
			n.children = make(map[string]*node[V])
		}
		child, ok := n.children[seg]
		if !ok {
			child = new(node[V])
			n.children[seg] = child
		}
		n = child
	}
	if !n.set {
		t.len++
	}
	n.value = value
	n.set = true
}

// Get returns the value stored for the longest prefix of path, along with
// that prefix in its canonical ".a.b" form. ok is false if no entry is a
// prefix of path.
func (t *Trie[V]) Get(path string) (prefix string, value V, ok bool) {
	segs := segments(path)
	n := &t.root
	depth := -1
	if n.set {
		depth, value = 0, n.value
	}
	for i, seg := range segs {
		n = n.children[seg]
		if n == nil {
			break
		}
		if n.set {
			depth, value = i+1, n.value
		}
	}
	if depth < 0 {
		return "", value, false
	}
	return "." + strings.Join(segs[:depth], "."), value, true
}

// segments splits a dotted path into its name components. A leading dot is
// optional.
func segments(path string) []string {
	path = strings.TrimPrefix(path, ".")
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}
