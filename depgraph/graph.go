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

// Package depgraph computes the dependencies between protobuf packages.
//
// A package may be spread over many files, each with its own imports, so
// the graph is the union of the file-level imports of every file sharing a
// package, translated to the packages those imports declare.
package depgraph

import (
	"github.com/tidwall/btree"
)

// File is the subset of a file descriptor needed to build a [Graph].
// *descriptorpb.FileDescriptorProto implements it.
type File interface {
	GetName() string
	GetPackage() string
	GetDependency() []string
}

// Graph maps each package to the set of other packages it depends on.
// Packages and their dependencies are kept in lexicographic order.
//
// A package never depends on itself. The zero value is an empty graph,
// ready to use.
type Graph struct {
	deps btree.Map[string, *btree.Set[string]]
}

// Build computes the package graph of files.
//
// Imports of files that are not among files are ignored, as are imports of
// files from the importing file's own package. Every package in files gets
// an entry, even if it has no dependencies.
func Build[F File](files []F) *Graph {
	owners := make(map[string]string, len(files))
	for _, f := range files {
		owners[f.GetName()] = f.GetPackage()
	}

	g := new(Graph)
	for _, f := range files {
		var deps []string
		for _, dep := range f.GetDependency() {
			if pkg, ok := owners[dep]; ok {
				deps = append(deps, pkg)
			}
		}
		g.Add(f.GetPackage(), deps...)
	}
	return g
}

// Add records that pkg depends on deps, merging with what is already known
// about pkg. Any occurrence of pkg among deps is dropped.
func (g *Graph) Add(pkg string, deps ...string) {
	set, ok := g.deps.Get(pkg)
	if !ok {
		set = new(btree.Set[string])
		g.deps.Set(pkg, set)
	}
	for _, dep := range deps {
		if dep != pkg {
			set.Insert(dep)
		}
	}
}

// Len returns the number of packages in the graph.
func (g *Graph) Len() int {
	return g.deps.Len()
}

// Packages returns every package in the graph, sorted.
func (g *Graph) Packages() []string {
	return g.deps.Keys()
}

// Deps returns the sorted dependencies of pkg. It returns nil for a package
// that is not in the graph or has no dependencies.
func (g *Graph) Deps(pkg string) []string {
	set, ok := g.deps.Get(pkg)
	if !ok || set.Len() == 0 {
		return nil
	}
	return set.Keys()
}

// Has reports whether pkg is in the graph.
func (g *Graph) Has(pkg string) bool {
	_, ok := g.deps.Get(pkg)
	return ok
}
