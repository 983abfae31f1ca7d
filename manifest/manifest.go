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

// Package manifest renders the Cargo manifest of a generated crate, with
// one feature per protobuf package.
//
// The manifest is produced from a user-supplied template: the listing of
// features replaces the placeholder [Placeholder] wherever it occurs. A
// feature enables the features of the packages its package depends on, so
// turning on one package pulls in everything it needs to compile.
package manifest

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/bufbuild/prostgen/depgraph"
)

const (
	// FileName is the name of the rendered manifest in the output.
	FileName = "Cargo.toml"
	// Placeholder is the template token replaced by the feature listing.
	Placeholder = "{{ features }}"
)

// Feature is one cargo feature declaration.
type Feature struct {
	Name string
	// Names of the features this one enables.
	Deps []string
}

// String renders f as a line of a TOML [features] table.
func (f Feature) String() string {
	deps := make([]string, len(f.Deps))
	for i, dep := range f.Deps {
		deps[i] = fmt.Sprintf("%q", dep)
	}
	return fmt.Sprintf("%q = [%s]", f.Name, strings.Join(deps, ", "))
}

// ReadFileFunc reads the named file, like [os.ReadFile].
type ReadFileFunc func(name string) ([]byte, error)

// Load reads the template at path.
func Load(read ReadFileFunc, path string) (string, error) {
	data, err := read(path)
	if err != nil {
		return "", fmt.Errorf("failed to read manifest template %q: %w", path, err)
	}
	return string(data), nil
}

// Features returns the feature declarations for the packages of g, plus
// extra, sorted by name.
//
// The package-less module has no feature, so the empty package is left out
// both as a feature and as a dependency.
func Features(g *depgraph.Graph, extra ...Feature) []Feature {
	features := make([]Feature, 0, g.Len()+len(extra))
	for _, pkg := range g.Packages() {
		if pkg == "" {
			continue
		}
		features = append(features, Feature{
			Name: pkg,
			Deps: slices.DeleteFunc(g.Deps(pkg), func(dep string) bool { return dep == "" }),
		})
	}
	features = append(features, extra...)
	slices.SortStableFunc(features, func(a, b Feature) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return features
}

// Render substitutes the features of g, plus extra, into template.
//
// A template without the placeholder is returned as is.
func Render(template string, g *depgraph.Graph, extra ...Feature) string {
	features := Features(g, extra...)
	lines := make([]string, len(features))
	for i, f := range features {
		lines[i] = f.String()
	}
	return strings.ReplaceAll(template, Placeholder, strings.Join(lines, "\n"))
}
