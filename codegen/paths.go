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

package codegen

import (
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/bufbuild/prostgen/options"
)

// matcher is a list of protobuf path patterns.
//
// A pattern of "." matches everything. A pattern starting with a dot is
// fully qualified, and matches that element and everything nested in it.
// Any other pattern matches elements whose fully-qualified name ends with
// it.
type matcher []string

func (m matcher) match(fqn string) bool {
	for _, pattern := range m {
		if matchPath(pattern, fqn) {
			return true
		}
	}
	return false
}

func matchPath(pattern, fqn string) bool {
	switch {
	case pattern == "" || pattern == ".":
		return true
	case strings.HasPrefix(pattern, "."):
		return fqn == pattern || strings.HasPrefix(fqn, pattern+".")
	default:
		return strings.HasSuffix(fqn, "."+pattern)
	}
}

// attributes returns the values of every pair matching fqn, in order.
func attributes(pairs []options.Pair, fqn string) []string {
	var attrs []string
	for _, pair := range pairs {
		if matchPath(pair.Path, fqn) {
			attrs = append(attrs, pair.Value)
		}
	}
	return attrs
}

// fqn returns the fully-qualified name of d with its leading dot.
func fqn(d protoreflect.Descriptor) string {
	return "." + string(d.FullName())
}
