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

	"github.com/bufbuild/prostgen/internal/ident"
)

// Rust types that prost-types substitutes for the wrapper messages.
var wellKnownPrimitives = map[protoreflect.FullName]string{
	"google.protobuf.BoolValue":   "bool",
	"google.protobuf.BytesValue":  "::prost::alloc::vec::Vec<u8>",
	"google.protobuf.DoubleValue": "f64",
	"google.protobuf.Empty":       "()",
	"google.protobuf.FloatValue":  "f32",
	"google.protobuf.Int32Value":  "i32",
	"google.protobuf.Int64Value":  "i64",
	"google.protobuf.StringValue": "::prost::alloc::string::String",
	"google.protobuf.UInt32Value": "u32",
	"google.protobuf.UInt64Value": "u64",
}

// modulePath returns the Rust module, from the crate root, in which the
// message or enum d is generated: one module per package segment, then one
// per enclosing message.
func modulePath(d protoreflect.Descriptor) []string {
	var mod []string
	if pkg := d.ParentFile().Package(); pkg != "" {
		for _, seg := range strings.Split(string(pkg), ".") {
			mod = append(mod, ident.Module(seg))
		}
	}
	var enclosing []string
	for parent := d.Parent(); parent != nil; parent = parent.Parent() {
		if _, ok := parent.(protoreflect.MessageDescriptor); !ok {
			break
		}
		enclosing = append(enclosing, ident.Module(string(parent.Name())))
	}
	for i := len(enclosing) - 1; i >= 0; i-- {
		mod = append(mod, enclosing[i])
	}
	return mod
}

// typePath returns the Rust path of the message or enum d, as seen from
// code in the module from.
func (g *generator) typePath(d protoreflect.Descriptor, from []string) string {
	name := fqn(d)
	if prefix, rust, ok := g.externs.Get(name); ok {
		if g.prostTypes && prefix == ".google.protobuf" {
			if prim, ok := wellKnownPrimitives[d.FullName()]; ok {
				return prim
			}
		}
		return externPath(name, prefix, rust)
	}
	return relativePath(from, modulePath(d), ident.Type(string(d.Name())))
}

// externPath maps name, provided by an extern path from prefix to rust, to
// its Rust path: intermediate segments become modules and the last one the
// type.
func externPath(name, prefix, rust string) string {
	suffix := strings.TrimPrefix(strings.TrimPrefix(name, prefix), ".")
	if suffix == "" {
		return rust
	}
	segs := strings.Split(suffix, ".")
	parts := []string{rust}
	for _, seg := range segs[:len(segs)-1] {
		parts = append(parts, ident.Module(seg))
	}
	parts = append(parts, ident.Type(segs[len(segs)-1]))
	return strings.Join(parts, "::")
}

// relativePath returns the path to item in module to, from module from.
func relativePath(from, to []string, item string) string {
	common := 0
	for common < len(from) && common < len(to) && from[common] == to[common] {
		common++
	}
	var parts []string
	for range len(from) - common {
		parts = append(parts, "super")
	}
	parts = append(parts, to[common:]...)
	parts = append(parts, item)
	return strings.Join(parts, "::")
}

// recursive reports whether the message msg can reach target by following
// singular message fields. Such fields must be boxed to give the Rust type
// a finite size.
func recursive(msg, target protoreflect.MessageDescriptor) bool {
	seen := make(map[protoreflect.FullName]bool)
	var walk func(protoreflect.MessageDescriptor) bool
	walk = func(m protoreflect.MessageDescriptor) bool {
		if m.FullName() == target.FullName() {
			return true
		}
		if seen[m.FullName()] {
			return false
		}
		seen[m.FullName()] = true
		fields := m.Fields()
		for i := range fields.Len() {
			f := fields.Get(i)
			if f.Message() != nil && !f.IsList() && !f.IsMap() && walk(f.Message()) {
				return true
			}
		}
		return false
	}
	return walk(msg)
}
