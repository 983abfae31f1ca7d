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
	"unicode"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/bufbuild/prostgen/internal/ident"
)

// enum prints ed as a Rust enum, along with its name conversions.
//
// Rust enums cannot repeat a discriminant, so aliases (values reusing an
// earlier number) are left out.
func (g *generator) enum(p *printer, ed protoreflect.EnumDescriptor) {
	variants := g.variants(ed)
	values := canonicalValues(ed)

	g.comments(p, ed)
	p.line("#[derive(Clone, Copy, Debug, PartialEq, Eq, Hash, PartialOrd, Ord, ::prost::Enumeration)]")
	p.line("#[repr(i32)]")
	p.attrs(attributes(g.cfg.TypeAttributes, fqn(ed)))
	name := ident.Type(string(ed.Name()))
	p.open("pub enum %s {", name)
	for _, v := range values {
		g.comments(p, v)
		p.line("%s = %d,", variants[v.Number()], v.Number())
	}
	p.close("}")

	p.open("impl %s {", name)
	p.line("/// String value of the enum field names used in the ProtoBuf definition.")
	p.line("///")
	p.line("/// The values are not transformed in any way and thus are considered stable")
	p.line("/// (if the ProtoBuf definition does not change) and safe for programmatic use.")
	p.open("pub fn as_str_name(&self) -> &'static str {")
	p.open("match self {")
	for _, v := range values {
		p.line("Self::%s => %q,", variants[v.Number()], v.Name())
	}
	p.close("}")
	p.close("}")
	p.line("/// Creates an enum from field names used in the ProtoBuf definition.")
	p.open("pub fn from_str_name(value: &str) -> ::core::option::Option<Self> {")
	p.open("match value {")
	for _, v := range values {
		p.line("%q => Some(Self::%s),", v.Name(), variants[v.Number()])
	}
	p.line("_ => None,")
	p.close("}")
	p.close("}")
	p.close("}")
}

// canonicalValues returns the values of ed, minus aliases.
func canonicalValues(ed protoreflect.EnumDescriptor) []protoreflect.EnumValueDescriptor {
	var (
		values []protoreflect.EnumValueDescriptor
		seen   = make(map[protoreflect.EnumNumber]bool)
	)
	for i := range ed.Values().Len() {
		v := ed.Values().Get(i)
		if !seen[v.Number()] {
			seen[v.Number()] = true
			values = append(values, v)
		}
	}
	return values
}

// variants maps the numbers of ed to Rust variant names.
//
// Variant names are the UpperCamelCase value names, with the enum's own
// name stripped from the front unless RetainEnumPrefix is set. The prefix is
// kept where stripping it would leave nothing or a leading digit.
func (g *generator) variants(ed protoreflect.EnumDescriptor) map[protoreflect.EnumNumber]string {
	prefix := ident.UpperCamel(string(ed.Name()))
	variants := make(map[protoreflect.EnumNumber]string)
	for _, v := range canonicalValues(ed) {
		name := ident.UpperCamel(string(v.Name()))
		if !g.cfg.RetainEnumPrefix {
			if rest, ok := strings.CutPrefix(name, prefix); ok && rest != "" && !unicode.IsDigit(rune(rest[0])) {
				name = rest
			}
		}
		variants[v.Number()] = ident.Escape(name)
	}
	return variants
}
