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
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/bufbuild/prostgen/internal/ident"
)

// Rust types and prost attribute names of the scalar kinds that need no
// configuration.
var scalars = map[protoreflect.Kind]struct{ attr, rust string }{
	protoreflect.DoubleKind:   {"double", "f64"},
	protoreflect.FloatKind:    {"float", "f32"},
	protoreflect.Int32Kind:    {"int32", "i32"},
	protoreflect.Int64Kind:    {"int64", "i64"},
	protoreflect.Uint32Kind:   {"uint32", "u32"},
	protoreflect.Uint64Kind:   {"uint64", "u64"},
	protoreflect.Sint32Kind:   {"sint32", "i32"},
	protoreflect.Sint64Kind:   {"sint64", "i64"},
	protoreflect.Fixed32Kind:  {"fixed32", "u32"},
	protoreflect.Fixed64Kind:  {"fixed64", "u64"},
	protoreflect.Sfixed32Kind: {"sfixed32", "i32"},
	protoreflect.Sfixed64Kind: {"sfixed64", "i64"},
	protoreflect.BoolKind:     {"bool", "bool"},
	protoreflect.StringKind:   {"string", "::prost::alloc::string::String"},
}

const (
	rustVec    = "::prost::alloc::vec::Vec<%s>"
	rustOption = "::core::option::Option<%s>"
	rustBox    = "::prost::alloc::boxed::Box<%s>"
	rustBytes  = "::prost::bytes::Bytes"
	rustHash   = "::std::collections::HashMap<%s, %s>"
	rustBTree  = "::prost::alloc::collections::BTreeMap<%s, %s>"
)

// message prints the struct for md, followed by a module holding its nested
// types and oneofs, if it has any. mod is the module md is generated in.
func (g *generator) message(p *printer, md protoreflect.MessageDescriptor, mod []string) error {
	if md.IsMapEntry() {
		return nil
	}
	name := ident.Type(string(md.Name()))
	nested := slices.Concat(mod, []string{ident.Module(string(md.Name()))})

	g.comments(p, md)
	p.line("#[derive(Clone, PartialEq, ::prost::Message)]")
	p.attrs(attributes(g.cfg.TypeAttributes, fqn(md)))
	fields := md.Fields()
	if fields.Len() == 0 {
		p.line("pub struct %s {}", name)
	} else {
		p.open("pub struct %s {", name)
		for i := range fields.Len() {
			fd := fields.Get(i)
			if oo := fd.ContainingOneof(); oo != nil && !oo.IsSynthetic() {
				if oo.Fields().Get(0).FullName() == fd.FullName() {
					g.oneofField(p, oo, mod, nested)
				}
				continue
			}
			if err := g.field(p, md, fd, mod); err != nil {
				return err
			}
		}
		p.close("}")
	}

	var (
		msgs   []protoreflect.MessageDescriptor
		oneofs []protoreflect.OneofDescriptor
	)
	for i := range md.Messages().Len() {
		if m := md.Messages().Get(i); !m.IsMapEntry() {
			msgs = append(msgs, m)
		}
	}
	for i := range md.Oneofs().Len() {
		if oo := md.Oneofs().Get(i); !oo.IsSynthetic() {
			oneofs = append(oneofs, oo)
		}
	}
	enums := md.Enums()
	if len(msgs) == 0 && len(oneofs) == 0 && enums.Len() == 0 {
		return nil
	}

	p.line("/// Nested message and enum types in `%s`.", md.Name())
	p.open("pub mod %s {", nested[len(nested)-1])
	for _, m := range msgs {
		if err := g.message(p, m, nested); err != nil {
			return err
		}
	}
	for i := range enums.Len() {
		g.enum(p, enums.Get(i))
	}
	for _, oo := range oneofs {
		g.oneof(p, md, oo, nested)
	}
	p.close("}")
	return nil
}

// field prints one struct field of md that is not part of a oneof.
func (g *generator) field(p *printer, md protoreflect.MessageDescriptor, fd protoreflect.FieldDescriptor, mod []string) error {
	var (
		attr []string
		typ  string
	)
	switch {
	case fd.IsMap():
		attr, typ = g.mapField(fd, mod)
	case fd.Message() != nil:
		kind, t := g.valueType(fd, mod)
		attr = []string{kind}
		if fd.IsList() {
			attr = append(attr, "repeated")
			typ = fmt.Sprintf(rustVec, t)
			break
		}
		if fd.Cardinality() == protoreflect.Required {
			attr = append(attr, "required")
		} else {
			attr = append(attr, "optional")
		}
		if recursive(fd.Message(), md) {
			attr = append(attr, "boxed")
			t = fmt.Sprintf(rustBox, t)
		}
		typ = fmt.Sprintf(rustOption, t)
	default:
		kind, t := g.valueType(fd, mod)
		attr = []string{kind}
		switch {
		case fd.IsList():
			attr = append(attr, "repeated")
			if packed := packedAttr(fd); packed != "" {
				attr = append(attr, packed)
			}
			typ = fmt.Sprintf(rustVec, t)
		case fd.Cardinality() == protoreflect.Required:
			attr = append(attr, "required")
			typ = t
		case fd.HasPresence():
			attr = append(attr, "optional")
			typ = fmt.Sprintf(rustOption, t)
		default:
			typ = t
		}
	}
	attr = append(attr, fmt.Sprintf("tag = %q", strconv.Itoa(int(fd.Number()))))
	if fd.HasDefault() {
		def, err := g.defaultValue(fd)
		if err != nil {
			return err
		}
		if def != "" {
			attr = append(attr, fmt.Sprintf("default = %q", def))
		}
	}

	g.comments(p, fd)
	p.line("#[prost(%s)]", strings.Join(attr, ", "))
	p.attrs(attributes(g.cfg.FieldAttributes, fqn(fd)))
	p.line("pub %s: %s,", ident.Field(string(fd.Name())), typ)
	return nil
}

// valueType returns the prost attribute and the Rust type of a single value
// of fd, ignoring its cardinality.
func (g *generator) valueType(fd protoreflect.FieldDescriptor, mod []string) (attr, typ string) {
	switch fd.Kind() {
	case protoreflect.MessageKind:
		return "message", g.typePath(fd.Message(), mod)
	case protoreflect.GroupKind:
		return "group", g.typePath(fd.Message(), mod)
	case protoreflect.EnumKind:
		return fmt.Sprintf("enumeration = %q", g.typePath(fd.Enum(), mod)), "i32"
	case protoreflect.BytesKind:
		if g.bytes.match(fqn(fd)) {
			return `bytes = "bytes"`, rustBytes
		}
		return `bytes = "vec"`, fmt.Sprintf(rustVec, "u8")
	}
	s := scalars[fd.Kind()]
	return s.attr, s.rust
}

// mapField returns the prost attribute and Rust type of the map field fd.
func (g *generator) mapField(fd protoreflect.FieldDescriptor, mod []string) (attr []string, typ string) {
	key, val := fd.MapKey(), fd.MapValue()
	keyAttr, keyType := g.mapValue(key, mod)
	valAttr, valType := g.mapValue(val, mod)

	kind, rust := "map", rustHash
	if g.btreeMaps.match(fqn(fd)) {
		kind, rust = "btree_map", rustBTree
	}
	return []string{fmt.Sprintf("%s = %q", kind, keyAttr+", "+valAttr)}, fmt.Sprintf(rust, keyType, valType)
}

func (g *generator) mapValue(fd protoreflect.FieldDescriptor, mod []string) (attr, typ string) {
	switch fd.Kind() {
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return "message", g.typePath(fd.Message(), mod)
	case protoreflect.EnumKind:
		return fmt.Sprintf("enumeration(%s)", g.typePath(fd.Enum(), mod)), "i32"
	case protoreflect.BytesKind:
		return "bytes", fmt.Sprintf(rustVec, "u8")
	}
	s := scalars[fd.Kind()]
	return s.attr, s.rust
}

// packedAttr returns the packed setting of a repeated scalar field when it
// differs from the default of its syntax.
func packedAttr(fd protoreflect.FieldDescriptor) string {
	switch fd.Kind() {
	case protoreflect.StringKind, protoreflect.BytesKind,
		protoreflect.MessageKind, protoreflect.GroupKind:
		return ""
	}
	proto2 := fd.ParentFile().Syntax() == protoreflect.Proto2
	switch {
	case proto2 && fd.IsPacked():
		return `packed = "true"`
	case !proto2 && !fd.IsPacked():
		return `packed = "false"`
	}
	return ""
}

// defaultValue renders the explicit default of fd the way prost expects it
// in a default attribute. Bytes defaults are not supported and yield "".
func (g *generator) defaultValue(fd protoreflect.FieldDescriptor) (string, error) {
	def := fd.Default()
	switch fd.Kind() {
	case protoreflect.EnumKind:
		ev := fd.DefaultEnumValue()
		if ev == nil {
			return "", fmt.Errorf("%s: default enum value not found", fd.FullName())
		}
		return g.variants(fd.Enum())[ev.Number()], nil
	case protoreflect.BytesKind:
		return "", nil
	case protoreflect.StringKind:
		return def.String(), nil
	case protoreflect.BoolKind:
		return strconv.FormatBool(def.Bool()), nil
	case protoreflect.FloatKind, protoreflect.DoubleKind:
		f := def.Float()
		switch {
		case math.IsInf(f, 1):
			return "inf", nil
		case math.IsInf(f, -1):
			return "-inf", nil
		case math.IsNaN(f):
			return "nan", nil
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case protoreflect.Uint32Kind, protoreflect.Uint64Kind,
		protoreflect.Fixed32Kind, protoreflect.Fixed64Kind:
		return strconv.FormatUint(def.Uint(), 10), nil
	}
	return strconv.FormatInt(def.Int(), 10), nil
}

// oneofField prints the struct field holding the oneof oo, whose enum lives
// in the module nested.
func (g *generator) oneofField(p *printer, oo protoreflect.OneofDescriptor, mod, nested []string) {
	path := relativePath(mod, nested, ident.Type(string(oo.Name())))
	fields := oo.Fields()
	tags := make([]string, fields.Len())
	for i := range fields.Len() {
		tags[i] = strconv.Itoa(int(fields.Get(i).Number()))
	}
	p.line("#[prost(oneof = %q, tags = %q)]", path, strings.Join(tags, ", "))
	p.attrs(attributes(g.cfg.FieldAttributes, fqn(oo)))
	p.line("pub %s: %s,", ident.Field(string(oo.Name())), fmt.Sprintf(rustOption, path))
}

// oneof prints the enum for the oneof oo of md, in the module nested.
func (g *generator) oneof(p *printer, md protoreflect.MessageDescriptor, oo protoreflect.OneofDescriptor, nested []string) {
	g.comments(p, oo)
	p.line("#[derive(Clone, PartialEq, ::prost::Oneof)]")
	p.attrs(attributes(g.cfg.TypeAttributes, fqn(oo)))
	p.open("pub enum %s {", ident.Type(string(oo.Name())))
	fields := oo.Fields()
	for i := range fields.Len() {
		fd := fields.Get(i)
		attr, typ := g.valueType(fd, nested)
		if fd.Message() != nil && recursive(fd.Message(), md) {
			attr += ", boxed"
			typ = fmt.Sprintf(rustBox, typ)
		}
		g.comments(p, fd)
		p.line("#[prost(%s, tag = %q)]", attr, strconv.Itoa(int(fd.Number())))
		p.attrs(attributes(g.cfg.FieldAttributes, fqn(fd)))
		p.line("%s(%s),", ident.Type(string(fd.Name())), typ)
	}
	p.close("}")
}
