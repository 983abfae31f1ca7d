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

// Package ident converts protobuf names into Rust identifiers.
package ident

import (
	"strings"
	"unicode"
)

// Rust keywords that cannot name an item. Most can be written as raw
// identifiers; the ones in the second group cannot, and get a trailing
// underscore instead.
var (
	keywords = map[string]bool{
		"abstract": true, "as": true, "async": true, "await": true, "become": true,
		"box": true, "break": true, "const": true, "continue": true, "do": true,
		"dyn": true, "else": true, "enum": true, "extern": true, "false": true,
		"final": true, "fn": true, "for": true, "if": true, "impl": true,
		"in": true, "let": true, "loop": true, "macro": true, "match": true,
		"mod": true, "move": true, "mut": true, "override": true, "priv": true,
		"pub": true, "ref": true, "return": true, "static": true, "struct": true,
		"trait": true, "true": true, "try": true, "type": true, "typeof": true,
		"unsafe": true, "unsized": true, "use": true, "virtual": true,
		"where": true, "while": true, "yield": true,
	}
	nonRaw = map[string]bool{
		"_": true, "crate": true, "self": true, "Self": true, "super": true,
	}
)

// Escape makes name usable as a Rust identifier.
func Escape(name string) string {
	switch {
	case nonRaw[name]:
		return name + "_"
	case keywords[name]:
		return "r#" + name
	}
	return name
}

// Snake converts a protobuf name to snake_case, the way Rust modules and
// fields are named. The result is not escaped.
func Snake(name string) string {
	var b strings.Builder
	for i, word := range words(name) {
		if i > 0 {
			b.WriteRune('_')
		}
		for _, r := range word {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// UpperCamel converts a protobuf name to UpperCamelCase, the way Rust types
// and enum variants are named. The result is not escaped.
func UpperCamel(name string) string {
	var b strings.Builder
	for _, word := range words(name) {
		first := true
		for _, r := range word {
			b.WriteRune(setCase(r, first))
			first = false
		}
	}
	return b.String()
}

func setCase(r rune, upper bool) rune {
	if upper {
		return unicode.ToUpper(r)
	}
	return unicode.ToLower(r)
}

// Module returns the escaped snake_case module name for a package segment
// or message name.
func Module(name string) string {
	return Escape(Snake(name))
}

// Field returns the escaped snake_case name for a field or oneof.
func Field(name string) string {
	return Escape(Snake(name))
}

// Type returns the escaped UpperCamelCase type name for a message, enum
// or oneof.
func Type(name string) string {
	return Escape(UpperCamel(name))
}

// words breaks name into words at underscores, before a capital that follows
// a lower case letter or digit, and before the last capital of an acronym
// that is followed by a lower case letter ("HTTPServer" is "HTTP", "Server").
func words(name string) []string {
	var (
		out []string
		cur []rune
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	runes := []rune(name)
	for i, r := range runes {
		if r == '_' || r == '-' || r == '.' {
			flush()
			continue
		}
		if len(cur) > 0 {
			prev := cur[len(cur)-1]
			switch {
			case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
				flush()
			case unicode.IsUpper(r) && unicode.IsUpper(prev) &&
				i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return out
}
