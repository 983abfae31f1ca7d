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
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// printer accumulates indented lines of Rust.
type printer struct {
	out    strings.Builder
	indent int
}

func (p *printer) line(format string, args ...any) {
	for range p.indent {
		p.out.WriteString("    ")
	}
	fmt.Fprintf(&p.out, format, args...)
	p.out.WriteByte('\n')
}

// open prints a line ending a block header and indents what follows.
func (p *printer) open(format string, args ...any) {
	p.line(format, args...)
	p.indent++
}

func (p *printer) close(text string) {
	p.indent--
	p.line("%s", text)
}

func (p *printer) String() string {
	return p.out.String()
}

// comments prints the leading and trailing comments of d as doc comments.
func (g *generator) comments(p *printer, d protoreflect.Descriptor) {
	if g.noComments.match(fqn(d)) {
		return
	}
	loc := d.ParentFile().SourceLocations().ByDescriptor(d)
	for _, text := range []string{loc.LeadingComments, loc.TrailingComments} {
		text = strings.TrimSuffix(text, "\n")
		if text == "" {
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			p.line("///%s", strings.TrimRight(line, " \t"))
		}
	}
}

// attrs prints user-supplied attributes.
func (p *printer) attrs(attrs []string) {
	for _, attr := range attrs {
		p.line("%s", attr)
	}
}
