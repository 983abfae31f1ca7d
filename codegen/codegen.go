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

// Package codegen translates protobuf descriptors into Rust source for the
// prost runtime.
//
// The plugin only relies on the [Translator] contract: descriptors and a
// [options.Config] go in, one [Module] per protobuf package comes out. [Rust]
// is the translator used by default. It covers messages, enums, oneofs, maps
// and nested types; services are not generated.
package codegen

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/bufbuild/prostgen/internal/ident"
	"github.com/bufbuild/prostgen/internal/trie"
	"github.com/bufbuild/prostgen/options"
)

// Module is the generated code for one protobuf package.
type Module struct {
	// Path holds the segments of the package name. It is empty for the
	// module of files without a package.
	Path []string
	// Package is the dotted package name.
	Package string
	// Content is the Rust source of the module.
	Content string
}

// FileName returns the output file name of m: its package followed by
// ".rs", or cfg's default package filename for the package-less module.
func (m Module) FileName(cfg options.Config) string {
	return FileName(cfg, m.Package)
}

// FileName returns the output file name for the module of pkg.
func FileName(cfg options.Config, pkg string) string {
	if pkg == "" {
		return cfg.PackageFilename() + ".rs"
	}
	return pkg + ".rs"
}

// Translator turns file descriptors into Rust modules.
//
// files holds every file of a CodeGeneratorRequest, dependencies first.
// Implementations must not retain or modify cfg's slices or files. The
// returned modules must have distinct packages.
type Translator interface {
	Translate(cfg options.Config, files []*descriptorpb.FileDescriptorProto) ([]Module, error)
}

// TranslatorFunc adapts a function to a [Translator].
type TranslatorFunc func(cfg options.Config, files []*descriptorpb.FileDescriptorProto) ([]Module, error)

// Translate implements [Translator].
func (f TranslatorFunc) Translate(cfg options.Config, files []*descriptorpb.FileDescriptorProto) ([]Module, error) {
	return f(cfg, files)
}

// Rust is the default [Translator], producing prost-style Rust.
//
// Every file whose package is not provided by an extern path is generated,
// with all files of a package going into one module. Modules are returned
// sorted by package.
type Rust struct{}

var _ Translator = Rust{}

// Translate implements [Translator].
func (Rust) Translate(cfg options.Config, files []*descriptorpb.FileDescriptorProto) ([]Module, error) {
	reg, err := protodesc.NewFiles(&descriptorpb.FileDescriptorSet{File: files})
	if err != nil {
		return nil, fmt.Errorf("invalid file descriptors: %w", err)
	}
	g, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}

	var (
		order    []string
		packages = make(map[string][]protoreflect.FileDescriptor)
	)
	for _, f := range files {
		pkg := f.GetPackage()
		if g.isExtern(pkg) {
			continue
		}
		fd, err := reg.FindFileByPath(f.GetName())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.GetName(), err)
		}
		if _, ok := packages[pkg]; !ok {
			order = append(order, pkg)
		}
		packages[pkg] = append(packages[pkg], fd)
	}

	modules := make([]Module, 0, len(order))
	for _, pkg := range order {
		content, err := g.module(pkg, packages[pkg])
		if err != nil {
			return nil, err
		}
		var path []string
		if pkg != "" {
			path = strings.Split(pkg, ".")
		}
		modules = append(modules, Module{Path: path, Package: pkg, Content: content})
	}
	slices.SortFunc(modules, func(a, b Module) int {
		return cmp.Compare(a.Package, b.Package)
	})
	return modules, nil
}

// generator holds the settings shared by every module of one translation.
type generator struct {
	cfg options.Config

	// Rust paths for protobuf paths provided by other crates.
	externs trie.Trie[string]
	// Whether google.protobuf comes from prost-types, which maps wrapper
	// types to Rust primitives.
	prostTypes bool

	btreeMaps  matcher
	bytes      matcher
	noComments matcher
}

const prostTypes = "::prost_types"

func newGenerator(cfg options.Config) (*generator, error) {
	g := &generator{
		cfg:        cfg,
		btreeMaps:  matcher(cfg.BTreeMapPaths),
		bytes:      matcher(cfg.BytesPaths),
		noComments: matcher(cfg.DisableCommentsPaths),
	}
	if !cfg.CompileWellKnownTypes {
		g.externs.Insert(".google.protobuf", prostTypes)
		g.prostTypes = true
	}
	for _, ext := range cfg.ExternPaths {
		if !strings.HasPrefix(ext.Path, ".") {
			return nil, fmt.Errorf("extern_path %q: protobuf path must be fully qualified", ext.Path)
		}
		if ext.Value == "" {
			return nil, fmt.Errorf("extern_path %q: missing Rust path", ext.Path)
		}
		if ext.Path == ".google.protobuf" {
			g.prostTypes = ext.Value == prostTypes
		}
		g.externs.Insert(ext.Path, ext.Value)
	}
	return g, nil
}

// isExtern reports whether the package pkg is provided by an extern path.
func (g *generator) isExtern(pkg string) bool {
	_, _, ok := g.externs.Get("." + pkg)
	return ok
}

// module renders the module for pkg, made of files.
func (g *generator) module(pkg string, files []protoreflect.FileDescriptor) (string, error) {
	var mod []string
	if pkg != "" {
		for _, seg := range strings.Split(pkg, ".") {
			mod = append(mod, ident.Module(seg))
		}
	}

	p := new(printer)
	p.line("// This file is @generated by protoc-gen-prost.")
	for _, fd := range files {
		msgs := fd.Messages()
		for i := range msgs.Len() {
			if err := g.message(p, msgs.Get(i), mod); err != nil {
				return "", err
			}
		}
		enums := fd.Enums()
		for i := range enums.Len() {
			g.enum(p, enums.Get(i))
		}
	}
	return p.String(), nil
}
