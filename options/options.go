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

// Package options turns the parameter string handed to the plugin by protoc
// (set with --prost_opt) into a [Config].
//
// The parameter is a comma-separated list of options, where "\," stands for a
// literal comma. Each option has one of the forms key, key=value or
// key=path=value. Options that are not recognized are returned to the caller
// untouched, so that plugins which wrap this one can interpret them.
package options

import (
	"errors"
	"strings"
)

// ErrUnknownOptions is the error wrapped when a parameter string contains
// options that no plugin claimed.
var ErrUnknownOptions = errors.New("unknown options")

const (
	// DefaultIncludeFile is the include file name used for a bare
	// include_file option.
	DefaultIncludeFile = "mod.rs"
	// DefaultCrateIncludeFile is the include file name used when a crate
	// manifest is generated, since the include file then acts as the
	// library entry point.
	DefaultCrateIncludeFile = "lib.rs"
	// DefaultManifestTemplate is the template path used for a bare
	// gen_crate option.
	DefaultManifestTemplate = "Cargo.toml.tpl"
	// DefaultDescriptorSetArtifact is the file name used for a bare
	// embed_descriptor_set option.
	DefaultDescriptorSetArtifact = "file_descriptor_set.rs"
	// DefaultPackageFilename names the module of files without a package.
	DefaultPackageFilename = "_"
)

// Key is a recognized option name.
type Key string

const (
	KeyBTreeMap               Key = "btree_map"
	KeyBytes                  Key = "bytes"
	KeyCompileWellKnownTypes  Key = "compile_well_known_types"
	KeyDefaultPackageFilename Key = "default_package_filename"
	KeyDisableComments        Key = "disable_comments"
	KeyEmbedDescriptorSet     Key = "embed_descriptor_set"
	KeyExternPath             Key = "extern_path"
	KeyFieldAttribute         Key = "field_attribute"
	KeyFileDescriptorSet      Key = "file_descriptor_set"
	KeyGenCrate               Key = "gen_crate"
	KeyIncludeFile            Key = "include_file"
	KeyRetainEnumPrefix       Key = "retain_enum_prefix"
	KeyTypeAttribute          Key = "type_attribute"
)

// Pair is a path-keyed setting, from an option of the form key=path=value.
type Pair struct {
	Path  string
	Value string
}

// Config holds the settings for one plugin invocation.
//
// Path lists and pairs keep every occurrence in the order given; merging
// repeated or overlapping paths is up to the code generator.
type Config struct {
	// Paths of map fields to generate as BTreeMap rather than HashMap.
	BTreeMapPaths []string
	// Paths of bytes fields to generate as Bytes rather than Vec<u8>.
	BytesPaths []string
	// Paths of elements whose comments are not copied into the output.
	DisableCommentsPaths []string

	// Protobuf paths provided by other crates, mapped to their Rust paths.
	ExternPaths []Pair
	// Extra attributes for the types at the given paths.
	TypeAttributes []Pair
	// Extra attributes for the fields at the given paths.
	FieldAttributes []Pair

	// If true, google.protobuf types are generated instead of being taken
	// from prost-types.
	CompileWellKnownTypes bool
	// If true, enum variants keep the enum name as a prefix.
	RetainEnumPrefix bool

	// Name (without extension) of the module of files with no package.
	DefaultPackageFilename string
	// Name of the aggregating include file. Empty means none.
	IncludeFile string
	// Path of the crate manifest template. Empty means no manifest.
	ManifestTemplate string
	// Name of the embedded descriptor set source file. Empty means none.
	DescriptorSetArtifact string
	// Output path of the raw encoded descriptor set. Empty means none.
	FileDescriptorSetPath string
}

// PackageFilename returns the module name used for files without a package.
func (c Config) PackageFilename() string {
	if c.DefaultPackageFilename == "" {
		return DefaultPackageFilename
	}
	return c.DefaultPackageFilename
}

// GenerateManifest reports whether a crate manifest is requested.
func (c Config) GenerateManifest() bool {
	return c.ManifestTemplate != ""
}

// ParseParameter splits a raw protoc parameter string and parses the result.
func ParseParameter(param string) (Config, []string) {
	return Parse(SplitEscaped(param, ','))
}

// Parse builds a Config out of opts. Options that are not recognized are
// returned in the order they were given.
func Parse(opts []string) (Config, []string) {
	var p parser
	for _, opt := range opts {
		if opt == "" {
			continue
		}
		parts := strings.SplitN(opt, "=", 3)
		act, ok := schema[form{key: Key(parts[0]), arity: len(parts) - 1}]
		if !ok {
			p.leftovers = append(p.leftovers, opt)
			continue
		}
		act(&p, parts[1:])
	}
	p.finish()
	return p.cfg, p.leftovers
}

// form identifies a recognized option shape: its key, and how many
// "="-separated arguments follow it.
type form struct {
	key   Key
	arity int
}

type action func(p *parser, args []string)

// schema is the full option vocabulary. It is never written to.
var schema = map[form]action{
	{KeyCompileWellKnownTypes, 0}: func(p *parser, _ []string) { p.cfg.CompileWellKnownTypes = true },
	{KeyRetainEnumPrefix, 0}:      func(p *parser, _ []string) { p.cfg.RetainEnumPrefix = true },
	{KeyIncludeFile, 0}:           func(p *parser, _ []string) { p.includeFile = true },
	{KeyEmbedDescriptorSet, 0}: func(p *parser, _ []string) {
		p.cfg.DescriptorSetArtifact = DefaultDescriptorSetArtifact
	},
	{KeyGenCrate, 0}: func(p *parser, _ []string) { p.cfg.ManifestTemplate = DefaultManifestTemplate },

	{KeyIncludeFile, 1}: func(p *parser, args []string) {
		p.cfg.IncludeFile = args[0]
		p.explicitInclude = true
	},
	{KeyEmbedDescriptorSet, 1}:     func(p *parser, args []string) { p.cfg.DescriptorSetArtifact = args[0] },
	{KeyGenCrate, 1}:               func(p *parser, args []string) { p.cfg.ManifestTemplate = args[0] },
	{KeyDefaultPackageFilename, 1}: func(p *parser, args []string) { p.cfg.DefaultPackageFilename = args[0] },
	{KeyFileDescriptorSet, 1}:      func(p *parser, args []string) { p.cfg.FileDescriptorSetPath = args[0] },

	{KeyBTreeMap, 1}: func(p *parser, args []string) { p.cfg.BTreeMapPaths = append(p.cfg.BTreeMapPaths, args[0]) },
	{KeyBytes, 1}:    func(p *parser, args []string) { p.cfg.BytesPaths = append(p.cfg.BytesPaths, args[0]) },
	{KeyDisableComments, 1}: func(p *parser, args []string) {
		p.cfg.DisableCommentsPaths = append(p.cfg.DisableCommentsPaths, args[0])
	},

	{KeyExternPath, 2}: func(p *parser, args []string) {
		p.cfg.ExternPaths = append(p.cfg.ExternPaths, Pair{Path: args[0], Value: args[1]})
	},
	{KeyTypeAttribute, 2}: func(p *parser, args []string) {
		p.cfg.TypeAttributes = append(p.cfg.TypeAttributes, Pair{Path: args[0], Value: args[1]})
	},
	{KeyFieldAttribute, 2}: func(p *parser, args []string) {
		p.cfg.FieldAttributes = append(p.cfg.FieldAttributes, Pair{Path: args[0], Value: args[1]})
	},
}

type parser struct {
	cfg       Config
	leftovers []string

	includeFile     bool
	explicitInclude bool
}

func (p *parser) finish() {
	if p.explicitInclude {
		return
	}
	switch {
	case p.cfg.GenerateManifest():
		p.cfg.IncludeFile = DefaultCrateIncludeFile
	case p.includeFile:
		p.cfg.IncludeFile = DefaultIncludeFile
	}
}
