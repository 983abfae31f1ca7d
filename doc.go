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

// Package prostgen implements protoc-gen-prost, a protoc plugin that turns
// protobuf definitions into Rust code for the prost runtime.
//
// # Pipeline
//
// For each CodeGeneratorRequest, a [Generator]:
//  1. Parses the parameter string into an [options.Config].
//     Also see: options.ParseParameter
//  2. Translates the request's files into one Rust module per package.
//     Also see: codegen.Translator
//  3. Optionally renders a Cargo manifest with one feature per package.
//     Also see: manifest.Render, depgraph.Build
//  4. Optionally renders an include file that nests the modules.
//     Also see: moduletree.Render
//  5. Optionally embeds the encoded descriptors of the crate.
//     Also see: descset.Render
//
// Any failure turns into a response carrying only an error message, which
// protoc shows to the user.
//
// # Options
//
// Options are passed with --prost_opt, separated by commas. A comma inside
// a value is written "\,". The recognized options are:
//
//	btree_map=PATH                 generate maps at PATH as BTreeMap
//	bytes=PATH                     generate bytes fields at PATH as Bytes
//	compile_well_known_types       generate google.protobuf instead of using prost-types
//	default_package_filename=NAME  module name for files without a package
//	disable_comments=PATH          omit comments for elements at PATH
//	embed_descriptor_set[=FILE]    emit the encoded descriptors as Rust source
//	extern_path=PATH=RUST          take types at PATH from the Rust path RUST
//	field_attribute=PATH=ATTR      add ATTR to fields at PATH
//	file_descriptor_set=FILE       emit the encoded descriptors as is
//	gen_crate[=TEMPLATE]           emit Cargo.toml from TEMPLATE
//	include_file[=FILE]            emit an include file nesting all modules
//	retain_enum_prefix             keep enum names in front of their variants
//	type_attribute=PATH=ATTR       add ATTR to types at PATH
//
// # Embedding
//
// [Run] drives a Generator over an [Env], which makes it possible to wrap
// the plugin. A wrapper accepting extra options can find them with
// [options.ParseParameter], which hands back whatever it does not
// recognize, and remove them from the parameter before delegating.
package prostgen
