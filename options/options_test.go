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

package options_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/prostgen/options"
)

func TestSplitEscaped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: []string{""}},
		{in: ",,", want: []string{"", "", ""}},
		{in: "a", want: []string{"a"}},
		{in: "a,b", want: []string{"a", "b"}},
		{in: `a\,b,c`, want: []string{"a,b", "c"}},
		{in: `a\,\,b`, want: []string{"a,,b"}},
		{in: `a\b,c`, want: []string{`a\b`, "c"}},
		{in: `a,b\`, want: []string{"a", `b\`}},
		{in: `type_attribute=.=#[derive(A\, B)],bytes=.`, want: []string{"type_attribute=.=#[derive(A, B)]", "bytes=."}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, options.SplitEscaped(tt.in, ','))
		})
	}
}

func TestSplitEscapedInvertsJoin(t *testing.T) {
	t.Parallel()

	fields := []string{"a,b", "", "c", ",", "d,,e"}
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = strings.ReplaceAll(f, ",", `\,`)
	}
	assert.Equal(t, fields, options.SplitEscaped(strings.Join(escaped, ","), ','))
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		opts      []string
		want      options.Config
		leftovers []string
	}{
		{
			name: "empty",
			opts: []string{"", ""},
		},
		{
			name: "flags",
			opts: []string{"compile_well_known_types", "retain_enum_prefix"},
			want: options.Config{CompileWellKnownTypes: true, RetainEnumPrefix: true},
		},
		{
			name: "accumulators",
			opts: []string{"btree_map=.a", "bytes=.b", "btree_map=.a", "disable_comments=.", "bytes=.c"},
			want: options.Config{
				BTreeMapPaths:        []string{".a", ".a"},
				BytesPaths:           []string{".b", ".c"},
				DisableCommentsPaths: []string{"."},
			},
		},
		{
			name: "pairs",
			opts: []string{
				"extern_path=.google.protobuf=::pbjson_types",
				"type_attribute=.=#[derive(Eq)]",
				"type_attribute=.=#[derive(Hash)]",
				"field_attribute=.a.B.c=#[serde(skip)]",
				"type_attribute=.x=a=b",
			},
			want: options.Config{
				ExternPaths: []options.Pair{{Path: ".google.protobuf", Value: "::pbjson_types"}},
				TypeAttributes: []options.Pair{
					{Path: ".", Value: "#[derive(Eq)]"},
					{Path: ".", Value: "#[derive(Hash)]"},
					{Path: ".x", Value: "a=b"},
				},
				FieldAttributes: []options.Pair{{Path: ".a.B.c", Value: "#[serde(skip)]"}},
			},
		},
		{
			name: "single values",
			opts: []string{"default_package_filename=root", "file_descriptor_set=fds.bin"},
			want: options.Config{DefaultPackageFilename: "root", FileDescriptorSetPath: "fds.bin"},
		},
		{
			name: "bare include file",
			opts: []string{"include_file"},
			want: options.Config{IncludeFile: options.DefaultIncludeFile},
		},
		{
			name: "explicit include file",
			opts: []string{"include_file=protos.rs"},
			want: options.Config{IncludeFile: "protos.rs"},
		},
		{
			name: "crate include file",
			opts: []string{"include_file", "gen_crate"},
			want: options.Config{
				IncludeFile:      options.DefaultCrateIncludeFile,
				ManifestTemplate: options.DefaultManifestTemplate,
			},
		},
		{
			name: "crate with explicit include file",
			opts: []string{"gen_crate=tpl/Cargo.toml", "include_file=gen.rs"},
			want: options.Config{IncludeFile: "gen.rs", ManifestTemplate: "tpl/Cargo.toml"},
		},
		{
			name: "descriptor set artifact",
			opts: []string{"embed_descriptor_set"},
			want: options.Config{DescriptorSetArtifact: options.DefaultDescriptorSetArtifact},
		},
		{
			name: "named descriptor set artifact",
			opts: []string{"embed_descriptor_set=fds.rs"},
			want: options.Config{DescriptorSetArtifact: "fds.rs"},
		},
		{
			name:      "leftovers",
			opts:      []string{"foo=bar", "bytes=.a", "bytes", "extern_path=.a", "compile_well_known_types=yes", "foo=bar"},
			want:      options.Config{BytesPaths: []string{".a"}},
			leftovers: []string{"foo=bar", "bytes", "extern_path=.a", "compile_well_known_types=yes", "foo=bar"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, leftovers := options.Parse(tt.opts)
			assert.Equal(t, tt.want, cfg)
			assert.Equal(t, tt.leftovers, leftovers)
		})
	}
}

func TestParseParameter(t *testing.T) {
	t.Parallel()

	cfg, leftovers := options.ParseParameter(`type_attribute=.=#[derive(A\, B)],unknown,bytes=.`)
	assert.Equal(t, []options.Pair{{Path: ".", Value: "#[derive(A, B)]"}}, cfg.TypeAttributes)
	assert.Equal(t, []string{"."}, cfg.BytesPaths)
	assert.Equal(t, []string{"unknown"}, leftovers)
}

func TestPackageFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "_", options.Config{}.PackageFilename())
	assert.Equal(t, "root", options.Config{DefaultPackageFilename: "root"}.PackageFilename())
}
