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

package prostgen

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/bufbuild/prostgen/codegen"
	"github.com/bufbuild/prostgen/depgraph"
	"github.com/bufbuild/prostgen/descset"
	"github.com/bufbuild/prostgen/manifest"
	"github.com/bufbuild/prostgen/moduletree"
	"github.com/bufbuild/prostgen/options"
)

// Generator turns CodeGeneratorRequests into CodeGeneratorResponses.
//
// A Generator holds no state between calls to [Generator.Generate]. The
// zero value is not usable; create one with [New].
type Generator struct {
	translator codegen.Translator
	logger     *slog.Logger
	readFile   manifest.ReadFileFunc
}

// Option configures a [Generator].
type Option func(*Generator)

// WithTranslator sets the code generator that produces the Rust modules.
// The default is [codegen.Rust].
func WithTranslator(t codegen.Translator) Option {
	return func(g *Generator) {
		g.translator = t
	}
}

// WithLogger sets the logger that receives progress records. By default
// nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithReadFile sets the function used to load the manifest template. The
// default is [os.ReadFile].
func WithReadFile(read manifest.ReadFileFunc) Option {
	return func(g *Generator) {
		g.readFile = read
	}
}

// New returns a Generator configured by opts.
func New(opts ...Option) *Generator {
	g := &Generator{
		translator: codegen.Rust{},
		logger:     slog.New(slog.DiscardHandler),
		readFile:   os.ReadFile,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces the response to req.
//
// Failures are reported in the Error field of the response, which then
// holds no files. The response always advertises support for proto3
// optional fields.
func (g *Generator) Generate(ctx context.Context, req *pluginpb.CodeGeneratorRequest) *pluginpb.CodeGeneratorResponse {
	files, err := g.generate(ctx, req)
	if err != nil {
		g.logger.WarnContext(ctx, "code generation failed", "error", err)
		return errorResponse(err)
	}
	resp := newResponse()
	resp.File = files
	return resp
}

// newResponse returns an empty response advertising the features every
// response of the plugin supports.
func newResponse() *pluginpb.CodeGeneratorResponse {
	return &pluginpb.CodeGeneratorResponse{
		SupportedFeatures: proto.Uint64(uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL)),
	}
}

func errorResponse(err error) *pluginpb.CodeGeneratorResponse {
	resp := newResponse()
	resp.Error = proto.String(err.Error())
	return resp
}

func (g *Generator) generate(ctx context.Context, req *pluginpb.CodeGeneratorRequest) ([]*pluginpb.CodeGeneratorResponse_File, error) {
	cfg, unknown := options.ParseParameter(req.GetParameter())
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w:\n - %s", options.ErrUnknownOptions, strings.Join(unknown, "\n - "))
	}
	g.logger.DebugContext(ctx, "parsed options", "config", fmt.Sprintf("%+v", cfg))

	modules, err := g.translator.Translate(cfg, req.GetProtoFile())
	if err != nil {
		return nil, fmt.Errorf("failed to generate Rust code: %w", err)
	}

	var out []*pluginpb.CodeGeneratorResponse_File
	for _, m := range modules {
		out = append(out, file(m.FileName(cfg), m.Content))
		g.logger.DebugContext(ctx, "generated module", "package", m.Package, "file", m.FileName(cfg))
	}
	slices.SortFunc(out, func(a, b *pluginpb.CodeGeneratorResponse_File) int {
		return cmp.Compare(a.GetName(), b.GetName())
	})

	var manifestFile *pluginpb.CodeGeneratorResponse_File
	if cfg.GenerateManifest() {
		template, err := manifest.Load(g.readFile, cfg.ManifestTemplate)
		if err != nil {
			return nil, err
		}
		graph := depgraph.Build(req.GetProtoFile())
		g.logger.DebugContext(ctx, "built dependency graph", "packages", graph.Len())
		var extra []manifest.Feature
		if cfg.DescriptorSetArtifact != "" {
			extra = append(extra, manifest.Feature{Name: descset.FeatureName(cfg.DescriptorSetArtifact)})
		}
		manifestFile = file(manifest.FileName, manifest.Render(template, graph, extra...))
	}

	if cfg.IncludeFile != "" {
		root := new(moduletree.Node)
		for _, m := range modules {
			root.Insert(m.Path)
		}
		if g.logger.Enabled(ctx, slog.LevelDebug) {
			g.logger.DebugContext(ctx, "built module tree", "tree", root.Dump())
		}
		out = append(out, file(cfg.IncludeFile, moduletree.Render(root, moduletree.RenderOptions{
			Features: cfg.GenerateManifest(),
			FileName: func(pkg string) string {
				return codegen.FileName(cfg, pkg)
			},
		})))
	}
	if manifestFile != nil {
		out = append(out, manifestFile)
	}

	if cfg.DescriptorSetArtifact != "" {
		data, err := encodeSet(req)
		if err != nil {
			return nil, err
		}
		out = append(out, file(cfg.DescriptorSetArtifact, descset.Render(data)))
	}
	if cfg.FileDescriptorSetPath != "" {
		data, err := encodeSet(req)
		if err != nil {
			return nil, err
		}
		out = append(out, file(cfg.FileDescriptorSetPath, string(data)))
	}
	return out, nil
}

// encodeSet encodes every file of req, generated or not, so that the set is
// self-contained.
func encodeSet(req *pluginpb.CodeGeneratorRequest) ([]byte, error) {
	return descset.Encode(&descriptorpb.FileDescriptorSet{File: req.GetProtoFile()})
}

func file(name, content string) *pluginpb.CodeGeneratorResponse_File {
	return &pluginpb.CodeGeneratorResponse_File{
		Name:    proto.String(name),
		Content: proto.String(content),
	}
}
