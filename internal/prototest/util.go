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

// Package prototest contains helpers for tests that need descriptors.
package prototest

import (
	"context"
	"fmt"
	"testing"

	"github.com/bufbuild/protocompile"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"
)

// Compile compiles the named files out of sources, which maps file names to
// protobuf source text. Standard imports such as google/protobuf/empty.proto
// are always available.
//
// The result holds the named files and everything they import, with every
// file after its dependencies, the way protoc lists files in a
// CodeGeneratorRequest. Source code info is retained.
func Compile(t *testing.T, sources map[string]string, names ...string) []*descriptorpb.FileDescriptorProto {
	t.Helper()
	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(&protocompile.SourceResolver{
			Accessor: protocompile.SourceAccessorFromMap(sources),
		}),
		SourceInfoMode: protocompile.SourceInfoStandard,
	}
	files, err := compiler.Compile(context.Background(), names...)
	require.NoError(t, err)

	var (
		out  []*descriptorpb.FileDescriptorProto
		seen = make(map[string]bool)
		add  func(fd protoreflect.FileDescriptor)
	)
	add = func(fd protoreflect.FileDescriptor) {
		if seen[fd.Path()] {
			return
		}
		seen[fd.Path()] = true
		imports := fd.Imports()
		for i := range imports.Len() {
			add(imports.Get(i).FileDescriptor)
		}
		out = append(out, protodesc.ToFileDescriptorProto(fd))
	}
	for _, f := range files {
		add(f)
	}
	return out
}

// Request builds the CodeGeneratorRequest protoc would send to a plugin
// asked to generate the named files with the given parameter.
func Request(t *testing.T, sources map[string]string, parameter string, names ...string) *pluginpb.CodeGeneratorRequest {
	t.Helper()
	req := &pluginpb.CodeGeneratorRequest{
		FileToGenerate: names,
		ProtoFile:      Compile(t, sources, names...),
	}
	if parameter != "" {
		req.Parameter = proto.String(parameter)
	}
	return req
}

// AssertMessagesEqual fails t if exp and act differ, printing a diff.
func AssertMessagesEqual(t *testing.T, exp, act proto.Message, msgAndArgs ...interface{}) {
	t.Helper()
	AssertMessagesEqualWithOptions(t, exp, act, nil, msgAndArgs...)
}

// AssertMessagesEqualWithOptions is like [AssertMessagesEqual], with extra
// comparison options.
func AssertMessagesEqualWithOptions(t *testing.T, exp, act proto.Message, opts []cmp.Option, msgAndArgs ...interface{}) {
	t.Helper()
	cmpOpts := []cmp.Option{protocmp.Transform()}
	cmpOpts = append(cmpOpts, opts...)
	if diff := cmp.Diff(exp, act, cmpOpts...); diff != "" {
		var prefix string
		if len(msgAndArgs) == 1 {
			if msg, ok := msgAndArgs[0].(string); ok {
				prefix = msg + ": "
			} else {
				prefix = fmt.Sprintf("%+v: ", msgAndArgs[0])
			}
		} else if len(msgAndArgs) > 1 {
			prefix = fmt.Sprintf(msgAndArgs[0].(string)+": ", msgAndArgs[1:]...)
		}

		t.Errorf("%smessage mismatch (-want +got):\n%v", prefix, diff)
	}
}
