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

package prostgen_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/bufbuild/prostgen"
	"github.com/bufbuild/prostgen/internal/prototest"
)

func run(t *testing.T, stdin []byte, opts ...prostgen.Option) *pluginpb.CodeGeneratorResponse {
	t.Helper()
	var stdout, stderr bytes.Buffer
	env := prostgen.Env{Stdin: bytes.NewReader(stdin), Stdout: &stdout, Stderr: &stderr}
	require.NoError(t, prostgen.Run(context.Background(), env, opts...))
	assert.Empty(t, stderr.String())

	resp := new(pluginpb.CodeGeneratorResponse)
	require.NoError(t, proto.Unmarshal(stdout.Bytes(), resp))
	return resp
}

func TestRun(t *testing.T) {
	t.Parallel()

	req := prototest.Request(t, sources, "include_file", "foo/v1/event.proto")
	data, err := proto.Marshal(req)
	require.NoError(t, err)

	resp := run(t, data)
	assert.Empty(t, resp.GetError())
	assert.Equal(t, []string{"bar.rs", "foo.v1.rs", "mod.rs"}, names(resp))

	direct := prostgen.New().Generate(context.Background(), req)
	prototest.AssertMessagesEqual(t, direct, resp)
}

func TestRunDecodeFailure(t *testing.T) {
	t.Parallel()

	resp := run(t, []byte{0xff})
	assert.Contains(t, resp.GetError(), prostgen.ErrDecodeRequest.Error()+": ")
	assert.Equal(t, uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL), resp.GetSupportedFeatures())
	assert.Empty(t, resp.GetFile())
}

func TestRunStreamFailures(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	err := prostgen.Run(context.Background(), prostgen.Env{
		Stdin:  iotest.ErrReader(boom),
		Stdout: new(bytes.Buffer),
	})
	require.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "failed to read CodeGeneratorRequest")

	err = prostgen.Run(context.Background(), prostgen.Env{
		Stdin:  bytes.NewReader(nil),
		Stdout: failingWriter{boom},
	})
	require.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "failed to write CodeGeneratorResponse")
}

type failingWriter struct {
	err error
}

func (w failingWriter) Write([]byte) (int, error) {
	return 0, w.err
}
