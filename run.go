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
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/pluginpb"
)

// ErrDecodeRequest is the error reported in the response when stdin does
// not hold a valid CodeGeneratorRequest.
var ErrDecodeRequest = errors.New("failed to decode CodeGeneratorRequest")

// Env is the environment a plugin runs in.
//
// Tests and programs that call the plugin as a library can back the streams
// with [bytes.Buffer] values.
type Env struct {
	// Stdin holds the encoded CodeGeneratorRequest.
	Stdin io.Reader
	// Stdout receives the encoded CodeGeneratorResponse.
	Stdout io.Writer
	// Stderr receives diagnostics that cannot go in the response.
	Stderr io.Writer
}

// Run reads a request from env.Stdin, generates code with a [Generator]
// configured by opts, and writes the response to env.Stdout.
//
// Problems with the request itself, including one that cannot be decoded,
// are reported in the response. The returned error is only set if the
// request cannot be read or the response cannot be written.
func Run(ctx context.Context, env Env, opts ...Option) error {
	data, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read CodeGeneratorRequest: %w", err)
	}
	g := New(opts...)

	var resp *pluginpb.CodeGeneratorResponse
	req := new(pluginpb.CodeGeneratorRequest)
	if err := proto.Unmarshal(data, req); err != nil {
		err = fmt.Errorf("%w: %w", ErrDecodeRequest, err)
		g.logger.WarnContext(ctx, "invalid request", "error", err)
		resp = errorResponse(err)
	} else {
		resp = g.Generate(ctx, req)
	}

	out, err := proto.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to encode CodeGeneratorResponse: %w", err)
	}
	if _, err := env.Stdout.Write(out); err != nil {
		return fmt.Errorf("failed to write CodeGeneratorResponse: %w", err)
	}
	return nil
}

// Main runs the plugin on the standard streams of the process and exits
// with status 1 if [Run] fails.
func Main(opts ...Option) {
	env := Env{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
	if err := Run(context.Background(), env, opts...); err != nil {
		_, _ = fmt.Fprintln(env.Stderr, err)
		os.Exit(1)
	}
}
