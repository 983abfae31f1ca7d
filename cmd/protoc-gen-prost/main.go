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

// Command protoc-gen-prost is a protoc plugin that generates Rust code for
// the prost runtime.
//
// Invoke it through protoc:
//
//	protoc --prost_out=src --prost_opt=include_file,gen_crate=Cargo.toml.tpl foo.proto
package main

import (
	"log/slog"
	"os"

	"github.com/bufbuild/prostgen"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	prostgen.Main(prostgen.WithLogger(logger))
}
