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

// Package descset renders an encoded FileDescriptorSet as Rust source, so
// that the descriptors of a generated crate can be embedded in it.
//
// Code generator responses may not carry arbitrary bytes in every context,
// so the set is written out as a byte array literal of printable text
// instead of as a binary file.
package descset

import (
	"fmt"
	"path"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Const is the name of the generated constant.
const Const = "FILE_DESCRIPTOR_SET"

const bytesPerLine = 16

// Encode serializes set. Map entries in options are written in key order so
// that the result is stable across runs.
func Encode(set *descriptorpb.FileDescriptorSet) ([]byte, error) {
	data, err := proto.MarshalOptions{Deterministic: true}.Marshal(set)
	if err != nil {
		return nil, fmt.Errorf("failed to encode FileDescriptorSet: %w", err)
	}
	return data, nil
}

// Render returns Rust source declaring data as a byte slice constant.
func Render(data []byte) string {
	var b strings.Builder
	b.WriteString("// @generated\n")
	b.WriteString("/// Encoded `google.protobuf.FileDescriptorSet` this crate was generated from.\n")
	fmt.Fprintf(&b, "pub const %s: &[u8] = &[\n", Const)
	for len(data) > 0 {
		n := min(bytesPerLine, len(data))
		b.WriteString("   ")
		for _, c := range data[:n] {
			fmt.Fprintf(&b, " 0x%02x,", c)
		}
		b.WriteByte('\n')
		data = data[n:]
	}
	b.WriteString("];\n")
	return b.String()
}

// FeatureName returns the cargo feature that guards the artifact called
// name: the file name without its extension.
func FeatureName(name string) string {
	base := path.Base(name)
	return strings.TrimSuffix(base, path.Ext(base))
}
