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
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/pluginpb"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/prostgen"
	"github.com/bufbuild/prostgen/internal/golden"
	"github.com/bufbuild/prostgen/internal/prototest"
)

// goldenCase is the contents of a test case file under testdata/golden.
type goldenCase struct {
	// Parameter string passed to the plugin.
	Parameter string `yaml:"parameter"`
	// Files to generate, out of Sources.
	Generate []string `yaml:"generate"`
	// Proto sources, by file name.
	Sources map[string]string `yaml:"sources"`
	// Files visible to the plugin, such as manifest templates.
	Templates map[string]string `yaml:"templates"`
}

func TestGolden(t *testing.T) {
	t.Parallel()

	golden.Corpus{
		Root:      "testdata/golden",
		Refresh:   "PROSTGEN_REFRESH",
		Extension: "yaml",
		Outputs:   []golden.Output{{Extension: "response"}},
		Test: func(t *testing.T, _, text string) []string {
			var tc goldenCase
			require.NoError(t, yaml.Unmarshal([]byte(text), &tc))

			req := prototest.Request(t, tc.Sources, tc.Parameter, tc.Generate...)
			resp := prostgen.New(prostgen.WithReadFile(func(name string) ([]byte, error) {
				if tmpl, ok := tc.Templates[name]; ok {
					return []byte(tmpl), nil
				}
				return nil, fs.ErrNotExist
			})).Generate(context.Background(), req)
			return []string{dumpResponse(resp)}
		},
	}.Run(t)
}

// dumpResponse renders resp as text, one section per file.
func dumpResponse(resp *pluginpb.CodeGeneratorResponse) string {
	var b strings.Builder
	if resp.Error != nil {
		b.WriteString("error: ")
		b.WriteString(resp.GetError())
		b.WriteByte('\n')
	}
	for _, f := range resp.GetFile() {
		b.WriteString("=== ")
		b.WriteString(f.GetName())
		b.WriteByte('\n')
		b.WriteString(f.GetContent())
		if !strings.HasSuffix(f.GetContent(), "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
