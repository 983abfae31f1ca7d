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

package options

import "strings"

// SplitEscaped splits s around each instance of sep, except where sep is
// immediately preceded by a backslash. The backslash is consumed and the
// separator is kept as a literal character of the current field.
//
// No other escape sequences are recognized. An empty string yields a single
// empty field.
func SplitEscaped(s string, sep rune) []string {
	var (
		fields []string
		field  strings.Builder
	)
	parts := strings.Split(s, string(sep))
	for i, part := range parts {
		// The last part is not followed by a separator, so a trailing
		// backslash there escapes nothing.
		if prefix, ok := strings.CutSuffix(part, `\`); ok && i < len(parts)-1 {
			field.WriteString(prefix)
			field.WriteRune(sep)
			continue
		}
		field.WriteString(part)
		fields = append(fields, field.String())
		field.Reset()
	}
	return fields
}
