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

// Package golden runs table-driven tests whose table lives in the file
// system: each test case is a file, and its expected outputs sit next to it.
package golden

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus is a directory of test cases.
type Corpus struct {
	// Root is the directory holding the test cases, relative to the file
	// that calls [Corpus.Run].
	Root string

	// Refresh names an environment variable holding a glob. Test cases
	// whose path matches it get their expected outputs rewritten instead of
	// checked.
	Refresh string

	// Extension of the files defining a test case, without the dot.
	Extension string

	// Outputs lists the files expected for each test case. A missing output
	// file stands for an empty output.
	Outputs []Output

	// Test runs one test case, given its path and contents, and returns one
	// result per element of Outputs.
	Test func(t *testing.T, path, text string) []string
}

// Output describes one expected output of a test case.
type Output struct {
	// Extension appended to the test case's file name to find the output:
	// with Extension "response", case "foo.yaml" is checked against
	// "foo.yaml.response".
	Extension string

	// Compare checks a result against the expected text. If nil, they must
	// be identical.
	Compare Compare
}

// Compare returns a description of how got differs from want, or "" if it
// does not.
type Compare func(got, want string) string

// Run runs every test case of c as a subtest of t.
func (c Corpus) Run(t *testing.T) {
	t.Helper()
	dir := callerDir()
	root := filepath.Join(dir, c.Root)

	var cases []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.TrimPrefix(filepath.Ext(p), ".") == c.Extension {
			cases = append(cases, p)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("golden: failed to list test cases in %q: %v", root, err)
	}
	if len(cases) == 0 {
		t.Fatalf("golden: no test cases in %q", root)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if refresh != "" && !doublestar.ValidatePattern(refresh) {
			t.Fatalf("golden: invalid glob in %s: %q", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		t.Logf("golden: refreshing outputs matching %s=%s", c.Refresh, refresh)
	}

	for _, p := range cases {
		name, _ := filepath.Rel(dir, p)
		t.Run(name, func(t *testing.T) {
			data, err := os.ReadFile(p)
			if err != nil {
				t.Fatalf("golden: failed to read test case: %v", err)
			}
			results := c.Test(t, name, string(data))
			if len(results) != len(c.Outputs) {
				t.Fatalf("golden: got %d results for %d outputs", len(results), len(c.Outputs))
			}

			rewrite := refresh != "" && matches(refresh, filepath.ToSlash(name))
			for i, output := range c.Outputs {
				file := fmt.Sprint(p, ".", output.Extension)
				if rewrite {
					if err := write(file, results[i]); err != nil {
						t.Errorf("golden: %v", err)
					}
					continue
				}

				want, err := os.ReadFile(file)
				if err != nil && !errors.Is(err, fs.ErrNotExist) {
					t.Errorf("golden: failed to read output: %v", err)
					continue
				}
				compare := output.Compare
				if compare == nil {
					compare = Diff
				}
				if diff := compare(results[i], string(want)); diff != "" {
					t.Errorf("golden: mismatch for %q:\n%s", file, diff)
				}
			}
		})
	}
}

// Diff compares got and want byte for byte, describing a mismatch as a
// unified diff.
func Diff(got, want string) string {
	if got == want {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

func matches(pattern, name string) bool {
	ok, _ := doublestar.Match(pattern, name)
	return ok
}

// write stores an output, removing the file instead when it is empty.
func write(file, text string) error {
	if text == "" {
		if err := os.Remove(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove %q: %w", file, err)
		}
		return nil
	}
	if err := os.WriteFile(file, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", file, err)
	}
	return nil
}

func callerDir() string {
	_, file, _, ok := runtime.Caller(2)
	if !ok {
		panic("golden: could not determine the directory of the calling test")
	}
	return filepath.Dir(file)
}
