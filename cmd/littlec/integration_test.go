package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// E2EIRTestSpec represents a single end-to-end IR test case
type E2EIRTestSpec struct {
	Name         string   `yaml:"name"`
	Input        string   `yaml:"input"`
	Dump         string   `yaml:"dump"`          // ir or cfg
	Renumber     bool     `yaml:"renumber"`      // Pass --renumber
	Expect       []string `yaml:"expect"`        // Strings that must appear in output
	ExpectOrder  []string `yaml:"expect_order"`  // Strings that must appear in this order
	ExpectUnique []string `yaml:"expect_unique"` // Strings that must appear exactly once
	ExpectNot    []string `yaml:"expect_not"`    // Strings that must NOT appear in output
	Error        string   `yaml:"error"`         // Expected failure message, if any
	Skip         string   `yaml:"skip,omitempty"`
}

// E2EIRTestFile represents the e2e_ir.yaml file structure
type E2EIRTestFile struct {
	Tests []E2EIRTestSpec `yaml:"tests"`
}

// TestE2EIRYAML compiles each tree in e2e_ir.yaml and checks the dump
func TestE2EIRYAML(t *testing.T) {
	data, err := os.ReadFile("../../testdata/e2e_ir.yaml")
	if err != nil {
		t.Fatalf("e2e_ir.yaml not found: %v", err)
	}

	var testFile E2EIRTestFile
	if err := yaml.Unmarshal(data, &testFile); err != nil {
		t.Fatalf("failed to parse e2e_ir.yaml: %v", err)
	}
	if len(testFile.Tests) == 0 {
		t.Fatal("e2e_ir.yaml has no tests")
	}

	for _, tc := range testFile.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			if tc.Skip != "" {
				t.Skip(tc.Skip)
			}

			tmpDir := t.TempDir()
			testFile := filepath.Join(tmpDir, "test.yaml")
			if err := os.WriteFile(testFile, []byte(tc.Input), 0644); err != nil {
				t.Fatalf("failed to write test file: %v", err)
			}

			args := []string{"--d" + tc.Dump}
			if tc.Renumber {
				args = append(args, "--renumber")
			}
			args = append(args, testFile)

			resetDebugFlags()
			var out, errOut bytes.Buffer
			cmd := newRootCmd(&out, &errOut)
			cmd.SetArgs(args)
			err := cmd.Execute()

			if tc.Error != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got none\nOutput:\n%s", tc.Error, out.String())
				}
				if !strings.Contains(errOut.String(), tc.Error) {
					t.Errorf("expected stderr to contain %q, got %q", tc.Error, errOut.String())
				}
				return
			}
			if err != nil {
				t.Fatalf("littlec failed: %v\nStderr: %s", err, errOut.String())
			}

			output := out.String()
			for _, exp := range tc.Expect {
				if !strings.Contains(output, exp) {
					t.Errorf("expected output to contain %q\nGot:\n%s", exp, output)
				}
			}

			lastIdx := -1
			for _, exp := range tc.ExpectOrder {
				idx := strings.Index(output[lastIdx+1:], exp)
				if idx < 0 {
					t.Errorf("expected %q after position %d\nGot:\n%s", exp, lastIdx, output)
					break
				}
				lastIdx += 1 + idx
			}

			for _, exp := range tc.ExpectUnique {
				if n := strings.Count(output, exp); n != 1 {
					t.Errorf("expected %q exactly once, found %d times\nGot:\n%s", exp, n, output)
				}
			}

			for _, notExp := range tc.ExpectNot {
				if strings.Contains(output, notExp) {
					t.Errorf("expected output NOT to contain %q\nGot:\n%s", notExp, output)
				}
			}

			// The dump file holds the same text
			written, err := os.ReadFile(outputFilename(testFile, "."+tc.Dump))
			if err != nil {
				t.Fatalf("dump file not written: %v", err)
			}
			if string(written) != output {
				t.Errorf("dump file differs from stdout\nFile:\n%s\nStdout:\n%s", written, output)
			}
		})
	}
}
