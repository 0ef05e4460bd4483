// Package config — .twine.yaml project configuration support.
//
// When a .twine.yaml file exists in the project root, twinec reads the
// catalog inputs and output location from it, so a bare "twinec
// generate" works from anywhere in the project. Command-line flags
// override individual fields; the compiler itself never invents paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File is the top-level .twine.yaml structure.
type File struct {
	// Inputs are the catalog files, merged in order; keys in later
	// files override earlier ones wholesale.
	Inputs []string `yaml:"inputs"`
	// Output is the generated Go file path.
	Output string `yaml:"output"`
	// Package is the generated package name (default "i18n").
	Package string `yaml:"package,omitempty"`
}

// FileName is the default config file name.
const FileName = ".twine.yaml"

// Load reads and validates .twine.yaml from the given directory.
// Returns nil if no .twine.yaml exists.
func Load(rootDir string) (*File, error) {
	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if len(f.Inputs) == 0 {
		return nil, fmt.Errorf("%s: no inputs declared", path)
	}
	for i, in := range f.Inputs {
		if in == "" {
			return nil, fmt.Errorf("%s: input #%d is empty", path, i+1)
		}
	}
	if f.Package == "" {
		f.Package = "i18n"
	}

	return &f, nil
}

// Resolve returns the inputs and output as paths under rootDir, left
// untouched when already absolute.
func (f *File) Resolve(rootDir string) (inputs []string, output string) {
	for _, in := range f.Inputs {
		inputs = append(inputs, resolve(rootDir, in))
	}
	if f.Output != "" {
		output = resolve(rootDir, f.Output)
	}
	return inputs, output
}

func resolve(rootDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(rootDir, path)
}
