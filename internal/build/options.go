package build

import (
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Options configures a build manager. The zero value is usable;
// LoadOptions fills it from a YAML file.
type Options struct {
	SearchPaths   []string `yaml:"search_paths"`
	PythonVersion string   `yaml:"python_version"`
	Color         bool     `yaml:"color"`
	Workers       int      `yaml:"workers"`
}

// DefaultOptions returns the options used when no config file is given.
func DefaultOptions() *Options {
	return &Options{
		PythonVersion: "3.12",
		Color:         true,
		Workers:       runtime.GOMAXPROCS(0),
	}
}

// LoadOptions reads options from a YAML file, applying defaults for
// absent fields.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, err
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.PythonVersion == "" {
		opts.PythonVersion = "3.12"
	}
	return opts, nil
}
