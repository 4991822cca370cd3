// Package config loads call definitions from YAML callfiles.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader reads call definitions from callfiles.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the callfile at path and returns the call it defines.
//
// A relative working_dir is resolved against the callfile's directory, which
// is also the default when working_dir is omitted, so a callfile behaves the
// same regardless of where the tool is invoked from.
func (l *Loader) Load(path string) (domain.Call, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path comes from the --file flag
	if err != nil {
		return domain.Call{}, zerr.With(
			zerr.Wrap(err, domain.ErrCallfileReadFailed.Error()),
			"path", path,
		)
	}

	var cf Callfile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return domain.Call{}, zerr.With(
			zerr.Wrap(err, domain.ErrCallfileParseFailed.Error()),
			"path", path,
		)
	}

	if len(cf.Command) == 0 {
		return domain.Call{}, zerr.With(domain.ErrNoCommand, "path", path)
	}

	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return domain.Call{}, zerr.Wrap(err, domain.ErrCallfileReadFailed.Error())
	}

	workingDir := base
	if cf.WorkingDir != "" {
		if filepath.IsAbs(cf.WorkingDir) {
			workingDir = filepath.Clean(cf.WorkingDir)
		} else {
			workingDir = filepath.Join(base, cf.WorkingDir)
		}
	}

	return domain.Call{
		WorkingDir: workingDir,
		Inputs:     cf.Inputs,
		Outputs:    cf.Outputs,
		Command:    cf.Command,
	}, nil
}
