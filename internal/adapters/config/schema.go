package config

// Callfile is the YAML schema for a call definition.
//
// Example:
//
//	inputs:
//	  - data.json
//	  - analysis.py
//	outputs:
//	  - result.json
//	command: [python3, analysis.py]
//	working_dir: .
type Callfile struct {
	Inputs     []string `yaml:"inputs"`
	Outputs    []string `yaml:"outputs"`
	Command    []string `yaml:"command"`
	WorkingDir string   `yaml:"working_dir"`
}
