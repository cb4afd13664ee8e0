package process

import (
	"bytes"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/rfielding/modalmu/formula"
)

var validate = validator.New()

// File is the YAML layout of a model file.
type File struct {
	Name       string        `yaml:"name" validate:"required"`
	Initial    string        `yaml:"initial" validate:"required"`
	Processes  []ProcessSpec `yaml:"processes" validate:"required,min=1,dive"`
	Properties []Property    `yaml:"properties" validate:"dive"`
}

// ProcessSpec is one process of a model file.
type ProcessSpec struct {
	Name         string       `yaml:"name" validate:"required"`
	Propositions []string     `yaml:"propositions" validate:"dive,required"`
	Rules        [][]StepSpec `yaml:"rules" validate:"dive,min=1,dive"`
}

// StepSpec is one step of a rule in a model file.
type StepSpec struct {
	Action string `yaml:"action" validate:"required_without=Call,excluded_with=Call"`
	Kind   string `yaml:"kind" validate:"omitempty,oneof=may must"`
	Call   string `yaml:"call"`
}

// Property is a named formula with the verdict the model is expected to
// give for it. Expect is nil when no verdict is recorded.
type Property struct {
	Name        string       `yaml:"name" validate:"required"`
	Description string       `yaml:"description"`
	Expect      *bool        `yaml:"expect"`
	Formula     formula.YAML `yaml:"formula" validate:"-"`
}

// LoadFile reads a model file from disk.
func LoadFile(path string) (*Model, []Property, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading model %s", path)
	}
	m, props, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "loading model %s", path)
	}
	return m, props, nil
}

// Load decodes, validates and builds a model from YAML.
func Load(r io.Reader) (*Model, []Property, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, nil, errors.Wrap(err, "decoding model")
	}
	m, err := f.Model()
	if err != nil {
		return nil, nil, err
	}
	return m, f.Properties, nil
}

// Model validates the file and builds the process system it describes.
func (f *File) Model() (*Model, error) {
	if err := validate.Struct(f); err != nil {
		return nil, errors.Wrap(err, "validating model")
	}
	for _, p := range f.Properties {
		if p.Formula.Formula == nil {
			return nil, errors.Errorf("property %s has no formula", p.Name)
		}
	}

	m := NewModel(f.Name, f.Initial)
	for _, ps := range f.Processes {
		if _, dup := m.Lookup(ps.Name); dup {
			return nil, systemError(ps.Name, -1, -1, "defined more than once")
		}
		d := m.Define(ps.Name, ps.Propositions...)
		for i, rs := range ps.Rules {
			rule := make([]Step, 0, len(rs))
			for j, s := range rs {
				if s.Call != "" {
					rule = append(rule, Call(s.Call))
					continue
				}
				kind, err := ParseKind(s.Kind)
				if err != nil {
					return nil, systemError(ps.Name, i, j, "%v", err)
				}
				rule = append(rule, Act(s.Action, kind))
			}
			d.Rule(rule...)
		}
	}
	if err := Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}
