package funnel

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	"fairflow/internal/dataset"
)

var (
	// ErrInvalidDefinition is returned when a stage chain is malformed. It
	// is always detected before any row scan.
	ErrInvalidDefinition = errors.New("invalid funnel definition")
)

// validate holds the shared struct validator, mirroring the request
// validation setup used at the HTTP boundary.
var structValidate = validator.New()

// Stage describes one step of the funnel chain.
type Stage struct {
	// Name identifies the stage in results, logs, and reports.
	Name string `yaml:"name" json:"name" validate:"required"`
	// Column selects the survey question answered at this stage.
	Column dataset.ColumnRef `yaml:"column" json:"column"`
	// Categories are the codeable answers tabulated at this stage, in
	// display order. Anything else lands in the residual bucket.
	Categories []string `yaml:"categories" json:"categories" validate:"required,min=1"`
	// Continue is the category whose rows remain eligible for the next
	// stage. Required for every stage except the last.
	Continue string `yaml:"continue" json:"continue,omitempty"`
}

// Definition is the ordered, validated chain of stages driving one
// aggregation run.
type Definition struct {
	Name string `yaml:"name" json:"name" validate:"required"`
	// SkipRows records the header offset of the source export this
	// definition was written against, so loaders and definition travel
	// together instead of scattering literals.
	SkipRows int     `yaml:"skip_rows" json:"skip_rows" validate:"min=0"`
	Stages   []Stage `yaml:"stages" json:"stages" validate:"required,min=1,dive"`
}

// Validate rejects malformed chains: duplicate stage names, duplicate
// categories within a stage, or a non-terminal stage whose continue
// category is missing from its declared category set.
func (d Definition) Validate() error {
	if err := structValidate.Struct(d); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}

	seen := make(map[string]struct{}, len(d.Stages))
	for i, stage := range d.Stages {
		if _, dup := seen[stage.Name]; dup {
			return fmt.Errorf("%w: duplicate stage name %q", ErrInvalidDefinition, stage.Name)
		}
		seen[stage.Name] = struct{}{}

		cats := make(map[string]struct{}, len(stage.Categories))
		for _, c := range stage.Categories {
			if c == "" {
				return fmt.Errorf("%w: stage %q has an empty category", ErrInvalidDefinition, stage.Name)
			}
			if _, dup := cats[c]; dup {
				return fmt.Errorf("%w: stage %q declares category %q twice", ErrInvalidDefinition, stage.Name, c)
			}
			cats[c] = struct{}{}
		}

		terminal := i == len(d.Stages)-1
		if stage.Continue == "" {
			if !terminal {
				return fmt.Errorf("%w: stage %q has no continue category but is followed by %q",
					ErrInvalidDefinition, stage.Name, d.Stages[i+1].Name)
			}
			continue
		}
		if _, ok := cats[stage.Continue]; !ok {
			return fmt.Errorf("%w: stage %q continue category %q is not among its declared categories",
				ErrInvalidDefinition, stage.Name, stage.Continue)
		}
	}

	return nil
}

// LoadDefinition reads a funnel definition from a YAML file and validates it.
func LoadDefinition(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("failed to read funnel definition: %w", err)
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidDefinition, path, err)
	}

	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// MissingColumnError reports that a stage's selector column could not be
// resolved against the dataset.
type MissingColumnError struct {
	Stage  string
	Column dataset.ColumnRef
	Err    error
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("stage %q: selector column %s cannot be resolved: %v", e.Stage, e.Column, e.Err)
}

func (e *MissingColumnError) Unwrap() error {
	return e.Err
}
