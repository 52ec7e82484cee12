package funnel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairflow/internal/dataset"
)

func TestDefinitionValidate(t *testing.T) {
	valid := testDefinition()

	tests := []struct {
		name    string
		mutate  func(*Definition)
		wantErr string
	}{
		{
			name:   "canonical chain is valid",
			mutate: func(d *Definition) {},
		},
		{
			name:    "empty chain",
			mutate:  func(d *Definition) { d.Stages = nil },
			wantErr: "Stages",
		},
		{
			name:    "missing definition name",
			mutate:  func(d *Definition) { d.Name = "" },
			wantErr: "Name",
		},
		{
			name:    "negative skip rows",
			mutate:  func(d *Definition) { d.SkipRows = -1 },
			wantErr: "SkipRows",
		},
		{
			name:    "duplicate stage name",
			mutate:  func(d *Definition) { d.Stages[1].Name = d.Stages[0].Name },
			wantErr: "duplicate stage name",
		},
		{
			name:    "duplicate category within a stage",
			mutate:  func(d *Definition) { d.Stages[0].Categories = []string{"Yes", "Yes"} },
			wantErr: "twice",
		},
		{
			name:    "empty category",
			mutate:  func(d *Definition) { d.Stages[2].Categories = []string{"Accepted", ""} },
			wantErr: "empty category",
		},
		{
			name:    "non-terminal stage without continue",
			mutate:  func(d *Definition) { d.Stages[0].Continue = "" },
			wantErr: "no continue category",
		},
		{
			name:    "continue outside the category set",
			mutate:  func(d *Definition) { d.Stages[2].Continue = "Approved" },
			wantErr: "not among its declared categories",
		},
		{
			name:   "terminal stage may omit continue",
			mutate: func(d *Definition) { d.Stages[3].Continue = "" },
		},
		{
			name:   "terminal stage may name a declared continue",
			mutate: func(d *Definition) { d.Stages[3].Continue = "Yes" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := valid
			def.Stages = append([]Stage(nil), valid.Stages...)
			tt.mutate(&def)

			err := def.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDefinition)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFairFaresDefinition(t *testing.T) {
	def := FairFares()

	require.NoError(t, def.Validate())
	assert.Equal(t, 8, def.SkipRows)
	require.Len(t, def.Stages, 4)
	assert.Equal(t, []string{StageAwareness, StageApplication, StageAcceptance, StageFinancialImpact},
		[]string{def.Stages[0].Name, def.Stages[1].Name, def.Stages[2].Name, def.Stages[3].Name})

	// The versioned positional fallbacks of the known export.
	for i, want := range []int{28, 29, 30, 31} {
		assert.Equal(t, want, def.Stages[i].Column.Index)
		assert.NotEmpty(t, def.Stages[i].Column.Name, "name-based lookup is primary")
	}
}

func TestLoadDefinition(t *testing.T) {
	raw := `name: fair-fares
skip_rows: 8
stages:
  - name: awareness
    column:
      name: Are you aware of the Fair Fares NYC program?
      index: 28
    categories: ["Yes", "No"]
    continue: "Yes"
  - name: application
    column:
      name: Have you applied for the Fair Fares NYC program?
    categories: ["Yes", "No"]
`
	path := filepath.Join(t.TempDir(), "funnel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	def, err := LoadDefinition(path)
	require.NoError(t, err)

	assert.Equal(t, "fair-fares", def.Name)
	assert.Equal(t, 8, def.SkipRows)
	require.Len(t, def.Stages, 2)
	assert.Equal(t, 28, def.Stages[0].Column.Index)
	assert.Equal(t, -1, def.Stages[1].Column.Index, "omitted index means no positional fallback")
	assert.Equal(t, "Yes", def.Stages[0].Continue)
}

func TestLoadDefinitionScalarColumns(t *testing.T) {
	raw := `name: shorthand
stages:
  - name: awareness
    column: Heard of program
    categories: ["Yes", "No"]
    continue: "Yes"
  - name: application
    column: 29
    categories: ["Yes", "No"]
`
	path := filepath.Join(t.TempDir(), "funnel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	def, err := LoadDefinition(path)
	require.NoError(t, err)

	require.Len(t, def.Stages, 2)
	assert.Equal(t, dataset.ByName("Heard of program"), def.Stages[0].Column)
	assert.Equal(t, dataset.ByIndex(29), def.Stages[1].Column)
}

func TestLoadDefinitionRejectsMalformedChain(t *testing.T) {
	raw := `name: broken
stages:
  - name: awareness
    column: {index: 28}
    categories: ["Yes", "No"]
    continue: Maybe
  - name: application
    column: {index: 29}
    categories: ["Yes", "No"]
`
	path := filepath.Join(t.TempDir(), "funnel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	_, err := LoadDefinition(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDefinition)
}

func TestMissingColumnErrorUnwraps(t *testing.T) {
	err := &MissingColumnError{
		Stage:  "awareness",
		Column: dataset.ByIndex(99),
		Err:    dataset.ErrColumnNotFound,
	}

	assert.ErrorIs(t, err, dataset.ErrColumnNotFound)
	assert.Contains(t, err.Error(), `"awareness"`)
	assert.Contains(t, err.Error(), "99")
}
