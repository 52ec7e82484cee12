package sankey

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairflow/internal/dataset"
	"fairflow/internal/funnel"
)

func sampleDefinition() funnel.Definition {
	return funnel.Definition{
		Name:     "fair-fares",
		SkipRows: 0,
		Stages: []funnel.Stage{
			{Name: "awareness", Column: dataset.ByName("Aware"), Categories: []string{"Yes", "No"}, Continue: "Yes"},
			{Name: "application", Column: dataset.ByName("Applied"), Categories: []string{"Yes", "No"}},
		},
	}
}

func sampleFlow(t *testing.T) *Flow {
	t.Helper()

	def := sampleDefinition()
	d := dataset.New([]string{"Aware", "Applied"}, [][]string{
		{"Yes", "Yes"},
		{"Yes", "No"},
		{"Yes", ""},
		{"No", ""},
		{"", ""},
	})

	result, err := funnel.NewAggregator(nil).Aggregate(context.Background(), d, def)
	require.NoError(t, err)

	flow, err := Build(result, def)
	require.NoError(t, err)
	return flow
}

func TestBuildNodeLayout(t *testing.T) {
	flow := sampleFlow(t)

	require.NotEmpty(t, flow.Nodes)
	assert.Equal(t, "Total Responses", flow.Nodes[0].Label, "node 0 is always the root")

	labels := make([]string, len(flow.Nodes))
	for i, n := range flow.Nodes {
		labels[i] = n.Label
	}
	assert.Equal(t, []string{
		"Total Responses",
		"Awareness: Yes",
		"Awareness: No",
		"Awareness: No Response",
		"Application: Yes",
		"Application: No",
		"Application: No Response",
	}, labels)
}

func TestBuildEdgesBalance(t *testing.T) {
	flow := sampleFlow(t)

	// Outflow of the root node equals the grand total.
	rootOut := 0
	for _, l := range flow.Links {
		if l.Source == 0 {
			rootOut += l.Value
		}
	}
	assert.Equal(t, 5, rootOut)

	// Outflow of the awareness continue node equals its inflow.
	awareIdx := 1
	var in, out int
	for _, l := range flow.Links {
		if l.Target == awareIdx {
			in += l.Value
		}
		if l.Source == awareIdx {
			out += l.Value
		}
	}
	assert.Equal(t, 3, in)
	assert.Equal(t, in, out, "every stage's outflow sums exactly to its inflow")
}

func TestBuildStageMismatch(t *testing.T) {
	def := sampleDefinition()

	result, err := funnel.NewAggregator(nil).Aggregate(context.Background(),
		dataset.New([]string{"Aware", "Applied"}, nil), def)
	require.NoError(t, err)

	short := def
	short.Stages = short.Stages[:1]
	_, err = Build(result, short)
	require.Error(t, err)
}

func TestPercentGuardsEmptyDenominator(t *testing.T) {
	assert.Equal(t, 0.0, Percent(0, 0))
	assert.Equal(t, 0.0, Percent(5, 0))
	assert.InDelta(t, 40.0, Percent(2, 5), 1e-9)
}

func TestWriteHTML(t *testing.T) {
	flow := sampleFlow(t)

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, flow))

	html := buf.String()
	assert.Contains(t, html, "Plotly.newPlot")
	assert.Contains(t, html, "Total Responses")
	assert.Contains(t, html, `"sankey"`)
}
