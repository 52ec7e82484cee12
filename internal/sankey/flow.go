package sankey

import (
	"fmt"
	"strings"

	"fairflow/internal/funnel"
	"fairflow/pkg/contracts/domain"
)

// Node is one labeled box of the diagram.
type Node struct {
	Label string `json:"label"`
}

// Link is one weighted edge between nodes, addressed by node position.
type Link struct {
	Source int    `json:"source"`
	Target int    `json:"target"`
	Value  int    `json:"value"`
	Label  string `json:"label"`
}

// Flow is the complete renderable diagram structure.
type Flow struct {
	Title string `json:"title"`
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// residualLabel is the wording the survey reports use for the residual
// bucket of every stage.
const residualLabel = "No Response"

// Build assembles the flow diagram from one funnel result and the
// definition that produced it. The definition supplies stage ordering and
// the continue categories that anchor each stage's inflow edge.
func Build(result *domain.FunnelResult, def funnel.Definition) (*Flow, error) {
	if result == nil {
		return nil, fmt.Errorf("funnel result is nil")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if len(result.Stages) != len(def.Stages) {
		return nil, fmt.Errorf("funnel result has %d stages, definition %q has %d",
			len(result.Stages), def.Name, len(def.Stages))
	}

	flow := &Flow{
		Title: fmt.Sprintf("%s application flow", def.Name),
		Nodes: []Node{{Label: "Total Responses"}},
	}

	// source is the node the current stage's edges fan out from: the root
	// node first, then the previous stage's continue-category node.
	source := 0

	for i, sr := range result.Stages {
		stage := def.Stages[i]
		if sr.Stage != stage.Name {
			return nil, fmt.Errorf("stage order mismatch: result has %q where definition %q expects %q",
				sr.Stage, def.Name, stage.Name)
		}

		nextSource := -1
		for _, cat := range sr.Categories {
			idx := flow.addNode(stageLabel(stage.Name, cat.Category))
			flow.Links = append(flow.Links, Link{
				Source: source,
				Target: idx,
				Value:  cat.Count,
				Label:  fmt.Sprintf("%d %s", cat.Count, cat.Category),
			})
			if stage.Continue != "" && cat.Category == stage.Continue {
				nextSource = idx
			}
		}

		idx := flow.addNode(stageLabel(stage.Name, residualLabel))
		flow.Links = append(flow.Links, Link{
			Source: source,
			Target: idx,
			Value:  sr.Residual,
			Label:  fmt.Sprintf("%d %s", sr.Residual, residualLabel),
		})

		if i < len(result.Stages)-1 {
			if nextSource < 0 {
				return nil, fmt.Errorf("stage %q continue category %q has no node", stage.Name, stage.Continue)
			}
			source = nextSource
		}
	}

	return flow, nil
}

func (f *Flow) addNode(label string) int {
	f.Nodes = append(f.Nodes, Node{Label: label})
	return len(f.Nodes) - 1
}

// stageLabel renders a stage/category pair for display, turning stage
// identifiers like "financial_impact" into "Financial Impact: Yes".
func stageLabel(stage, category string) string {
	words := strings.Split(stage, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ") + ": " + category
}

// Percent is the percentage helper for report and diagram annotations. An
// empty denominator reports 0 rather than NaN so empty stages render
// cleanly.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
