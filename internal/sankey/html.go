package sankey

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
)

// pageTemplate embeds the flow as Plotly Sankey traces, matching the layout
// of the survey team's exported diagrams.
var pageTemplate = template.Must(template.New("sankey").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://cdn.plot.ly/plotly-2.35.2.min.js"></script>
</head>
<body>
<div id="sankey" style="width:1000px;height:800px;"></div>
<script>
var data = [{
	type: "sankey",
	node: {
		pad: 15,
		thickness: 20,
		line: {color: "black", width: 0.5},
		label: {{.NodeLabels}}
	},
	link: {
		source: {{.Sources}},
		target: {{.Targets}},
		value: {{.Values}},
		label: {{.LinkLabels}}
	}
}];
var layout = {title: {text: {{.TitleJS}}}, font: {size: 12}};
Plotly.newPlot("sankey", data, layout);
</script>
</body>
</html>
`))

type pageData struct {
	Title      string
	TitleJS    template.JS
	NodeLabels template.JS
	Sources    template.JS
	Targets    template.JS
	Values     template.JS
	LinkLabels template.JS
}

// WriteHTML renders the flow as a standalone HTML page.
func WriteHTML(w io.Writer, flow *Flow) error {
	labels := make([]string, len(flow.Nodes))
	for i, n := range flow.Nodes {
		labels[i] = n.Label
	}

	sources := make([]int, len(flow.Links))
	targets := make([]int, len(flow.Links))
	values := make([]int, len(flow.Links))
	linkLabels := make([]string, len(flow.Links))
	for i, l := range flow.Links {
		sources[i] = l.Source
		targets[i] = l.Target
		values[i] = l.Value
		linkLabels[i] = l.Label
	}

	data := pageData{Title: flow.Title}
	for _, field := range []struct {
		dst *template.JS
		src interface{}
	}{
		{&data.TitleJS, flow.Title},
		{&data.NodeLabels, labels},
		{&data.Sources, sources},
		{&data.Targets, targets},
		{&data.Values, values},
		{&data.LinkLabels, linkLabels},
	} {
		encoded, err := json.Marshal(field.src)
		if err != nil {
			return fmt.Errorf("failed to encode diagram data: %w", err)
		}
		*field.dst = template.JS(encoded)
	}

	return pageTemplate.Execute(w, data)
}

// WriteHTMLFile renders the flow to a file on disk.
func WriteHTMLFile(path string, flow *Flow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteHTML(f, flow); err != nil {
		return err
	}
	return f.Close()
}
