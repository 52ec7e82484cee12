// Package sankey turns a funnel result into the node/link structure of a
// Sankey flow diagram and renders it as a self-contained HTML page. Node 0
// is always the root "Total Responses" node; every stage contributes one
// node per named category plus one residual node, and every edge carries the
// child node's count, so the diagram balances by construction.
package sankey
