// Package funnel is the aggregation core of fairflow. It turns a tabular
// survey snapshot into a validated, additive funnel of response counts
// suitable for flow visualization.
//
// # Model
//
// A Definition is a strict linear chain of Stages. Each stage names a
// selector column, the outcome categories to tabulate, and the single
// "continue" category whose rows feed the next stage. The root stage's
// eligible set is the whole dataset; every later stage sees exactly the rows
// that answered the parent's continue category.
//
// Counting uses exact, case-sensitive value equality, reproducing the
// survey's literal response codes ("Yes", "No", "Accepted", "Rejected",
// "Pending"). Rows that reach a stage but give no codeable answer, whether
// blank or off-taxonomy free text, fall into the stage's residual bucket, so
// every stage's outflow sums exactly to its inflow and a downstream Sankey
// diagram balances.
//
// # Failure semantics
//
// Aggregation is all-or-nothing per call: a malformed chain is rejected as
// ErrInvalidDefinition before any row is scanned, and an unresolvable
// selector column aborts the call with a MissingColumnError. A partial
// funnel is never returned, since it cannot be rendered as a balanced flow.
package funnel
