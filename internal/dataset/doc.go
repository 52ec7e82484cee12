// Package dataset provides the tabular source layer for survey analysis.
// It materializes a rectangular, immutable Dataset (ordered rows over a
// fixed column schema) from Excel workbooks, CSV files, or Google Sheets,
// applying the survey's header-skip offset before any row is visible.
//
// Columns are addressed through ColumnRef: name-based lookup first, with an
// explicit positional index as the documented fallback for exports whose
// header text changes between survey revisions.
//
// Missing cells are represented as empty strings, never by absent keys, so
// every row exposes the complete column set.
package dataset
