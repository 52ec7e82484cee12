package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrColumnNotFound is returned when a ColumnRef resolves to neither a
	// header name nor a valid positional index.
	ErrColumnNotFound = errors.New("column not found")

	// ErrSourceUnavailable is returned when the underlying file or remote
	// source cannot be read at all.
	ErrSourceUnavailable = errors.New("source unavailable")
)

// ColumnRef addresses one column of a Dataset. Name takes precedence; when
// the name is empty or absent from the header row, Index is used as the
// fallback. An Index of -1 disables the fallback.
type ColumnRef struct {
	Name  string `yaml:"name" json:"name"`
	Index int    `yaml:"index" json:"index"`
}

// UnmarshalYAML decodes a ColumnRef from either a plain scalar (a header
// name shorthand) or the mapping form, treating an omitted index as "no
// positional fallback" rather than column zero.
func (r *ColumnRef) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var scalar interface{}
	if err := unmarshal(&scalar); err == nil {
		switch v := scalar.(type) {
		case string:
			*r = ByName(v)
			return nil
		case int:
			*r = ByIndex(v)
			return nil
		}
		// Mappings and null fall through to the struct form.
	}

	var raw struct {
		Name  string `yaml:"name"`
		Index *int   `yaml:"index"`
	}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	r.Name = raw.Name
	r.Index = -1
	if raw.Index != nil {
		r.Index = *raw.Index
	}
	return nil
}

// ByName returns a ColumnRef that resolves by header name only.
func ByName(name string) ColumnRef {
	return ColumnRef{Name: name, Index: -1}
}

// ByIndex returns a ColumnRef that resolves by zero-based position only.
func ByIndex(i int) ColumnRef {
	return ColumnRef{Index: i}
}

// String renders the reference for error messages and logs.
func (r ColumnRef) String() string {
	if r.Name != "" {
		if r.Index >= 0 {
			return fmt.Sprintf("%q (index fallback %d)", r.Name, r.Index)
		}
		return fmt.Sprintf("%q", r.Name)
	}
	return fmt.Sprintf("index %d", r.Index)
}

// Dataset is an immutable rectangular snapshot of survey responses: an
// ordered header row plus ordered data rows, all sharing one column schema.
type Dataset struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New builds a Dataset from a header and data rows. Rows shorter than the
// header are padded with empty cells so the schema invariant holds; rows
// longer than the header are truncated. The inputs are copied.
func New(columns []string, rows [][]string) *Dataset {
	d := &Dataset{
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
		rows:    make([][]string, 0, len(rows)),
	}
	for i, name := range d.columns {
		// First occurrence wins for duplicate headers.
		if _, ok := d.index[name]; !ok {
			d.index[name] = i
		}
	}
	for _, row := range rows {
		normalized := make([]string, len(columns))
		copy(normalized, row)
		d.rows = append(d.rows, normalized)
	}
	return d
}

// RowCount returns the number of data rows.
func (d *Dataset) RowCount() int {
	return len(d.rows)
}

// Columns returns a copy of the header row.
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.columns...)
}

// Resolve maps a ColumnRef to a concrete column position.
func (d *Dataset) Resolve(ref ColumnRef) (int, error) {
	if ref.Name != "" {
		if i, ok := d.index[ref.Name]; ok {
			return i, nil
		}
	}
	if ref.Index >= 0 && ref.Index < len(d.columns) {
		return ref.Index, nil
	}
	return 0, fmt.Errorf("%w: %s (dataset has %d columns)", ErrColumnNotFound, ref, len(d.columns))
}

// Column returns the values of one column aligned with the data rows.
func (d *Dataset) Column(ref ColumnRef) ([]string, error) {
	i, err := d.Resolve(ref)
	if err != nil {
		return nil, err
	}
	values := make([]string, len(d.rows))
	for r, row := range d.rows {
		values[r] = row[i]
	}
	return values, nil
}

// Value returns the cell at the given row and resolved column position.
// Callers are expected to resolve the column once via Resolve.
func (d *Dataset) Value(row, col int) string {
	return d.rows[row][col]
}

// fromRaw applies the header-skip offset to raw sheet rows and builds the
// Dataset: after skipping skipRows rows, the next row is the header and
// everything below it is data. Mirrors how the survey exports are read.
func fromRaw(raw [][]string, skipRows int) (*Dataset, error) {
	if skipRows < 0 {
		return nil, fmt.Errorf("skip rows must not be negative, got %d", skipRows)
	}
	if len(raw) <= skipRows {
		return nil, fmt.Errorf("%w: only %d rows present, cannot skip %d and read a header",
			ErrSourceUnavailable, len(raw), skipRows)
	}
	header := raw[skipRows]
	return New(header, raw[skipRows+1:]), nil
}
