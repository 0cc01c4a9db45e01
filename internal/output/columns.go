// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

// Kind tells the text renderer how to format a column's values.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindTime
)

// Column maps a gjson path in each row to an output key.
type Column struct {
	// Key is the gjson path into a row.
	Key string
	// OutputKey names the value in json/yaml output and in the table header.
	// Filters and sort specs refer to columns by OutputKey.
	OutputKey string
	Kind      Kind
	// Include controls whether the column is shown in text output. Excluded
	// columns can still be filtered and sorted on.
	Include bool
}

type Columns []Column

// Lookup finds the column with the given output key.
func (cs Columns) Lookup(outputKey string) (Column, bool) {
	for _, c := range cs {
		if c.OutputKey == outputKey {
			return c, true
		}
	}
	return Column{}, false
}

// Headers returns the output keys of the included columns.
func (cs Columns) Headers() []string {
	var headers []string
	for _, c := range cs {
		if c.Include {
			headers = append(headers, c.OutputKey)
		}
	}
	return headers
}
