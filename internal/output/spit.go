// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"time"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/staranto/aclctl/internal/config"
	"github.com/staranto/aclctl/internal/dates"
)

// Formats are the accepted --output values.
var Formats = []string{"text", "json", "yaml", "raw"}

var ErrUnknownOutput = errors.New("unknown output format")

// emptyCell stands in for a missing value in text output.
const emptyCell = "-"

// Options steer SliceDiceSpit. They are usually read off the command flags.
type Options struct {
	Output   string
	Filter   string
	Sort     string
	Titles   bool
	Color    bool
	Local    bool
	Relative bool
	// Now is the reference for relative times; defaults to time.Now.
	Now func() time.Time
}

// OptionsFromCommand reads the output flags off cmd.
func OptionsFromCommand(cmd *cli.Command) Options {
	return Options{
		Output:   cmd.String("output"),
		Filter:   cmd.String("filter"),
		Sort:     cmd.String("sort"),
		Titles:   cmd.Bool("titles"),
		Color:    cmd.Bool("color"),
		Local:    cmd.Bool("local"),
		Relative: cmd.Bool("relative"),
	}
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// SliceDiceSpit orchestrates filtering, sorting and rendering of a JSON
// dataset according to opts. raw is either an array of rows or a single
// object.
func SliceDiceSpit(raw []byte, cols Columns, opts Options, w io.Writer) error {
	// If raw, just dump it and go home.
	if opts.Output == "raw" {
		_, err := w.Write(raw)
		return err
	}

	if !gjson.ValidBytes(raw) {
		return errors.New("dataset is not valid JSON")
	}

	rows := FilterDataset(gjson.ParseBytes(raw), cols, opts.Filter)
	SortDataset(rows, opts.Sort)
	log.Debugf("emitting %d rows as %q", len(rows), opts.Output)

	switch opts.Output {
	case "json":
		localize(rows, cols, opts)
		out, err := json.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "yaml":
		localize(rows, cols, opts)
		out, err := yaml.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	case "text", "":
		return TableWriter(rows, cols, opts, w)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOutput, opts.Output)
	}
}

// localize rewrites time columns in the local zone when --local is set.
func localize(rows []map[string]interface{}, cols Columns, opts Options) {
	if !opts.Local {
		return
	}
	for _, row := range rows {
		for _, c := range cols {
			if c.Kind != KindTime {
				continue
			}
			if t, ok := parseTime(row[c.OutputKey]); ok {
				row[c.OutputKey] = t.Local().Format(time.RFC3339)
			}
		}
	}
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options.
func TableWriter(resultSet []map[string]interface{}, cols Columns, opts Options, w io.Writer) error {
	if len(resultSet) == 0 {
		return nil
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	pad, _ := config.GetInt("padding", 2)

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(cols))
		for _, c := range cols {
			if !c.Include {
				continue
			}
			row = append(row, formatCell(result[c.OutputKey], c, opts))
		}
		rows = append(rows, row)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(cols.Headers()...).BorderHeader(false)
	}

	_, err := fmt.Fprintln(w, t)
	return err
}

// formatCell renders one value for text output.
func formatCell(value interface{}, c Column, opts Options) string {
	switch c.Kind {
	case KindNumber:
		if f, ok := toFloat(value); ok {
			return humanize.Comma(int64(f))
		}
	case KindTime:
		if t, ok := parseTime(value); ok {
			if opts.Relative {
				return humanize.RelTime(t, opts.now(), "ago", "from now")
			}
			if opts.Local {
				t = t.Local()
			}
			return dates.Display(t)
		}
	}
	return InterfaceToString(value, emptyCell)
}

// parseTime accepts RFC 3339 strings and epoch milliseconds.
func parseTime(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		return t, err == nil
	case float64:
		return time.UnixMilli(int64(v)), true
	default:
		return time.Time{}, false
	}
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}

// DumpExamples renders a table of example command usages.
func DumpExamples(w io.Writer, examples [][2]string) {
	if len(examples) == 0 {
		return
	}

	var rows [][]string
	for _, ex := range examples {
		rows = append(rows, []string{ex[0], ex[1]})
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		Headers("Command", "Description").
		BorderHeader(false).
		Rows(rows...)

	fmt.Fprintln(w, t)
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		// Sizes and counts are whole numbers.
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}
