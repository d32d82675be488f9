/*******************************************************************************
* Copyright 2025 The ufdsadm authors
* SPDX-License-Identifier: GPL-3.0-only
* Refer to the file "LICENSE" for details.
*******************************************************************************/

// Package output renders command results as JSON, LDIF or columns.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

// JSON writes v as indented JSON followed by a newline.
func JSON(w io.Writer, v any) error {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(buf))
	return err
}

// LDIF writes one entry in LDIF-like form: the dn line, then one line per
// attribute value, attributes sorted for stable output.
func LDIF(w io.Writer, dn string, attrs map[string][]string) error {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	if _, err := fmt.Fprintf(w, "dn: %s\n", dn); err != nil {
		return err
	}
	for _, name := range names {
		for _, value := range attrs[name] {
			if _, err := fmt.Fprintf(w, "%s: %s\n", name, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// ParseColumns splits a "-o login,email" style column spec.
func ParseColumns(spec string) []string {
	var columns []string
	for _, col := range strings.Split(spec, ",") {
		col = strings.TrimSpace(col)
		if col != "" {
			columns = append(columns, col)
		}
	}
	return columns
}

// SortRows orders rows by the given fields in turn. A leading "-" on a field
// sorts it descending. The sort is stable so that the pre-existing order
// breaks ties.
func SortRows(rows []map[string]string, fields []string) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, field := range fields {
			descending := strings.HasPrefix(field, "-")
			name := strings.TrimPrefix(field, "-")
			left, right := rows[i][name], rows[j][name]
			if left == right {
				continue
			}
			if descending {
				return left > right
			}
			return left < right
		}
		return false
	})
}

// Table writes rows as aligned columns. Header names print uppercased;
// missing cells print as "-".
func Table(w io.Writer, columns []string, rows []map[string]string, showHeader bool) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	if showHeader {
		headers := make([]string, len(columns))
		for idx, col := range columns {
			headers[idx] = strings.ToUpper(col)
		}
		fmt.Fprintln(tw, strings.Join(headers, "\t"))
	}

	for _, row := range rows {
		cells := make([]string, len(columns))
		for idx, col := range columns {
			cell := row[col]
			if cell == "" {
				cell = "-"
			}
			cells[idx] = cell
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	return tw.Flush()
}
