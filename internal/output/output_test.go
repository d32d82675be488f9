/*******************************************************************************
* Copyright 2025 The ufdsadm authors
* SPDX-License-Identifier: GPL-3.0-only
* Refer to the file "LICENSE" for details.
*******************************************************************************/

package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sapcc/go-bits/assert"
	"github.com/ufds-tools/ufdsadm/internal/test"
)

func TestLDIF(t *testing.T) {
	var buf bytes.Buffer
	err := LDIF(&buf, "uuid=123,ou=users,o=smartdc", map[string][]string{
		"login":       {"bob"},
		"allowed_dcs": {"east", "west"},
	})
	test.ExpectNoError(t, err)

	expected := strings.Join([]string{
		"dn: uuid=123,ou=users,o=smartdc",
		"allowed_dcs: east",
		"allowed_dcs: west",
		"login: bob",
		"",
	}, "\n")
	assert.DeepEqual(t, "ldif output", buf.String(), expected)
}

func TestParseColumns(t *testing.T) {
	assert.DeepEqual(t, "plain", ParseColumns("login,email"), []string{"login", "email"})
	assert.DeepEqual(t, "spaced", ParseColumns(" login , email "), []string{"login", "email"})
	assert.DeepEqual(t, "empty segments", ParseColumns("login,,email,"), []string{"login", "email"})
	if ParseColumns("") != nil {
		t.Error("expected nil for an empty spec")
	}
}

func TestSortRows(t *testing.T) {
	rows := []map[string]string{
		{"login": "carol", "email": "c@x"},
		{"login": "alice", "email": "a@x"},
		{"login": "bob", "email": "b@x"},
	}

	SortRows(rows, []string{"login"})
	assert.DeepEqual(t, "ascending", rows[0]["login"], "alice")

	SortRows(rows, []string{"-login"})
	assert.DeepEqual(t, "descending", rows[0]["login"], "carol")
}

func TestSortRowsTieBreaking(t *testing.T) {
	rows := []map[string]string{
		{"company": "acme", "login": "zed"},
		{"company": "acme", "login": "amy"},
	}

	// equal primary keys keep their pre-existing order (stable sort)
	SortRows(rows, []string{"company"})
	assert.DeepEqual(t, "first row", rows[0]["login"], "zed")

	// a secondary key breaks the tie
	SortRows(rows, []string{"company", "login"})
	assert.DeepEqual(t, "first row", rows[0]["login"], "amy")
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	rows := []map[string]string{
		{"login": "bob", "email": "bob@example.com"},
		{"login": "alice"},
	}
	err := Table(&buf, []string{"login", "email"}, rows, true)
	test.ExpectNoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.DeepEqual(t, "line count", len(lines), 3)
	if !strings.HasPrefix(lines[0], "LOGIN") {
		t.Errorf("expected an uppercased header, got %q", lines[0])
	}
	if !strings.Contains(lines[2], "-") {
		t.Errorf("expected missing cells to print as \"-\", got %q", lines[2])
	}

	buf.Reset()
	err = Table(&buf, []string{"login"}, rows, false)
	test.ExpectNoError(t, err)
	assert.DeepEqual(t, "headerless output", buf.String(), "bob\nalice\n")
}
