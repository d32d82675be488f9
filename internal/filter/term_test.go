/*******************************************************************************
* Copyright 2025 The ufdsadm authors
* SPDX-License-Identifier: GPL-3.0-only
* Refer to the file "LICENSE" for details.
*******************************************************************************/

package filter

import (
	"testing"

	"github.com/sapcc/go-bits/assert"
	"github.com/ufds-tools/ufdsadm/internal/test"
)

func TestParseTermExpressions(t *testing.T) {
	testCases := []struct {
		term     string
		field    string
		operator Operator
		value    string
	}{
		{"login=admin", "login", OpEqual, "admin"},
		{"login!=admin", "login", OpNotEqual, "admin"},
		{"created_at>=2024-01-01", "created_at", OpGreaterOrEqual, "2024-01-01"},
		{"created_at<=2024-12-31", "created_at", OpLessOrEqual, "2024-12-31"},
		// the value is everything after the operator, even more "=" signs
		{"login=a=b", "login", OpEqual, "a=b"},
		// an empty value is the parser's problem to accept; the builder
		// decides what it means
		{"login=", "login", OpEqual, ""},
	}

	for _, tc := range testCases {
		parsed, err := ParseTerm(tc.term)
		test.ExpectNoError(t, err)
		if parsed.Expr == nil {
			t.Errorf("term %q: expected a field expression, got bare term %q", tc.term, parsed.Bare)
			continue
		}
		assert.DeepEqual(t, "field of "+tc.term, parsed.Expr.Field, tc.field)
		assert.DeepEqual(t, "operator of "+tc.term, parsed.Expr.Operator, tc.operator)
		assert.DeepEqual(t, "value of "+tc.term, parsed.Expr.Value, tc.value)
	}
}

func TestParseTermBare(t *testing.T) {
	// none of these contain `identifier operator value`, so all are bare
	for _, term := range []string{"jane", "jane@example.com", "7729204c", "=admin", "!weird"} {
		parsed, err := ParseTerm(term)
		test.ExpectNoError(t, err)
		if parsed.Expr != nil {
			t.Errorf("term %q: expected a bare term, got expression on field %q", term, parsed.Expr.Field)
			continue
		}
		assert.DeepEqual(t, "bare term", parsed.Bare, term)
	}
}

func TestParseTermRejectedOperators(t *testing.T) {
	testCases := []struct {
		term    string
		message string
	}{
		{"foo==bar", `operator "==" is not supported: use "=" instead`},
		{"created_at<2024", `operator "<" is not supported: use "<=" instead`},
		{"created_at>2024", `operator ">" is not supported: use ">=" instead`},
	}

	for _, tc := range testCases {
		_, err := ParseTerm(tc.term)
		test.ExpectError(t, err, tc.message)
	}
}
