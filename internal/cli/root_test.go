/*******************************************************************************
* Copyright 2025 The ufdsadm authors
* SPDX-License-Identifier: GPL-3.0-only
* Refer to the file "LICENSE" for details.
*******************************************************************************/

package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sapcc/go-bits/assert"
	"github.com/ufds-tools/ufdsadm/internal/directory"
	"github.com/ufds-tools/ufdsadm/internal/filter"
	"github.com/ufds-tools/ufdsadm/internal/test"
)

func TestExitCodes(t *testing.T) {
	testCases := []struct {
		err      error
		expected int
	}{
		{usageErrorf("bad arguments"), 2},
		{&filter.UnsupportedOperatorError{Operator: "==", Replacement: filter.OpEqual}, 2},
		{&filter.UnknownFieldError{Field: "bogus"}, 2},
		{&filter.TypeCoercionError{Field: "registered_developer", Value: "maybe"}, 2},
		{&directory.NoSuchUserError{Identifier: "bob"}, 3},
		{&directory.NoSuchKeyError{User: "bob", Key: "laptop"}, 3},
		{&directory.NoSuchAttributeError{Attribute: "phone"}, 3},
		{&directory.NoSuchValueError{Attribute: "allowed_dcs", Value: "east"}, 3},
		{&directory.APIError{StatusCode: 50, Code: "Insufficient Access Rights"}, 1},
		{errors.New("connection refused"), 1},
		// wrapped variants must still be recognized
		{fmt.Errorf("searching: %w", &directory.NoSuchUserError{Identifier: "bob"}), 3},
	}

	for _, tc := range testCases {
		assert.DeepEqual(t, "exit code for "+tc.err.Error(), exitCode(tc.err), tc.expected)
	}
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("UFDS_URL", "")
	value, err := envOrDefault("UFDS_URL")
	test.ExpectNoError(t, err)
	assert.DeepEqual(t, "default", value, "ldaps://localhost:636")

	t.Setenv("UFDS_URL", "ldap://ufds.coal.example.com:389")
	value, err = envOrDefault("UFDS_URL")
	test.ExpectNoError(t, err)
	assert.DeepEqual(t, "override", value, "ldap://ufds.coal.example.com:389")

	t.Setenv("UFDS_URL", "http://nope")
	_, err = envOrDefault("UFDS_URL")
	if err == nil {
		t.Error("expected a validation error for a non-LDAP URL")
	}

	t.Setenv("UFDS_BASE_DN", "o=smartdc")
	value, err = envOrDefault("UFDS_BASE_DN")
	test.ExpectNoError(t, err)
	assert.DeepEqual(t, "base dn", value, "o=smartdc")

	t.Setenv("UFDS_BASE_DN", "not a dn")
	_, err = envOrDefault("UFDS_BASE_DN")
	if err == nil {
		t.Error("expected a validation error for a malformed base DN")
	}
}

func TestArgValidators(t *testing.T) {
	exact := exactArgs(1, "need exactly one login or UUID")
	test.ExpectNoError(t, exact(nil, []string{"bob"}))
	err := exact(nil, nil)
	test.ExpectError(t, err, "need exactly one login or UUID (got 0 arguments)")
	assert.DeepEqual(t, "usage exit code", exitCode(err), 2)

	minimum := minimumArgs(1, "need at least one search term")
	test.ExpectNoError(t, minimum(nil, []string{"jane", "doe"}))
	err = minimum(nil, nil)
	test.ExpectError(t, err, "need at least one search term (got 0 arguments)")
	assert.DeepEqual(t, "usage exit code", exitCode(err), 2)
}
