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

func TestBuildScenarios(t *testing.T) {
	testCases := []struct {
		terms    []string
		expected string
	}{
		{
			[]string{"login=admin"},
			"(&(objectclass=sdcperson)(login=admin))",
		},
		{
			[]string{"jane"},
			"(&(objectclass=sdcperson)(|(login=*jane*)(uuid=jane)(cn=*jane*)(email=*jane*)))",
		},
		{
			[]string{"email=*@joyent.com"},
			"(&(objectclass=sdcperson)(email=*@joyent.com))",
		},
		{
			[]string{"registered_developer=true"},
			"(&(objectclass=sdcperson)(registered_developer=true))",
		},
		{
			[]string{"approved_for_provisioning=false"},
			"(&(objectclass=sdcperson)(approved_for_provisioning=false))",
		},
		// substring splitting: prefix, infixes, suffix
		{
			[]string{"cn=a*b*c"},
			"(&(objectclass=sdcperson)(cn=a*b*c))",
		},
		// runs of asterisks collapse into one split point
		{
			[]string{"cn=a**c"},
			"(&(objectclass=sdcperson)(cn=a*c))",
		},
		// negation wraps the whole term predicate
		{
			[]string{"login!=admin"},
			"(&(objectclass=sdcperson)(!(login=admin)))",
		},
		{
			[]string{"email!=*@joyent.com"},
			"(&(objectclass=sdcperson)(!(email=*@joyent.com)))",
		},
		// ordering operators
		{
			[]string{"created_at>=2024-01-01"},
			"(&(objectclass=sdcperson)(created_at>=2024-01-01))",
		},
		{
			[]string{"pwdendtime<=20250101000000Z"},
			"(&(objectclass=sdcperson)(pwdendtime<=20250101000000Z))",
		},
		// array fields: one equality per comma-separated element, conjoined
		// at the active parent level
		{
			[]string{"allowed_dcs=east,west"},
			"(&(objectclass=sdcperson)(allowed_dcs=east)(allowed_dcs=west))",
		},
		{
			[]string{"allowed_dcs!=east,west"},
			"(&(objectclass=sdcperson)(!(&(allowed_dcs=east)(allowed_dcs=west))))",
		},
		{
			[]string{"allowed_dcs!=east"},
			"(&(objectclass=sdcperson)(!(allowed_dcs=east)))",
		},
		// multiple terms are conjuncts of the one outer AND
		{
			[]string{"jane", "registered_developer=true"},
			"(&(objectclass=sdcperson)(|(login=*jane*)(uuid=jane)(cn=*jane*)(email=*jane*))(registered_developer=true))",
		},
	}

	for _, tc := range testCases {
		root, _, err := Build(tc.terms)
		test.ExpectNoError(t, err)
		assert.DeepEqual(t, "filter for "+tc.terms[0], root.String(), tc.expected)
	}
}

func TestBuildObjectClassIsAlwaysFirst(t *testing.T) {
	root, _, err := Build([]string{"login=admin", "jane", "registered_developer=true"})
	test.ExpectNoError(t, err)

	first, ok := root.Nodes[0].(*Equality)
	if !ok {
		t.Fatalf("expected the first conjunct to be an equality, got %T", root.Nodes[0])
	}
	assert.DeepEqual(t, "pinned field", first.Field, "objectclass")
	assert.DeepEqual(t, "pinned value", first.Value, ObjectClass)
}

func TestBuildSubstringShape(t *testing.T) {
	root, _, err := Build([]string{"cn=a*b*c"})
	test.ExpectNoError(t, err)

	substring, ok := root.Nodes[1].(*Substring)
	if !ok {
		t.Fatalf("expected a substring predicate, got %T", root.Nodes[1])
	}
	assert.DeepEqual(t, "prefix", substring.Prefix, "a")
	assert.DeepEqual(t, "infixes", substring.Infixes, []string{"b"})
	assert.DeepEqual(t, "suffix", substring.Suffix, "c")
}

func TestBuildFirstBareTerm(t *testing.T) {
	_, firstBare, err := Build([]string{"login=admin", "jane", "doe"})
	test.ExpectNoError(t, err)
	assert.DeepEqual(t, "first bare term", firstBare, "jane")

	_, firstBare, err = Build([]string{"login=admin"})
	test.ExpectNoError(t, err)
	assert.DeepEqual(t, "first bare term", firstBare, "")
}

func TestBuildErrors(t *testing.T) {
	testCases := []struct {
		terms   []string
		message string
	}{
		{[]string{"foo==bar"}, `operator "==" is not supported: use "=" instead`},
		{[]string{"created_at<2024"}, `operator "<" is not supported: use "<=" instead`},
		{[]string{"created_at>2024"}, `operator ">" is not supported: use ">=" instead`},
		{[]string{"bogus=1"}, `unknown search field "bogus"`},
		{[]string{"registered_developer=maybe"}, `field "registered_developer" requires a boolean value, got "maybe"`},
		{[]string{"approved_for_provisioning=1"}, `field "approved_for_provisioning" requires a boolean value, got "1"`},
		// a fatal term aborts the whole build, even as the last of many
		{[]string{"jane", "login=admin", "foo==bar"}, `operator "==" is not supported: use "=" instead`},
	}

	for _, tc := range testCases {
		root, _, err := Build(tc.terms)
		test.ExpectError(t, err, tc.message)
		if root != nil {
			t.Errorf("terms %v: expected no partial tree on error", tc.terms)
		}
	}
}
