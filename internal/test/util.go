/*******************************************************************************
* Copyright 2025 The ufdsadm authors
* SPDX-License-Identifier: GPL-3.0-only
* Refer to the file "LICENSE" for details.
*******************************************************************************/

// Package test contains shared helpers for unit tests.
package test

import (
	"testing"

	"github.com/sapcc/go-bits/errext"
)

// ExpectNoError fails the test if err is not nil.
func ExpectNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Error(err.Error())
	}
}

// ExpectError fails the test unless err is non-nil and has exactly the given
// message.
func ExpectError(t *testing.T, err error, message string) {
	t.Helper()
	if err == nil {
		t.Errorf("expected error %q, got none", message)
		return
	}
	if err.Error() != message {
		t.Errorf("expected error %q, got %q", message, err.Error())
	}
}

// ExpectNoErrors fails the test if errs is not empty.
func ExpectNoErrors(t *testing.T, errs errext.ErrorSet) {
	t.Helper()
	for _, err := range errs {
		t.Error(err.Error())
	}
}
