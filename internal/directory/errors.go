/*******************************************************************************
* Copyright 2025 The ufdsadm authors
* SPDX-License-Identifier: GPL-3.0-only
* Refer to the file "LICENSE" for details.
*******************************************************************************/

package directory

import (
	"errors"
	"fmt"

	goldap "github.com/go-ldap/ldap/v3"
)

// APIError is the tagged form of any error coming out of the directory
// server. It is populated at the adapter boundary so that callers match on
// fields instead of probing opaque error values.
type APIError struct {
	StatusCode int    // LDAP result code
	Code       string // machine-readable name of the result code
	Message    string
}

// Error implements the builtin error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("directory error %d (%s)", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("directory error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// wrapError converts a go-ldap error into an APIError. Non-LDAP errors (e.g.
// network failures) pass through unchanged.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	var ldapErr *goldap.Error
	if !errors.As(err, &ldapErr) {
		return err
	}
	code := int(ldapErr.ResultCode)
	apiErr := &APIError{
		StatusCode: code,
		Code:       goldap.LDAPResultCodeMap[ldapErr.ResultCode],
	}
	if ldapErr.Err != nil {
		apiErr.Message = ldapErr.Err.Error()
	}
	return apiErr
}

// IsPasswordPolicyError reports whether err is the directory rejecting a
// password for policy reasons. UFDS signals this as a constraint violation on
// the userpassword attribute.
func IsPasswordPolicyError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == goldap.LDAPResultConstraintViolation
}

// NoSuchUserError is returned when a login or UUID does not resolve to a user
// record.
type NoSuchUserError struct {
	Identifier string
}

// Error implements the builtin error interface.
func (e *NoSuchUserError) Error() string {
	return fmt.Sprintf("no such user: %q", e.Identifier)
}

// NoSuchKeyError is returned when a key name or fingerprint does not resolve
// to an SSH key on the given user.
type NoSuchKeyError struct {
	User string
	Key  string
}

// Error implements the builtin error interface.
func (e *NoSuchKeyError) Error() string {
	return fmt.Sprintf("user %q has no key %q", e.User, e.Key)
}

// NoSuchAttributeError is returned when an attribute delete targets an
// attribute that is not present on the entry.
type NoSuchAttributeError struct {
	Attribute string
}

// Error implements the builtin error interface.
func (e *NoSuchAttributeError) Error() string {
	return fmt.Sprintf("entry has no attribute %q", e.Attribute)
}

// NoSuchValueError is returned when an attribute delete targets a value that
// is not present on the attribute.
type NoSuchValueError struct {
	Attribute string
	Value     string
}

// Error implements the builtin error interface.
func (e *NoSuchValueError) Error() string {
	return fmt.Sprintf("attribute %q has no value %q", e.Attribute, e.Value)
}
