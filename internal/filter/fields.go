/*******************************************************************************
* Copyright 2025 The ufdsadm authors
* SPDX-License-Identifier: GPL-3.0-only
* Refer to the file "LICENSE" for details.
*******************************************************************************/

package filter

// FieldType controls how a search value is coerced and matched.
type FieldType int

const (
	// StringField values match by equality, or by substring when the value
	// contains asterisks.
	StringField FieldType = iota
	// BooleanField values must coerce to "true" or "false".
	BooleanField
	// ArrayField values are comma-separated lists; each element becomes its
	// own equality predicate.
	ArrayField
)

// KnownFields enumerates the sdcPerson attributes that may appear on the left
// side of a search expression, with their value types.
var KnownFields = map[string]FieldType{
	"login":                     StringField,
	"uuid":                      StringField,
	"email":                     StringField,
	"cn":                        StringField,
	"sn":                        StringField,
	"givenName":                 StringField,
	"created_at":                StringField,
	"updated_at":                StringField,
	"pwdendtime":                StringField,
	"approved_for_provisioning": BooleanField,
	"registered_developer":      BooleanField,
	"allowed_dcs":               ArrayField,
}
