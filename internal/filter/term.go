/*******************************************************************************
* Copyright 2025 The ufdsadm authors
* SPDX-License-Identifier: GPL-3.0-only
* Refer to the file "LICENSE" for details.
*******************************************************************************/

package filter

import (
	"fmt"
	"regexp"
)

// Operator is a comparison operator in a search expression.
type Operator string

const (
	// OpEqual is "=".
	OpEqual Operator = "="
	// OpNotEqual is "!=".
	OpNotEqual Operator = "!="
	// OpGreaterOrEqual is ">=".
	OpGreaterOrEqual Operator = ">="
	// OpLessOrEqual is "<=".
	OpLessOrEqual Operator = "<="
)

// FieldExpr is a `field<op>value` search expression.
type FieldExpr struct {
	Field    string
	Operator Operator
	Value    string
}

// ParsedTerm is a sum type over the two term shapes.
// Exactly one of the member fields is set.
type ParsedTerm struct {
	Bare string     // set for free-text terms
	Expr *FieldExpr // set for field expressions
}

// Multi-character operators come first so that ">=" wins over ">".
var termRx = regexp.MustCompile(`^([A-Za-z0-9_]+)(>=|<=|!=|==|=|>|<)(.*)$`)

// Operators that users coming from other query languages reach for, mapped to
// the ones this grammar actually supports.
var operatorReplacements = map[string]Operator{
	"==": OpEqual,
	"<":  OpLessOrEqual,
	">":  OpGreaterOrEqual,
}

// UnsupportedOperatorError is returned for the operator aliases that the
// grammar rejects outright.
type UnsupportedOperatorError struct {
	Operator    string
	Replacement Operator
}

// Error implements the builtin error interface.
func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("operator %q is not supported: use %q instead", e.Operator, string(e.Replacement))
}

// UnknownFieldError is returned when the left side of an expression is not a
// known search field.
type UnknownFieldError struct {
	Field string
}

// Error implements the builtin error interface.
func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown search field %q", e.Field)
}

// TypeCoercionError is returned when a value cannot be coerced into the
// field's declared type.
type TypeCoercionError struct {
	Field string
	Value string
}

// Error implements the builtin error interface.
func (e *TypeCoercionError) Error() string {
	return fmt.Sprintf("field %q requires a boolean value, got %q", e.Field, e.Value)
}

// ParseTerm classifies one raw search term. Terms that do not look like a
// field expression come back as bare terms; expressions with a rejected
// operator alias fail immediately.
func ParseTerm(term string) (ParsedTerm, error) {
	match := termRx.FindStringSubmatch(term)
	if match == nil {
		return ParsedTerm{Bare: term}, nil
	}

	field, op, value := match[1], match[2], match[3]
	if replacement, isRejected := operatorReplacements[op]; isRejected {
		return ParsedTerm{}, &UnsupportedOperatorError{Operator: op, Replacement: replacement}
	}

	return ParsedTerm{Expr: &FieldExpr{
		Field:    field,
		Operator: Operator(op),
		Value:    value,
	}}, nil
}
