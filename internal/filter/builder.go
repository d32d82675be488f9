/*******************************************************************************
* Copyright 2025 The ufdsadm authors
* SPDX-License-Identifier: GPL-3.0-only
* Refer to the file "LICENSE" for details.
*******************************************************************************/

package filter

import (
	"regexp"
	"strings"
)

// ObjectClass is the object class pinned by every search filter that Build
// produces.
const ObjectClass = "sdcperson"

var asteriskRunRx = regexp.MustCompile(`\*+`)

// Build assembles the given search terms into one filter tree of the shape
// "entry is a user record AND all parsed constraints hold". The second return
// value is the first bare term encountered (empty if there was none); callers
// use it to prefer exact login matches when presenting results.
//
// Build fails immediately on the first malformed term; it never returns a
// partially assembled tree.
func Build(terms []string) (*And, string, error) {
	root := &And{Nodes: []Node{
		&Equality{Field: "objectclass", Value: ObjectClass},
	}}
	firstBare := ""

	for _, term := range terms {
		parsed, err := ParseTerm(term)
		if err != nil {
			return nil, "", err
		}

		if parsed.Expr == nil {
			if firstBare == "" {
				firstBare = parsed.Bare
			}
			root.Nodes = append(root.Nodes, bareTermGroup(parsed.Bare))
			continue
		}

		expr := parsed.Expr
		fieldType, isKnown := KnownFields[expr.Field]
		if !isKnown {
			return nil, "", &UnknownFieldError{Field: expr.Field}
		}

		predicates, err := exprPredicates(expr, fieldType)
		if err != nil {
			return nil, "", err
		}

		if expr.Operator == OpNotEqual {
			root.Nodes = append(root.Nodes, negate(predicates))
		} else {
			root.Nodes = append(root.Nodes, predicates...)
		}
	}

	return root, firstBare, nil
}

// A bare term matches any of the identifying attributes: login, cn and email
// by substring, uuid exactly.
func bareTermGroup(term string) Node {
	return &Or{Nodes: []Node{
		&Substring{Field: "login", Infixes: []string{term}},
		&Equality{Field: "uuid", Value: term},
		&Substring{Field: "cn", Infixes: []string{term}},
		&Substring{Field: "email", Infixes: []string{term}},
	}}
}

// exprPredicates dispatches on the field's declared type to produce the leaf
// predicates for one expression. The `!=` negation wrapping happens in the
// caller; here `!=` behaves like `=`.
func exprPredicates(expr *FieldExpr, fieldType FieldType) ([]Node, error) {
	switch fieldType {
	case BooleanField:
		value, err := coerceBoolean(expr.Field, expr.Value)
		if err != nil {
			return nil, err
		}
		return []Node{leaf(expr.Field, expr.Operator, value)}, nil

	case ArrayField:
		var predicates []Node
		for _, element := range strings.Split(expr.Value, ",") {
			predicates = append(predicates, leaf(expr.Field, expr.Operator, element))
		}
		return predicates, nil

	default:
		if (expr.Operator == OpEqual || expr.Operator == OpNotEqual) && strings.Contains(expr.Value, "*") {
			return []Node{splitSubstring(expr.Field, expr.Value)}, nil
		}
		return []Node{leaf(expr.Field, expr.Operator, expr.Value)}, nil
	}
}

func leaf(field string, op Operator, value string) Node {
	switch op {
	case OpGreaterOrEqual:
		return &GreaterOrEqual{Field: field, Value: value}
	case OpLessOrEqual:
		return &LessOrEqual{Field: field, Value: value}
	default:
		return &Equality{Field: field, Value: value}
	}
}

// coerceBoolean applies the shared boolean-string coercion rule: only the
// literal strings "true" and "false" pass.
func coerceBoolean(field, value string) (string, error) {
	if value != "true" && value != "false" {
		return "", &TypeCoercionError{Field: field, Value: value}
	}
	return value, nil
}

// splitSubstring turns a value containing asterisks into a substring
// predicate: text before the first run of asterisks is the prefix, text after
// the last run is the suffix, segments in between are infixes.
//
// There is no escape syntax; a literal asterisk in the value always splits.
func splitSubstring(field, value string) Node {
	segments := asteriskRunRx.Split(value, -1)
	last := len(segments) - 1
	return &Substring{
		Field:   field,
		Prefix:  segments[0],
		Infixes: segments[1:last],
		Suffix:  segments[last],
	}
}

func negate(predicates []Node) Node {
	if len(predicates) == 1 {
		return &Not{Node: predicates[0]}
	}
	return &Not{Node: &And{Nodes: predicates}}
}
