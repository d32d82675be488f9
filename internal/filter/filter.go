/*******************************************************************************
* Copyright 2025 The ufdsadm authors
* SPDX-License-Identifier: GPL-3.0-only
* Refer to the file "LICENSE" for details.
*******************************************************************************/

// Package filter translates ufdsadm search terms into LDAP search filters.
//
// A search invocation gets a list of terms, each either a bare word or a
// `field<op>value` expression. Build assembles them into one boolean filter
// tree that always pins the sdcPerson object class, then the tree serializes
// to RFC 4515 filter-string syntax via String().
package filter

import (
	"fmt"
	"strings"

	goldap "github.com/go-ldap/ldap/v3"
)

// Node is one element of a boolean filter tree.
type Node interface {
	// String renders the node in RFC 4515 filter-string syntax.
	String() string
}

// And matches entries satisfying all child nodes.
type And struct {
	Nodes []Node
}

// String implements the Node interface.
func (a *And) String() string {
	parts := make([]string, len(a.Nodes))
	for idx, n := range a.Nodes {
		parts[idx] = n.String()
	}
	return fmt.Sprintf("(&%s)", strings.Join(parts, ""))
}

// Or matches entries satisfying at least one child node.
type Or struct {
	Nodes []Node
}

// String implements the Node interface.
func (o *Or) String() string {
	parts := make([]string, len(o.Nodes))
	for idx, n := range o.Nodes {
		parts[idx] = n.String()
	}
	return fmt.Sprintf("(|%s)", strings.Join(parts, ""))
}

// Not matches entries not satisfying the child node.
type Not struct {
	Node Node
}

// String implements the Node interface.
func (n *Not) String() string {
	return fmt.Sprintf("(!%s)", n.Node.String())
}

// Equality matches entries where the attribute has exactly the given value.
type Equality struct {
	Field string
	Value string
}

// String implements the Node interface.
func (e *Equality) String() string {
	return fmt.Sprintf("(%s=%s)", e.Field, goldap.EscapeFilter(e.Value))
}

// GreaterOrEqual matches entries where the attribute orders at or above the
// given value.
type GreaterOrEqual struct {
	Field string
	Value string
}

// String implements the Node interface.
func (g *GreaterOrEqual) String() string {
	return fmt.Sprintf("(%s>=%s)", g.Field, goldap.EscapeFilter(g.Value))
}

// LessOrEqual matches entries where the attribute orders at or below the
// given value.
type LessOrEqual struct {
	Field string
	Value string
}

// String implements the Node interface.
func (l *LessOrEqual) String() string {
	return fmt.Sprintf("(%s<=%s)", l.Field, goldap.EscapeFilter(l.Value))
}

// Substring matches entries where the attribute value starts with Prefix,
// contains each of the Infixes in order, and ends with Suffix. Empty Prefix
// or Suffix means "anything on that side".
type Substring struct {
	Field   string
	Prefix  string
	Infixes []string
	Suffix  string
}

// String implements the Node interface.
func (s *Substring) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(s.Field)
	sb.WriteString("=")
	sb.WriteString(goldap.EscapeFilter(s.Prefix))
	for _, infix := range s.Infixes {
		sb.WriteString("*")
		sb.WriteString(goldap.EscapeFilter(infix))
	}
	sb.WriteString("*")
	sb.WriteString(goldap.EscapeFilter(s.Suffix))
	sb.WriteString(")")
	return sb.String()
}
