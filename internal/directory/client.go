/*******************************************************************************
* Copyright 2025 The ufdsadm authors
* SPDX-License-Identifier: GPL-3.0-only
* Refer to the file "LICENSE" for details.
*******************************************************************************/

// Package directory is the adapter between ufdsadm and the UFDS LDAP server.
// All protocol work (encoding, TLS, pooling) is delegated to go-ldap; this
// package owns request construction, error tagging and the sdcPerson/sdcKey
// entry shapes.
package directory

import (
	"crypto/tls"
	"fmt"
	"time"

	goldap "github.com/go-ldap/ldap/v3"
	"github.com/sapcc/go-bits/logg"
	"github.com/ufds-tools/ufdsadm/internal/filter"
)

// Conn is the slice of the go-ldap connection that Client uses. In tests,
// this interface's real implementation can be swapped for a double.
type Conn interface {
	Search(*goldap.SearchRequest) (*goldap.SearchResult, error)
	Add(*goldap.AddRequest) error
	Modify(*goldap.ModifyRequest) error
	Del(*goldap.DelRequest) error
	Close() error
}

// Options contains all configuration values that we need to connect to the
// directory server.
type Options struct {
	URL         string // e.g. "ldaps://ufds.example.com:636"
	BindDN      string // e.g. "cn=root"
	Password    string
	InsecureTLS bool // skip certificate verification (lab setups)
	Timeout     time.Duration
}

// connectAttempts bounds the retry loop in Connect.
const connectAttempts = 4

// Connect dials the directory server and binds. Connection failures are
// retried a few times with exponential backoff; UFDS instances behind load
// balancers routinely drop the first dial during failover.
func Connect(opts Options) (Conn, error) {
	return getConn(opts, 0, 100*time.Millisecond)
}

func getConn(opts Options, retryCounter int, sleepInterval time.Duration) (Conn, error) {
	if retryCounter == connectAttempts {
		return nil, fmt.Errorf("giving up on %s after %d connection attempts", opts.URL, connectAttempts)
	}
	if retryCounter > 0 {
		time.Sleep(sleepInterval)
	}

	var dialOpts []goldap.DialOpt
	if opts.InsecureTLS {
		dialOpts = append(dialOpts, goldap.DialWithTLSConfig(&tls.Config{InsecureSkipVerify: true})) //nolint:gosec
	}
	conn, err := goldap.DialURL(opts.URL, dialOpts...)
	if err == nil {
		if opts.Timeout > 0 {
			conn.SetTimeout(opts.Timeout)
		}
		err = conn.Bind(opts.BindDN, opts.Password)
	}
	if err != nil {
		logg.Debug("cannot connect to %s (attempt %d/%d): %s", opts.URL, retryCounter+1, connectAttempts, err.Error())
		return getConn(opts, retryCounter+1, sleepInterval*2)
	}

	logg.Debug("connected to %s as %s", opts.URL, opts.BindDN)
	return conn, nil
}

// Client issues UFDS operations over an established connection.
type Client struct {
	conn   Conn
	baseDN string // e.g. "o=smartdc"
}

// NewClient wraps an established connection. The baseDN is the suffix under
// which the users container lives.
func NewClient(conn Conn, baseDN string) *Client {
	return &Client{conn: conn, baseDN: baseDN}
}

// UsersDN returns the DN of the container holding all sdcPerson entries.
func (c *Client) UsersDN() string {
	return "ou=users," + c.baseDN
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Ping performs a root DSE search to verify that the directory answers.
func (c *Client) Ping() error {
	req := goldap.NewSearchRequest("", goldap.ScopeBaseObject, goldap.NeverDerefAliases,
		0, 0, false, "(objectclass=*)", []string{"supportedLDAPVersion"}, nil)
	_, err := c.conn.Search(req)
	return wrapError(err)
}

// GetUser fetches one user by login or UUID. Identifiers that parse as UUIDs
// are looked up by the uuid attribute, everything else by login.
func (c *Client) GetUser(identifier string) (*User, error) {
	var node filter.Node = &filter.Equality{Field: "login", Value: identifier}
	if looksLikeUUID(identifier) {
		node = &filter.Equality{Field: "uuid", Value: identifier}
	}
	tree := &filter.And{Nodes: []filter.Node{
		&filter.Equality{Field: "objectclass", Value: filter.ObjectClass},
		node,
	}}

	users, err := c.SearchUsers(tree.String())
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, &NoSuchUserError{Identifier: identifier}
	}
	return users[0], nil
}

// SearchUsers runs the given filter one level under the users container and
// parses the resulting entries.
func (c *Client) SearchUsers(filterStr string) ([]*User, error) {
	req := goldap.NewSearchRequest(c.UsersDN(), goldap.ScopeSingleLevel, goldap.NeverDerefAliases,
		0, 0, false, filterStr, nil, nil)
	result, err := c.conn.Search(req)
	if err != nil {
		return nil, wrapError(err)
	}

	users := make([]*User, 0, len(result.Entries))
	for _, entry := range result.Entries {
		users = append(users, UserFromEntry(entry))
	}
	return users, nil
}

// CreateUser adds a new sdcPerson entry rendered from u.
func (c *Client) CreateUser(u *User) error {
	u.DN = fmt.Sprintf("uuid=%s,%s", u.UUID, c.UsersDN())
	req := goldap.NewAddRequest(u.DN, nil)
	for _, attr := range u.renderAttributes() {
		req.Attribute(attr.Type, attr.Vals)
	}
	return wrapError(c.conn.Add(req))
}

// DeleteUser removes the entry at the given DN.
func (c *Client) DeleteUser(dn string) error {
	return wrapError(c.conn.Del(goldap.NewDelRequest(dn, nil)))
}

// ReplaceAttribute sets the attribute to exactly the given values, discarding
// any previous ones.
func (c *Client) ReplaceAttribute(dn, attribute string, values ...string) error {
	req := goldap.NewModifyRequest(dn, nil)
	req.Replace(attribute, values)
	return wrapError(c.conn.Modify(req))
}

// AddAttribute appends the given values to the attribute.
func (c *Client) AddAttribute(dn, attribute string, values ...string) error {
	req := goldap.NewModifyRequest(dn, nil)
	req.Add(attribute, values)
	return wrapError(c.conn.Modify(req))
}

// DeleteAttribute removes the given values from the attribute, or the whole
// attribute if values is empty. A missing target is reported as
// NoSuchAttributeError or NoSuchValueError rather than a raw directory error.
func (c *Client) DeleteAttribute(dn, attribute string, values ...string) error {
	req := goldap.NewModifyRequest(dn, nil)
	req.Delete(attribute, values)
	err := wrapError(c.conn.Modify(req))
	if apiErr, ok := err.(*APIError); ok && apiErr.StatusCode == goldap.LDAPResultNoSuchAttribute {
		if len(values) == 0 {
			return &NoSuchAttributeError{Attribute: attribute}
		}
		return &NoSuchValueError{Attribute: attribute, Value: values[0]}
	}
	return err
}
