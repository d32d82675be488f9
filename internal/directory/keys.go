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
	"github.com/ufds-tools/ufdsadm/internal/filter"
)

// Key is one sdcKey entry, an SSH public key attached to a user. Keys live as
// child entries of their user, addressed by fingerprint.
type Key struct {
	DN          string `json:"dn"`
	Name        string `json:"name"`
	Fingerprint string `json:"fingerprint"`
	OpenSSH     string `json:"openssh"`
}

// KeyFromEntry parses a directory entry into a Key.
func KeyFromEntry(entry *goldap.Entry) *Key {
	return &Key{
		DN:          entry.DN,
		Name:        entry.GetAttributeValue("name"),
		Fingerprint: entry.GetAttributeValue("fingerprint"),
		OpenSSH:     entry.GetAttributeValue("openssh"),
	}
}

// AttributeMap renders the key as directory attributes.
func (k *Key) AttributeMap() map[string][]string {
	return map[string][]string{
		"objectclass": {"sdckey"},
		"name":        {k.Name},
		"fingerprint": {k.Fingerprint},
		"openssh":     {k.OpenSSH},
	}
}

// AddKey attaches the key to the user. When a key with the same fingerprint
// already exists, the add fails unless force is set, in which case the
// existing entry's name and key material are replaced.
func (c *Client) AddKey(user *User, key *Key, force bool) error {
	key.DN = fmt.Sprintf("fingerprint=%s,%s", key.Fingerprint, user.DN)

	req := goldap.NewAddRequest(key.DN, nil)
	for _, name := range []string{"objectclass", "name", "fingerprint", "openssh"} {
		req.Attribute(name, key.AttributeMap()[name])
	}
	err := wrapError(c.conn.Add(req))

	var apiErr *APIError
	if force && errors.As(err, &apiErr) && apiErr.StatusCode == goldap.LDAPResultEntryAlreadyExists {
		modReq := goldap.NewModifyRequest(key.DN, nil)
		modReq.Replace("name", []string{key.Name})
		modReq.Replace("openssh", []string{key.OpenSSH})
		return wrapError(c.conn.Modify(modReq))
	}
	return err
}

// ListKeys returns all keys attached to the user.
func (c *Client) ListKeys(user *User) ([]*Key, error) {
	return c.searchKeys(user, &filter.Equality{Field: "objectclass", Value: "sdckey"})
}

// GetKey resolves a key by name or fingerprint.
func (c *Client) GetKey(user *User, nameOrFingerprint string) (*Key, error) {
	tree := &filter.And{Nodes: []filter.Node{
		&filter.Equality{Field: "objectclass", Value: "sdckey"},
		&filter.Or{Nodes: []filter.Node{
			&filter.Equality{Field: "name", Value: nameOrFingerprint},
			&filter.Equality{Field: "fingerprint", Value: nameOrFingerprint},
		}},
	}}
	keys, err := c.searchKeys(user, tree)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, &NoSuchKeyError{User: user.Login, Key: nameOrFingerprint}
	}
	return keys[0], nil
}

// DeleteKey removes a key by name or fingerprint.
func (c *Client) DeleteKey(user *User, nameOrFingerprint string) error {
	key, err := c.GetKey(user, nameOrFingerprint)
	if err != nil {
		return err
	}
	return wrapError(c.conn.Del(goldap.NewDelRequest(key.DN, nil)))
}

func (c *Client) searchKeys(user *User, node filter.Node) ([]*Key, error) {
	req := goldap.NewSearchRequest(user.DN, goldap.ScopeSingleLevel, goldap.NeverDerefAliases,
		0, 0, false, node.String(), nil, nil)
	result, err := c.conn.Search(req)
	if err != nil {
		return nil, wrapError(err)
	}

	keys := make([]*Key, 0, len(result.Entries))
	for _, entry := range result.Entries {
		keys = append(keys, KeyFromEntry(entry))
	}
	return keys, nil
}
