/*******************************************************************************
* Copyright 2025 The ufdsadm authors
* SPDX-License-Identifier: GPL-3.0-only
* Refer to the file "LICENSE" for details.
*******************************************************************************/

package directory

import (
	"encoding/json"
	"sort"

	goldap "github.com/go-ldap/ldap/v3"
	"github.com/google/uuid"
	"github.com/tredoe/osutil/user/crypt/sha256_crypt"
)

// User is one sdcPerson record.
type User struct {
	DN                      string
	Login                   string
	UUID                    string
	EMail                   string
	CN                      string
	GivenName               string
	Surname                 string
	Company                 string
	ApprovedForProvisioning bool
	RegisteredDeveloper     bool
	AllowedDCs              []string
	CreatedAt               string
	UpdatedAt               string
	PasswordHash            string
	// Extra holds every attribute that has no typed field, keyed by
	// attribute name. It round-trips unrecognized schema extensions.
	Extra map[string][]string
}

// UserFromEntry parses a directory entry into a User.
func UserFromEntry(entry *goldap.Entry) *User {
	u := &User{DN: entry.DN, Extra: make(map[string][]string)}
	for _, attr := range entry.Attributes {
		switch attr.Name {
		case "login":
			u.Login = firstOf(attr.Values)
		case "uuid":
			u.UUID = firstOf(attr.Values)
		case "email":
			u.EMail = firstOf(attr.Values)
		case "cn":
			u.CN = firstOf(attr.Values)
		case "givenName":
			u.GivenName = firstOf(attr.Values)
		case "sn":
			u.Surname = firstOf(attr.Values)
		case "company":
			u.Company = firstOf(attr.Values)
		case "approved_for_provisioning":
			u.ApprovedForProvisioning = firstOf(attr.Values) == "true"
		case "registered_developer":
			u.RegisteredDeveloper = firstOf(attr.Values) == "true"
		case "allowed_dcs":
			u.AllowedDCs = attr.Values
		case "created_at":
			u.CreatedAt = firstOf(attr.Values)
		case "updated_at":
			u.UpdatedAt = firstOf(attr.Values)
		case "userpassword":
			u.PasswordHash = firstOf(attr.Values)
		case "objectclass":
			// implied by the record type
		default:
			u.Extra[attr.Name] = attr.Values
		}
	}
	return u
}

func firstOf(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// AttributeMap renders the user as directory attributes. Empty fields are
// omitted entirely; the directory schema treats absent and empty as the same
// thing anyway.
func (u *User) AttributeMap() map[string][]string {
	attrs := map[string][]string{
		"objectclass": {"sdcperson"},
		"login":       {u.Login},
		"uuid":        {u.UUID},
		"email":       {u.EMail},
	}
	setIfNonEmpty := func(name, value string) {
		if value != "" {
			attrs[name] = []string{value}
		}
	}
	setIfNonEmpty("cn", u.CN)
	setIfNonEmpty("givenName", u.GivenName)
	setIfNonEmpty("sn", u.Surname)
	setIfNonEmpty("company", u.Company)
	setIfNonEmpty("created_at", u.CreatedAt)
	setIfNonEmpty("updated_at", u.UpdatedAt)
	setIfNonEmpty("userpassword", u.PasswordHash)
	if u.ApprovedForProvisioning {
		attrs["approved_for_provisioning"] = []string{"true"}
	}
	if u.RegisteredDeveloper {
		attrs["registered_developer"] = []string{"true"}
	}
	if len(u.AllowedDCs) > 0 {
		attrs["allowed_dcs"] = u.AllowedDCs
	}
	for name, values := range u.Extra {
		if len(values) > 0 {
			attrs[name] = values
		}
	}
	return attrs
}

// renderAttributes flattens AttributeMap into a deterministic list for an
// AddRequest.
func (u *User) renderAttributes() []goldap.Attribute {
	attrMap := u.AttributeMap()
	names := make([]string, 0, len(attrMap))
	for name := range attrMap {
		names = append(names, name)
	}
	sort.Strings(names)

	attrs := make([]goldap.Attribute, 0, len(names))
	for _, name := range names {
		attrs = append(attrs, goldap.Attribute{Type: name, Vals: attrMap[name]})
	}
	return attrs
}

// MarshalJSON renders the record the way `ufdsadm get` and `ufdsadm search
// --json` print it: one flat object, single-valued attributes collapsed,
// booleans as booleans, password hash withheld.
func (u *User) MarshalJSON() ([]byte, error) {
	out := map[string]any{"dn": u.DN}
	for name, values := range u.AttributeMap() {
		switch name {
		case "userpassword", "objectclass":
			continue
		case "approved_for_provisioning", "registered_developer":
			out[name] = values[0] == "true"
		default:
			if len(values) == 1 {
				out[name] = values[0]
			} else {
				out[name] = values
			}
		}
	}
	return json.Marshal(out)
}

// HashPassword produces a password hash in the format UFDS expects, like the
// libc function crypt(3).
func HashPassword(password string) string {
	// according to documentation, Crypter.Generate() will never return any
	// errors when the second argument is nil
	result, _ := sha256_crypt.New().Generate([]byte(password), nil)
	return "{crypt}" + result
}

// NewUUID returns a fresh random UUID for a user being created.
func NewUUID() string {
	return uuid.New().String()
}

func looksLikeUUID(identifier string) bool {
	if len(identifier) != 36 {
		return false
	}
	_, err := uuid.Parse(identifier)
	return err == nil
}
