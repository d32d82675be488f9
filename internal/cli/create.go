/*******************************************************************************
* Copyright 2025 The ufdsadm authors
* SPDX-License-Identifier: GPL-3.0-only
* Refer to the file "LICENSE" for details.
*******************************************************************************/

package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/howeyc/gopass"
	"github.com/sapcc/go-bits/errext"
	"github.com/spf13/cobra"
	"github.com/ufds-tools/ufdsadm/internal/directory"
)

// passwordAttempts bounds the policy-rejection retry loop.
const passwordAttempts = 3

var loginRx = regexp.MustCompile(`^[a-z][a-z0-9_.-]{2,31}$`)

// Fields prompted for in interactive mode, in this order. Password is
// handled separately because it must not echo.
var interactiveFields = []string{"login", "email", "cn", "givenName", "sn", "company"}

func newCreateCommand(inv *invocation) *cobra.Command {
	var (
		interactive bool
		fromFile    string
		approved    bool
	)

	cmd := &cobra.Command{
		Use:   "create [-i] [-f file] [field=value...]",
		Short: "Create a new user record",
		Long: `Create a new user record.

Field values come from a JSON file (-f), from field=value arguments, or from
interactive prompts (-i); later sources override earlier ones. Required
fields: login, email, password. A UUID is generated unless one is given.`,
		RunE: func(_ *cobra.Command, args []string) error {
			fields := make(map[string]string)

			if fromFile != "" {
				if err := readFieldsFile(fromFile, fields); err != nil {
					return err
				}
			}
			for _, arg := range args {
				name, value, found := strings.Cut(arg, "=")
				if !found || name == "" {
					return usageErrorf("malformed argument %q: expected field=value", arg)
				}
				fields[name] = value
			}
			if interactive {
				if err := inv.promptFields(fields); err != nil {
					return err
				}
			}
			if approved {
				fields["approved_for_provisioning"] = "true"
			}

			if errs := validateCreateFields(fields); len(errs) > 0 {
				messages := make([]string, len(errs))
				for idx, err := range errs {
					messages[idx] = err.Error()
				}
				return usageErrorf("invalid user: %s", strings.Join(messages, "; "))
			}

			user, err := userFromFields(fields)
			if err != nil {
				return err
			}

			client, err := inv.client(false)
			if err != nil {
				return err
			}
			if err := inv.createWithRetry(client, user, interactive); err != nil {
				return err
			}

			fmt.Fprintf(inv.stdout, "created user %s (%s)\n", user.Login, user.UUID)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&interactive, "interactive", "i", false, "prompt for missing fields")
	flags.StringVarP(&fromFile, "file", "f", "", "read fields from a JSON file")
	flags.BoolVar(&approved, "approved-for-provisioning", false, "mark the user as approved for provisioning")
	return cmd
}

func readFieldsFile(path string, fields map[string]string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var parsed map[string]string
	if err := json.Unmarshal(buf, &parsed); err != nil {
		return fmt.Errorf("cannot parse %s: %w", path, err)
	}
	for name, value := range parsed {
		fields[name] = value
	}
	return nil
}

// promptFields asks for every interactive field that is still unset, then for
// the password (without echo).
func (inv *invocation) promptFields(fields map[string]string) error {
	reader := bufio.NewReader(inv.stdin)
	for _, name := range interactiveFields {
		if fields[name] != "" {
			continue
		}
		fmt.Fprintf(inv.stdout, "%s: ", name)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return err
		}
		if value := strings.TrimSpace(line); value != "" {
			fields[name] = value
		}
	}

	if fields["password"] == "" {
		password, err := inv.readPassword("password: ")
		if err != nil {
			return err
		}
		fields["password"] = password
	}
	return nil
}

func validateCreateFields(fields map[string]string) (errs errext.ErrorSet) {
	if login := fields["login"]; login == "" {
		errs.Addf("login is required")
	} else if !loginRx.MatchString(login) {
		errs.Addf("login %q is malformed (want 3-32 chars from [a-z0-9_.-], starting with a letter)", login)
	}

	if email := fields["email"]; email == "" {
		errs.Addf("email is required")
	} else if !strings.Contains(email, "@") {
		errs.Addf("email %q is malformed", email)
	}

	if fields["password"] == "" {
		errs.Addf("password is required")
	}
	return
}

// userCreator is the slice of the directory client that createWithRetry
// needs; tests substitute a double.
type userCreator interface {
	CreateUser(u *directory.User) error
}

// createWithRetry performs the add, re-prompting for a new password when the
// directory rejects the current one for policy reasons. At most
// passwordAttempts adds are tried, and only in interactive mode; without a
// terminal there is nobody to ask for a better password.
func (inv *invocation) createWithRetry(creator userCreator, user *directory.User, interactive bool) error {
	for attempt := 1; ; attempt++ {
		err := creator.CreateUser(user)
		if err == nil {
			return nil
		}
		if !directory.IsPasswordPolicyError(err) || !interactive || attempt >= passwordAttempts {
			return err
		}
		fmt.Fprintf(inv.stderr, "password rejected by policy: %s\n", err.Error())
		password, err := inv.readPassword("new password: ")
		if err != nil {
			return err
		}
		user.PasswordHash = directory.HashPassword(password)
	}
}

// userFromFields routes known field names into the typed record; everything
// else becomes an extra attribute.
func userFromFields(fields map[string]string) (*directory.User, error) {
	user := &directory.User{
		UUID:  directory.NewUUID(),
		Extra: make(map[string][]string),
	}
	password := ""

	for name, value := range fields {
		switch name {
		case "login":
			user.Login = value
		case "uuid":
			user.UUID = value
		case "email":
			user.EMail = value
		case "cn":
			user.CN = value
		case "givenName":
			user.GivenName = value
		case "sn":
			user.Surname = value
		case "company":
			user.Company = value
		case "password":
			password = value
		case "approved_for_provisioning", "registered_developer":
			if value != "true" && value != "false" {
				return nil, usageErrorf("field %q requires a boolean value, got %q", name, value)
			}
			if name == "approved_for_provisioning" {
				user.ApprovedForProvisioning = value == "true"
			} else {
				user.RegisteredDeveloper = value == "true"
			}
		case "allowed_dcs":
			user.AllowedDCs = strings.Split(value, ",")
		default:
			user.Extra[name] = []string{value}
		}
	}

	if user.CN == "" && (user.GivenName != "" || user.Surname != "") {
		user.CN = strings.TrimSpace(user.GivenName + " " + user.Surname)
	}
	user.PasswordHash = directory.HashPassword(password)
	return user, nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	pass, err := gopass.GetPasswd()
	if err != nil {
		return "", err
	}
	return string(pass), nil
}
