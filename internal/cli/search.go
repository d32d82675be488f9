/*******************************************************************************
* Copyright 2025 The ufdsadm authors
* SPDX-License-Identifier: GPL-3.0-only
* Refer to the file "LICENSE" for details.
*******************************************************************************/

package cli

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sapcc/go-bits/logg"
	"github.com/spf13/cobra"
	"github.com/ufds-tools/ufdsadm/internal/directory"
	"github.com/ufds-tools/ufdsadm/internal/filter"
	"github.com/ufds-tools/ufdsadm/internal/output"
)

const (
	defaultColumns = "login,uuid,email,cn"
	longColumns    = "login,uuid,email,cn,created_at,updated_at,approved_for_provisioning,registered_developer,allowed_dcs"
)

func newSearchCommand(inv *invocation) *cobra.Command {
	var (
		asJSON   bool
		columns  string
		sortSpec string
		long     bool
		noHeader bool
	)

	cmd := &cobra.Command{
		Use:   "search [flags] <term...>",
		Short: "Search user records",
		Long: `Search user records.

Each term is either free text (matched against login, uuid, cn and email) or
a field expression like "login=j*", "registered_developer=true" or
"created_at>=2024-01-01". Supported operators: = != >= <=.`,
		Args: minimumArgs(1, "need at least one search term"),
		RunE: func(_ *cobra.Command, args []string) error {
			tree, firstBare, err := filter.Build(args)
			if err != nil {
				return err
			}
			filterStr := tree.String()
			logg.Debug("search filter: %s", filterStr)

			client, err := inv.client(false)
			if err != nil {
				return err
			}
			users, err := client.SearchUsers(filterStr)
			if err != nil {
				return err
			}
			rankUsers(users, firstBare)

			if asJSON {
				return output.JSON(inv.stdout, users)
			}

			if long {
				columns = longColumns
			}
			rows := make([]map[string]string, len(users))
			for idx, user := range users {
				rows[idx] = userRow(user)
			}
			if sortSpec != "" {
				output.SortRows(rows, output.ParseColumns(sortSpec))
			}
			return output.Table(inv.stdout, output.ParseColumns(columns), rows, !noHeader)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&asJSON, "json", "j", false, "print results as JSON")
	flags.StringVarP(&columns, "output", "o", defaultColumns, "comma-separated columns to print")
	flags.StringVarP(&sortSpec, "sort", "s", "", "comma-separated sort fields (prefix with \"-\" for descending)")
	flags.BoolVarP(&long, "long", "l", false, "print the long column set")
	flags.BoolVarP(&noHeader, "no-header", "H", false, "omit the header row")
	return cmd
}

// rankUsers moves exact matches for the first bare term to the front, login
// order otherwise. This is deliberately simplistic; anything fancier belongs
// in the caller's pipeline.
func rankUsers(users []*directory.User, firstBare string) {
	sort.SliceStable(users, func(i, j int) bool {
		if firstBare != "" {
			iExact := users[i].Login == firstBare
			jExact := users[j].Login == firstBare
			if iExact != jExact {
				return iExact
			}
		}
		return users[i].Login < users[j].Login
	})
}

func userRow(u *directory.User) map[string]string {
	return map[string]string{
		"login":                     u.Login,
		"uuid":                      u.UUID,
		"email":                     u.EMail,
		"cn":                        u.CN,
		"sn":                        u.Surname,
		"givenName":                 u.GivenName,
		"company":                   u.Company,
		"created_at":                u.CreatedAt,
		"updated_at":                u.UpdatedAt,
		"approved_for_provisioning": strconv.FormatBool(u.ApprovedForProvisioning),
		"registered_developer":      strconv.FormatBool(u.RegisteredDeveloper),
		"allowed_dcs":               strings.Join(u.AllowedDCs, ","),
	}
}
