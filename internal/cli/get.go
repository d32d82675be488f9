/*******************************************************************************
* Copyright 2025 The ufdsadm authors
* SPDX-License-Identifier: GPL-3.0-only
* Refer to the file "LICENSE" for details.
*******************************************************************************/

package cli

import (
	"github.com/spf13/cobra"
	"github.com/ufds-tools/ufdsadm/internal/output"
)

func newGetCommand(inv *invocation) *cobra.Command {
	var ldif bool

	cmd := &cobra.Command{
		Use:   "get <login|uuid>",
		Short: "Fetch one user record",
		Args:  exactArgs(1, "need exactly one login or UUID"),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := inv.client(false)
			if err != nil {
				return err
			}
			user, err := client.GetUser(args[0])
			if err != nil {
				return err
			}
			if ldif {
				return output.LDIF(inv.stdout, user.DN, user.AttributeMap())
			}
			return output.JSON(inv.stdout, user)
		},
	}

	cmd.Flags().BoolVar(&ldif, "ldif", false, "print the record in LDIF form instead of JSON")
	return cmd
}

// exactArgs is like cobra.ExactArgs, but produces this tool's usage errors so
// that argument-shape problems exit with the right status.
func exactArgs(count int, message string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != count {
			return usageErrorf("%s (got %d arguments)", message, len(args))
		}
		return nil
	}
}

// minimumArgs is the open-ended counterpart of exactArgs.
func minimumArgs(count int, message string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < count {
			return usageErrorf("%s (got %d arguments)", message, len(args))
		}
		return nil
	}
}
