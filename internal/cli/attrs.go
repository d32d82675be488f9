/*******************************************************************************
* Copyright 2025 The ufdsadm authors
* SPDX-License-Identifier: GPL-3.0-only
* Refer to the file "LICENSE" for details.
*******************************************************************************/

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReplaceAttrCommand(inv *invocation) *cobra.Command {
	return &cobra.Command{
		Use:   "replace-attr <login|uuid> <attribute> <value>",
		Short: "Set an attribute to exactly one value",
		Args:  exactArgs(3, "need a user, an attribute and a value"),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := inv.client(false)
			if err != nil {
				return err
			}
			user, err := client.GetUser(args[0])
			if err != nil {
				return err
			}
			if err := client.ReplaceAttribute(user.DN, args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintf(inv.stdout, "replaced %s on user %s\n", args[1], user.Login)
			return nil
		},
	}
}

func newAddAttrCommand(inv *invocation) *cobra.Command {
	return &cobra.Command{
		Use:   "add-attr <login|uuid> <attribute> <value...>",
		Short: "Append values to an attribute",
		Args:  minimumArgs(3, "need a user, an attribute and at least one value"),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := inv.client(false)
			if err != nil {
				return err
			}
			user, err := client.GetUser(args[0])
			if err != nil {
				return err
			}
			if err := client.AddAttribute(user.DN, args[1], args[2:]...); err != nil {
				return err
			}
			fmt.Fprintf(inv.stdout, "added %d value(s) to %s on user %s\n", len(args)-2, args[1], user.Login)
			return nil
		},
	}
}

func newDeleteAttrCommand(inv *invocation) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "delete-attr [--all] <login|uuid> <attribute> [<value>]",
		Short: "Remove an attribute value, or the whole attribute",
		Args:  minimumArgs(2, "need a user and an attribute"),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) > 3 {
				return usageErrorf("too many arguments (got %d)", len(args))
			}
			if !all && len(args) < 3 {
				return usageErrorf("need a value to delete, or --all for the whole attribute")
			}
			if all && len(args) == 3 {
				return usageErrorf("--all and an explicit value are mutually exclusive")
			}

			client, err := inv.client(false)
			if err != nil {
				return err
			}
			user, err := client.GetUser(args[0])
			if err != nil {
				return err
			}

			var values []string
			if !all {
				values = args[2:]
			}
			if err := client.DeleteAttribute(user.DN, args[1], values...); err != nil {
				return err
			}
			fmt.Fprintf(inv.stdout, "deleted %s on user %s\n", args[1], user.Login)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "delete the attribute with all its values")
	return cmd
}

func newDeleteUserCommand(inv *invocation) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-user <login|uuid>",
		Short: "Delete a user record",
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
			if err := client.DeleteUser(user.DN); err != nil {
				return err
			}
			fmt.Fprintf(inv.stdout, "deleted user %s (%s)\n", user.Login, user.UUID)
			return nil
		},
	}
}
