/*******************************************************************************
* Copyright 2025 The ufdsadm authors
* SPDX-License-Identifier: GPL-3.0-only
* Refer to the file "LICENSE" for details.
*******************************************************************************/

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ufds-tools/ufdsadm/internal/directory"
	"github.com/ufds-tools/ufdsadm/internal/output"
	"github.com/ufds-tools/ufdsadm/internal/sshkey"
)

func newAddKeyCommand(inv *invocation) *cobra.Command {
	var (
		name  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "add-key [--name NAME] [--force] <login|uuid> <pubkey-path>",
		Short: "Attach an SSH public key to a user",
		Args:  exactArgs(2, "need a user and a public key file"),
		RunE: func(_ *cobra.Command, args []string) error {
			buf, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			pub, err := sshkey.Parse(buf)
			if err != nil {
				return err
			}

			client, err := inv.client(false)
			if err != nil {
				return err
			}
			user, err := client.GetUser(args[0])
			if err != nil {
				return err
			}

			key := &directory.Key{
				Name:        keyName(name, pub),
				Fingerprint: pub.Fingerprint,
				OpenSSH:     pub.Line,
			}
			if err := client.AddKey(user, key, force); err != nil {
				return err
			}
			fmt.Fprintf(inv.stdout, "added key %q (%s) to user %s\n", key.Name, key.Fingerprint, user.Login)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "key name (default: the key's comment, then its fingerprint)")
	flags.BoolVar(&force, "force", false, "replace an existing key with the same fingerprint")
	return cmd
}

// keyName picks the stored key name: explicit flag, then the key's comment,
// then its fingerprint.
func keyName(explicit string, pub *sshkey.PublicKey) string {
	if explicit != "" {
		return explicit
	}
	if pub.Comment != "" {
		return pub.Comment
	}
	return pub.Fingerprint
}

func newDeleteKeyCommand(inv *invocation) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-key <login|uuid> <key-name-or-fingerprint>",
		Short: "Remove an SSH public key from a user",
		Args:  exactArgs(2, "need a user and a key name or fingerprint"),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := inv.client(false)
			if err != nil {
				return err
			}
			user, err := client.GetUser(args[0])
			if err != nil {
				return err
			}
			if err := client.DeleteKey(user, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(inv.stdout, "deleted key %q from user %s\n", args[1], user.Login)
			return nil
		},
	}
}

func newKeysCommand(inv *invocation) *cobra.Command {
	var (
		asJSON   bool
		columns  string
		sortSpec string
	)

	cmd := &cobra.Command{
		Use:   "keys <login|uuid>",
		Short: "List a user's SSH public keys",
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
			keys, err := client.ListKeys(user)
			if err != nil {
				return err
			}

			if asJSON {
				return output.JSON(inv.stdout, keys)
			}
			rows := make([]map[string]string, len(keys))
			for idx, key := range keys {
				rows[idx] = map[string]string{"name": key.Name, "fingerprint": key.Fingerprint}
			}
			output.SortRows(rows, output.ParseColumns(sortSpec))
			return output.Table(inv.stdout, output.ParseColumns(columns), rows, true)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&asJSON, "json", "j", false, "print keys as JSON")
	flags.StringVarP(&columns, "output", "o", "name,fingerprint", "comma-separated columns to print")
	flags.StringVarP(&sortSpec, "sort", "s", "name", "comma-separated sort fields")
	return cmd
}

func newKeyCommand(inv *invocation) *cobra.Command {
	var ldif bool

	cmd := &cobra.Command{
		Use:   "key [--ldif] <login|uuid> <key-name-or-fingerprint>",
		Short: "Fetch one of a user's SSH public keys",
		Args:  exactArgs(2, "need a user and a key name or fingerprint"),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := inv.client(false)
			if err != nil {
				return err
			}
			user, err := client.GetUser(args[0])
			if err != nil {
				return err
			}
			key, err := client.GetKey(user, args[1])
			if err != nil {
				return err
			}

			if ldif {
				return output.LDIF(inv.stdout, key.DN, key.AttributeMap())
			}
			return output.JSON(inv.stdout, key)
		},
	}

	cmd.Flags().BoolVar(&ldif, "ldif", false, "print the key entry in LDIF form instead of JSON")
	return cmd
}
