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

func newPingCommand(inv *invocation) *cobra.Command {
	var master bool

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check that the directory answers",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			client, err := inv.client(master)
			if err != nil {
				return err
			}
			if err := client.Ping(); err != nil {
				return err
			}
			fmt.Fprintln(inv.stdout, "pong")
			return nil
		},
	}

	cmd.Flags().BoolVar(&master, "master", false, "ping the replication master instead")
	return cmd
}
