/*******************************************************************************
* Copyright 2025 The ufdsadm authors
* SPDX-License-Identifier: GPL-3.0-only
* Refer to the file "LICENSE" for details.
*******************************************************************************/

package main

import (
	"os"

	"github.com/ufds-tools/ufdsadm/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
