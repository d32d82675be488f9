/*******************************************************************************
* Copyright 2025 The ufdsadm authors
* SPDX-License-Identifier: GPL-3.0-only
* Refer to the file "LICENSE" for details.
*******************************************************************************/

package cli

import (
	"testing"

	"github.com/sapcc/go-bits/assert"
	"github.com/ufds-tools/ufdsadm/internal/sshkey"
)

func TestKeyName(t *testing.T) {
	withComment := &sshkey.PublicKey{
		Comment:     "tamar@example.com",
		Fingerprint: "0f:a2:0a:d7:38:3e:65:45:08:6b:63:84:1c:ff:dc:ba",
	}
	withoutComment := &sshkey.PublicKey{
		Fingerprint: "0f:a2:0a:d7:38:3e:65:45:08:6b:63:84:1c:ff:dc:ba",
	}

	assert.DeepEqual(t, "explicit name wins", keyName("laptop", withComment), "laptop")
	assert.DeepEqual(t, "comment fallback", keyName("", withComment), "tamar@example.com")
	assert.DeepEqual(t, "fingerprint fallback", keyName("", withoutComment), withoutComment.Fingerprint)
}
