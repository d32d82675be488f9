/*******************************************************************************
* Copyright 2025 The ufdsadm authors
* SPDX-License-Identifier: GPL-3.0-only
* Refer to the file "LICENSE" for details.
*******************************************************************************/

// Package sshkey reads OpenSSH public keys for attachment to user records.
package sshkey

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/ssh"
)

// PublicKey is a parsed OpenSSH public key.
type PublicKey struct {
	Type        string // e.g. "ssh-ed25519"
	Comment     string
	Fingerprint string // MD5 fingerprint, colon-separated hex pairs
	Line        string // normalized single-line authorized_keys form
}

// Parse reads one public key in authorized_keys format. The fingerprint is
// the legacy MD5 form because that is what UFDS stores and what users pass
// back to delete-key.
func Parse(data []byte) (*PublicKey, error) {
	pub, comment, _, _, err := ssh.ParseAuthorizedKey(data)
	if err != nil {
		return nil, fmt.Errorf("cannot parse public key: %w", err)
	}

	line := strings.TrimSpace(string(ssh.MarshalAuthorizedKey(pub)))
	if comment != "" {
		line += " " + comment
	}

	return &PublicKey{
		Type:        pub.Type(),
		Comment:     comment,
		Fingerprint: ssh.FingerprintLegacyMD5(pub),
		Line:        line,
	}, nil
}
