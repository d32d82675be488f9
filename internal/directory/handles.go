/*******************************************************************************
* Copyright 2025 The ufdsadm authors
* SPDX-License-Identifier: GPL-3.0-only
* Refer to the file "LICENSE" for details.
*******************************************************************************/

package directory

import "github.com/sapcc/go-bits/logg"

// Role distinguishes the directory instances a command can talk to.
type Role string

const (
	// RoleLocal is the datacenter-local directory.
	RoleLocal Role = "local"
	// RoleMaster is the replication master.
	RoleMaster Role = "master"
)

// Handles owns at most one client per role. Clients are dialed lazily on
// first use and memoized for the rest of the invocation; CloseAll must run on
// every exit path.
type Handles struct {
	baseDN  string
	options map[Role]Options
	clients map[Role]*Client
}

// NewHandles prepares lazy handles for both roles.
func NewHandles(baseDN string, local, master Options) *Handles {
	return &Handles{
		baseDN:  baseDN,
		options: map[Role]Options{RoleLocal: local, RoleMaster: master},
		clients: make(map[Role]*Client),
	}
}

// Get returns the memoized client for the role, dialing it first if needed.
func (h *Handles) Get(role Role) (*Client, error) {
	if client, exists := h.clients[role]; exists {
		return client, nil
	}
	conn, err := Connect(h.options[role])
	if err != nil {
		return nil, err
	}
	client := NewClient(conn, h.baseDN)
	h.clients[role] = client
	return client, nil
}

// CloseAll closes every client that was actually dialed.
func (h *Handles) CloseAll() {
	for role, client := range h.clients {
		if err := client.Close(); err != nil {
			logg.Error("closing %s directory connection: %s", role, err.Error())
		}
		delete(h.clients, role)
	}
}
