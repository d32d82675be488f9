/*******************************************************************************
* Copyright 2025 The ufdsadm authors
* SPDX-License-Identifier: GPL-3.0-only
* Refer to the file "LICENSE" for details.
*******************************************************************************/

// Package cli wires the ufdsadm subcommands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"runtime/debug"
	"time"

	"github.com/sapcc/go-bits/logg"
	"github.com/spf13/cobra"
	"github.com/ufds-tools/ufdsadm/internal/directory"
	"github.com/ufds-tools/ufdsadm/internal/filter"
)

var (
	envDefaults = map[string]string{
		"UFDS_URL":        "ldaps://localhost:636",
		"UFDS_MASTER_URL": "", // empty = same as UFDS_URL
		"UFDS_BIND_DN":    "cn=root",
		"UFDS_BASE_DN":    "o=smartdc",
	}

	urlRx      = regexp.MustCompile(`^ldaps?://`)
	baseDNRx   = regexp.MustCompile(`^[A-Za-z0-9]+=[^,]+(?:,[A-Za-z0-9]+=[^,]+)*$`)
	envFormats = map[string]*regexp.Regexp{
		"UFDS_URL":        urlRx,
		"UFDS_MASTER_URL": urlRx,
		"UFDS_BASE_DN":    baseDNRx,
	}
)

// usageError marks argument-shape problems; they map to exit code 2 and get
// the command's usage text appended.
type usageError struct {
	message string
}

// Error implements the builtin error interface.
func (e usageError) Error() string {
	return e.message
}

func usageErrorf(format string, args ...any) error {
	return usageError{message: fmt.Sprintf(format, args...)}
}

// invocation carries the per-process state that subcommands need. Stdio and
// the password reader are fields so that tests can substitute them.
type invocation struct {
	handles *directory.Handles
	stdout  io.Writer
	stderr  io.Writer
	stdin   io.Reader

	// readPassword prompts without echoing; substituted in tests
	readPassword func(prompt string) (string, error)

	// global flags
	url         string
	masterURL   string
	bindDN      string
	baseDN      string
	passwordEnv string
	insecureTLS bool
	timeout     time.Duration
	verbose     bool
}

func newInvocation() *invocation {
	return &invocation{
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		stdin:        os.Stdin,
		readPassword: promptPassword,
	}
}

// envOrDefault reads one configuration variable, validating its format the
// same way for env values and flag overrides.
func envOrDefault(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		value = envDefaults[key]
	}
	if rx := envFormats[key]; rx != nil && value != "" && !rx.MatchString(value) {
		return "", fmt.Errorf("malformed %s: %q must look like /%s/", key, value, rx.String())
	}
	return value, nil
}

// setup resolves configuration and prepares the lazy directory handles. It
// runs after flag parsing, before any subcommand body.
func (inv *invocation) setup() error {
	logg.ShowDebug = inv.verbose || os.Getenv("UFDSADM_DEBUG") == "true"

	for key, target := range map[string]*string{
		"UFDS_URL":        &inv.url,
		"UFDS_MASTER_URL": &inv.masterURL,
		"UFDS_BIND_DN":    &inv.bindDN,
		"UFDS_BASE_DN":    &inv.baseDN,
	} {
		if *target != "" {
			continue // flag takes precedence
		}
		value, err := envOrDefault(key)
		if err != nil {
			return err
		}
		*target = value
	}
	if inv.masterURL == "" {
		inv.masterURL = inv.url
	}

	password := os.Getenv(inv.passwordEnv)
	if password == "" {
		return fmt.Errorf("no bind password: set %s in the environment", inv.passwordEnv)
	}

	makeOptions := func(url string) directory.Options {
		return directory.Options{
			URL:         url,
			BindDN:      inv.bindDN,
			Password:    password,
			InsecureTLS: inv.insecureTLS,
			Timeout:     inv.timeout,
		}
	}
	inv.handles = directory.NewHandles(inv.baseDN, makeOptions(inv.url), makeOptions(inv.masterURL))
	return nil
}

// client returns the memoized directory client for the requested role.
func (inv *invocation) client(master bool) (*directory.Client, error) {
	role := directory.RoleLocal
	if master {
		role = directory.RoleMaster
	}
	return inv.handles.Get(role)
}

func newRootCommand(inv *invocation) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ufdsadm",
		Short:         "Administer sdcPerson records in UFDS",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return inv.setup()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&inv.url, "url", "", "directory URL (default $UFDS_URL)")
	flags.StringVar(&inv.masterURL, "master-url", "", "replication master URL (default $UFDS_MASTER_URL)")
	flags.StringVar(&inv.bindDN, "bind-dn", "", "bind DN (default $UFDS_BIND_DN)")
	flags.StringVar(&inv.baseDN, "base-dn", "", "directory suffix (default $UFDS_BASE_DN)")
	flags.StringVar(&inv.passwordEnv, "password-env", "UFDS_PASSWORD", "name of the environment variable holding the bind password")
	flags.BoolVar(&inv.insecureTLS, "insecure", false, "skip TLS certificate verification")
	flags.DurationVar(&inv.timeout, "timeout", 30*time.Second, "per-request timeout")
	flags.BoolVarP(&inv.verbose, "verbose", "v", false, "debug logging and stack traces on errors")

	cmd.AddCommand(
		newPingCommand(inv),
		newGetCommand(inv),
		newSearchCommand(inv),
		newCreateCommand(inv),
		newReplaceAttrCommand(inv),
		newAddAttrCommand(inv),
		newDeleteAttrCommand(inv),
		newDeleteUserCommand(inv),
		newAddKeyCommand(inv),
		newDeleteKeyCommand(inv),
		newKeysCommand(inv),
		newKeyCommand(inv),
	)
	return cmd
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	inv := newInvocation()
	cmd := newRootCommand(inv)
	err := cmd.Execute()
	if inv.handles != nil {
		inv.handles.CloseAll()
	}
	if err == nil {
		return 0
	}

	fmt.Fprintf(inv.stderr, "ufdsadm: error: %s\n", err.Error())
	if inv.verbose {
		fmt.Fprintf(inv.stderr, "%s", debug.Stack())
	}
	return exitCode(err)
}

func exitCode(err error) int {
	var (
		usageErr      usageError
		unsupportedOp *filter.UnsupportedOperatorError
		unknownField  *filter.UnknownFieldError
		typeErr       *filter.TypeCoercionError
		noUser        *directory.NoSuchUserError
		noKey         *directory.NoSuchKeyError
		noAttr        *directory.NoSuchAttributeError
		noValue       *directory.NoSuchValueError
	)
	switch {
	case errors.As(err, &usageErr),
		errors.As(err, &unsupportedOp),
		errors.As(err, &unknownField),
		errors.As(err, &typeErr):
		return 2
	case errors.As(err, &noUser),
		errors.As(err, &noKey),
		errors.As(err, &noAttr),
		errors.As(err, &noValue):
		return 3
	default:
		return 1
	}
}
