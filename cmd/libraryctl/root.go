package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/registeruser"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/reports"
)

// Backend is what the subcommands need from the database.
type Backend interface {
	registeruser.Store
	reports.Store
	Migrate(ctx context.Context) ([]string, error)
}

// environment decouples the commands from the real database and terminal.
type environment struct {
	open         func(ctx context.Context) (Backend, func(), error)
	readPassword func(prompt string, out io.Writer) (string, error)
}

// ErrPasswordMismatch is returned when the confirmation differs from the password.
var ErrPasswordMismatch = errors.New("passwords do not match")

func newRootCommand(env environment) *cobra.Command {
	root := &cobra.Command{
		Use:          "libraryctl",
		Short:        "Administer the library database",
		SilenceUsage: true,
	}

	root.AddCommand(
		newMigrateCommand(env),
		newCreateAdminCommand(env),
		newReportCommand(env),
	)

	return root
}

// withBackend opens the backend for the duration of fn.
func withBackend(cmd *cobra.Command, env environment, fn func(backend Backend) error) error {
	backend, closeBackend, err := env.open(cmd.Context())
	if err != nil {
		return err
	}
	defer closeBackend()

	return fn(backend)
}

// promptPassword reads a password without echo from a terminal, or a single line from piped stdin.
func promptPassword(prompt string, out io.Writer) (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec // file descriptors fit into int

	if !term.IsTerminal(fd) {
		line, err := readLine(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading password from stdin: %w", err)
		}

		return line, nil
	}

	_, _ = fmt.Fprint(out, prompt)
	password, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(out)

	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}

	return string(password), nil
}

// readLine reads up to the first newline, byte by byte, so nothing after it is consumed.
func readLine(r io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)

	for {
		n, err := r.Read(buf)
		if n == 1 {
			if buf[0] == '\n' {
				break
			}

			sb.WriteByte(buf[0])
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return "", err
		}
	}

	return strings.TrimRight(sb.String(), "\r"), nil
}

func writeIndentedJSON(out io.Writer, value any) error {
	body, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(body))

	return err
}
