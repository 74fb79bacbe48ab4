package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/jon4hz/attendance/internal/config"
	"github.com/jon4hz/attendance/internal/database"
	"github.com/spf13/cobra"
)

var setPasswordFlags struct {
	Username      string
	PasswordStdin bool
	Admin         bool
	Create        bool
}

var setPasswordCmd = &cobra.Command{
	Use:   "set-password",
	Short: "Set the password of a user",
	Long: `Hash a new password for an existing user and store it in the database.
The password is read from a terminal prompt, or from stdin with --password-stdin.
This is the only way to grant the admin flag.`,
	Example: `attendance set-password --username admin --admin
echo "$PASSWORD" | attendance set-password --username alice --password-stdin
attendance set-password --username admin --admin --create`,
	RunE: setPassword,
}

func init() {
	setPasswordCmd.Flags().StringVarP(&setPasswordFlags.Username, "username", "u", "", "Name of the user")
	setPasswordCmd.Flags().BoolVar(&setPasswordFlags.PasswordStdin, "password-stdin", false, "Read the password from stdin")
	setPasswordCmd.Flags().BoolVar(&setPasswordFlags.Admin, "admin", false, "Grant the admin flag")
	setPasswordCmd.Flags().BoolVar(&setPasswordFlags.Create, "create", false, "Create the user if it does not exist")
	_ = setPasswordCmd.MarkFlagRequired("username")

	rootCmd.AddCommand(setPasswordCmd)
}

func setPassword(cmd *cobra.Command, _ []string) error {
	var (
		pw  string
		err error
	)
	if setPasswordFlags.PasswordStdin {
		pw, err = readPasswordLine(cmd.InOrStdin())
	} else {
		pw, err = promptPassword(cmd.ErrOrStderr())
	}
	if err != nil {
		return err
	}

	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close() //nolint: errcheck

	t := newTracker(cfg, db)
	if err := t.SetPassword(cmd.Context(), setPasswordFlags.Username, pw, setPasswordFlags.Admin, setPasswordFlags.Create); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Password for %s updated.\n", setPasswordFlags.Username)
	return nil
}

// readPasswordLine reads the first line of r as the password.
func readPasswordLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", errors.New("password must not be empty")
	}
	return pw, nil
}

// promptPassword asks for the password twice without echo.
func promptPassword(w io.Writer) (string, error) {
	fd := os.Stdin.Fd()
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal, use --password-stdin")
	}

	read := func(prompt string) (string, error) {
		fmt.Fprint(w, prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(w)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	pw, err := read("Password: ")
	if err != nil {
		return "", err
	}
	if pw == "" {
		return "", errors.New("password must not be empty")
	}
	confirm, err := read("Confirm password: ")
	if err != nil {
		return "", err
	}
	if pw != confirm {
		return "", errors.New("passwords do not match")
	}
	return pw, nil
}
