package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/thirdlf03/world-holidays/internal/auth"
)

func runHashPassword(args []string) error {
	flags := flag.NewFlagSet("hash-password", flag.ContinueOnError)
	username := flags.String("user", "admin", "username allowed to remove favorites")
	path := flags.String("file", auth.DefaultFile, "credentials file to write")
	force := flags.Bool("force", false, "overwrite an existing credentials file")
	if err := flags.Parse(args); err != nil {
		return err
	}

	password, err := readPassword()
	if err != nil {
		return err
	}
	if err := auth.WriteAuthFile(*path, *username, password, *force); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote credentials for %s to %s\n", *username, *path)
	return nil
}

// readPassword asks twice on a terminal and reads one line otherwise.
func readPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && strings.TrimSpace(line) == "" {
			return "", errors.New("no password on stdin")
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	fmt.Fprint(os.Stderr, "Confirm password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}
