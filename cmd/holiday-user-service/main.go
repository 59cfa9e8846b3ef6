package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/thirdlf03/world-holidays/internal/userclient"
)

func main() {
	defaultServer := os.Getenv("HOLIDAY_SERVICE_URL")
	if defaultServer == "" {
		defaultServer = "http://127.0.0.1:8080"
	}

	server := flag.String("server", defaultServer, "holiday service base URL")
	username := flag.String("user", os.Getenv("HOLIDAY_USER"), "username for removing favorites")
	timeout := flag.Duration("timeout", 10*time.Second, "HTTP timeout")
	flag.Parse()

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	cfg := userclient.Config{
		ServerURL:   *server,
		Username:    *username,
		Password:    os.Getenv("HOLIDAY_PASSWORD"),
		HTTPTimeout: *timeout,
		Interactive: interactive,
	}
	if interactive {
		cfg.PromptCredentials = promptCredentials
	}

	if err := userclient.Run(context.Background(), os.Stdin, os.Stdout, cfg); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// promptCredentials reads the username as a normal line and the password
// without echo.
func promptCredentials(reader *bufio.Reader, out io.Writer) (string, string, error) {
	fmt.Fprint(out, "Username: ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", "", err
	}
	fmt.Fprint(out, "Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", "", err
	}
	return strings.TrimSpace(line), string(password), nil
}
