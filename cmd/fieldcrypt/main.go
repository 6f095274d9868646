// fieldcrypt is an operator utility for working with protected values
// outside the server: hashing and verifying a password, and encrypting
// or decrypting a single field value under a password.
//
// Usage:
//
//	fieldcrypt hash
//	fieldcrypt verify <hash> <salt>
//	fieldcrypt encrypt <value>
//	fieldcrypt decrypt <encryptedData> <salt>
//
// The password is read from the terminal without echo; when stdin is not
// a terminal (scripts, pipes) it is read as a single line instead.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/vkazmin/budgetvault/internal/common"
	"github.com/vkazmin/budgetvault/internal/cryptox"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: fieldcrypt hash | verify <hash> <salt> | encrypt <value> | decrypt <encryptedData> <salt>")
	os.Exit(2)
}

func readPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "Enter password: ")
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		defer common.WipeByteArray(pw)
		return string(pw), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func run() error {
	if len(os.Args) < 2 {
		usage()
	}
	cmd, args := os.Args[1], os.Args[2:]

	password, err := readPassword()
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	switch cmd {
	case "hash":
		if len(args) != 0 {
			usage()
		}
		h, err := cryptox.HashPassword(password, "")
		if err != nil {
			return err
		}
		fmt.Printf("hash: %s\nsalt: %s\n", h.Hash, h.Salt)

	case "verify":
		if len(args) != 2 {
			usage()
		}
		if !cryptox.VerifyPassword(password, args[0], args[1]) {
			return fmt.Errorf("password does not match")
		}
		fmt.Println("OK")

	case "encrypt":
		if len(args) != 1 {
			usage()
		}
		ef, err := cryptox.EncryptField(args[0], password, nil)
		if err != nil {
			return err
		}
		fmt.Printf("encrypted: %s\nsalt: %s\n", ef.EncryptedData, ef.Salt)

	case "decrypt":
		if len(args) != 2 {
			usage()
		}
		value, err := cryptox.DecryptField(args[0], args[1], password)
		if err != nil {
			return err
		}
		fmt.Println(value)

	default:
		usage()
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fieldcrypt: %v\n", err)
		os.Exit(1)
	}
}
