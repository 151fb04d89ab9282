// auth.go
//
// `byrote hash-password`: produces the bcrypt hash the server compares
// logins against (BYROTE_PASSWORD_HASH).

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPasswordCmd reads a password from stdin and prints its bcrypt hash,
// ready to paste into BYROTE_PASSWORD_HASH.
type HashPasswordCmd struct {
	Cost int `default:"10" help:"bcrypt cost"`
}

func (c *HashPasswordCmd) Run() error {
	fmt.Fprint(os.Stderr, "password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("read password: %w", err)
	}
	pw := strings.TrimRight(line, "\r\n")
	if err := validatePassword(pw); err != nil {
		return err
	}
	h, err := hashPassword(pw, c.Cost)
	if err != nil {
		return err
	}
	fmt.Println(h)
	return nil
}

func validatePassword(p string) error {
	if len(p) < 8 || len(p) > 72 {
		return errors.New("password must be 8–72 chars")
	}
	return nil
}

func hashPassword(pw string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	return string(b), err
}
