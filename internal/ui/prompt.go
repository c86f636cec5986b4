package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// PromptInput reads one line from stdin.
func PromptInput(prompt string) (string, error) {
	fmt.Print(StyleMeta.Render(prompt))
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptSecret reads a line without echoing it when stdin is a terminal.
// Used for private keys so they stay out of shell history and scrollback.
func PromptSecret(prompt string) (string, error) {
	fmt.Print(StyleMeta.Render(prompt))
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}
	return PromptInput("")
}
