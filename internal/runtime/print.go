package runtime

import (
	"fmt"

	shellquote "github.com/kballard/go-shellquote"
)

// PrintCommand renders an argument vector as one shell-quoted line.
// Dry-run mode prints these instead of executing.
func PrintCommand(argv []string) {
	fmt.Println(shellquote.Join(argv...))
}

// SplitPassThrough tokenizes a free-form pass-through string using
// shell word-splitting rules.
func SplitPassThrough(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	return shellquote.Split(s)
}
