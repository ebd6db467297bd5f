package session

import (
	"fmt"
	"strings"
)

type Operation int

const (
	OpEncrypt Operation = iota + 1
	OpDecrypt
	OpExit
)

func (o Operation) String() string {
	switch o {
	case OpEncrypt:
		return "encrypt"
	case OpDecrypt:
		return "decrypt"
	case OpExit:
		return "exit"
	default:
		return fmt.Sprintf("operation(%d)", int(o))
	}
}

// ParseOperation accepts the numeric selectors 1, 2, 3 and the operation
// names, case-insensitively.
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "encrypt":
		return OpEncrypt, nil
	case "2", "decrypt":
		return OpDecrypt, nil
	case "3", "exit":
		return OpExit, nil
	default:
		return 0, fmt.Errorf("unknown operation %q", s)
	}
}
