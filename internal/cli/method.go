package cli

import (
	"fmt"
	"strings"
)

// Method is the operation selected by the first argument
type Method int

const (
	MethodPut Method = iota + 1
	MethodRestore
	MethodEmpty
	MethodInfo
)

const methodNames = "put, restore, empty or info"

func (m Method) String() string {
	switch m {
	case MethodPut:
		return "put"
	case MethodRestore:
		return "restore"
	case MethodEmpty:
		return "empty"
	case MethodInfo:
		return "info"
	}
	return "unknown"
}

// ParseMethod accepts a method name or its first letter in any case
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "p", "put":
		return MethodPut, nil
	case "r", "restore":
		return MethodRestore, nil
	case "e", "empty":
		return MethodEmpty, nil
	case "i", "info":
		return MethodInfo, nil
	}
	return 0, fmt.Errorf("invalid method %q: expected %s", s, methodNames)
}
