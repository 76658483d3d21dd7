package commands

import (
	"fmt"
	"strings"
	"unicode"
)

type Type string

const (
	None         Type = ""
	TypeList     Type = "list"
	TypeTodo     Type = "todo"
	TypeDeadline Type = "deadline"
	TypeEvent    Type = "event"
	TypeMark     Type = "mark"
	TypeUnmark   Type = "unmark"
	TypeDelete   Type = "delete"
	TypeFind     Type = "find"
	TypeHelp     Type = "help"
	TypeBye      Type = "bye"
)

type ErrorCode string

const (
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeWrongArity      ErrorCode = "wrong_arity"
	ErrCodeExpectedInteger ErrorCode = "expected_integer"
	ErrCodeOutOfRange      ErrorCode = "out_of_range"
	ErrCodeAlreadySet      ErrorCode = "already_set"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
)

// CommandError is a user-input problem. The dispatcher renders it as reply
// text; it never leaves the dispatch boundary.
type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unbounded marks a command taking free text.
const Unbounded = -1

// Spec declares the argument shape of a command.
type Spec struct {
	Type    Type
	MinArgs int
	MaxArgs int
	Usage   string
	Summary string
}

func (s Spec) accepts(n int) bool {
	if n < s.MinArgs {
		return false
	}
	return s.MaxArgs == Unbounded || n <= s.MaxArgs
}

// The order is the tie-break for Suggest.
var table = []Spec{
	{Type: TypeList, MinArgs: 0, MaxArgs: 0, Usage: "list", Summary: "show every task"},
	{Type: TypeTodo, MinArgs: 1, MaxArgs: Unbounded, Usage: "todo <description>", Summary: "add a plain task"},
	{Type: TypeDeadline, MinArgs: 1, MaxArgs: Unbounded, Usage: "deadline <description> /by <when>", Summary: "add a task with a due time"},
	{Type: TypeEvent, MinArgs: 1, MaxArgs: Unbounded, Usage: "event <description> /from <start> /to <end>", Summary: "add a task spanning a period"},
	{Type: TypeMark, MinArgs: 1, MaxArgs: 1, Usage: "mark <task number>", Summary: "mark a task as done"},
	{Type: TypeUnmark, MinArgs: 1, MaxArgs: 1, Usage: "unmark <task number>", Summary: "mark a task as not done"},
	{Type: TypeDelete, MinArgs: 1, MaxArgs: 1, Usage: "delete <task number>", Summary: "remove a task"},
	{Type: TypeFind, MinArgs: 1, MaxArgs: Unbounded, Usage: "find <keyword>", Summary: "search task descriptions"},
	{Type: TypeHelp, MinArgs: 0, MaxArgs: 0, Usage: "help", Summary: "show this help"},
	{Type: TypeBye, MinArgs: 0, MaxArgs: 0, Usage: "bye", Summary: "say goodbye and exit"},
}

// Specs returns the command table in order.
func Specs() []Spec {
	out := make([]Spec, len(table))
	copy(out, table)
	return out
}

func Lookup(t Type) (Spec, bool) {
	for _, s := range table {
		if s.Type == t {
			return s, true
		}
	}
	return Spec{}, false
}

// Split trims the line and cuts it at the first whitespace run into the
// command token and the remaining argument text.
func Split(line string) (token, arg string) {
	raw := strings.TrimSpace(line)
	idx := strings.IndexFunc(raw, unicode.IsSpace)
	if idx < 0 {
		return raw, ""
	}
	return raw[:idx], strings.TrimLeftFunc(raw[idx:], unicode.IsSpace)
}

// Resolve maps a raw line to a command and its argument text. The lookup
// is case-sensitive; unknown tokens resolve to None.
func Resolve(line string) (Type, string) {
	token, arg := Split(line)
	for _, s := range table {
		if string(s.Type) == token {
			return s.Type, arg
		}
	}
	return None, arg
}

// Suggest returns the first command literal of the same length as token
// that differs in exactly one byte position, or "" when none does.
func Suggest(token string) string {
	for _, s := range table {
		lit := string(s.Type)
		if len(lit) != len(token) {
			continue
		}
		matches := 0
		for i := 0; i < len(lit); i++ {
			if lit[i] == token[i] {
				matches++
			}
		}
		if matches == len(lit)-1 {
			return strings.ToLower(lit)
		}
	}
	return ""
}
