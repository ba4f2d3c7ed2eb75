package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeDone     Type = "done"
	TypeRemove   Type = "rm"
	TypePomodoro Type = "pomodoro"
	TypeSet      Type = "set"
	TypeSkip     Type = "skip"
	TypeReset    Type = "reset"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Text string
}

// TaskArgs addresses a task by its 1-based position in the list.
type TaskArgs struct {
	Position int
}

type SetArgs struct {
	Field string
	Value string
}

type Command struct {
	Type Type
	Raw  string
	Add  *AddArgs
	Task *TaskArgs
	Set  *SetArgs
}

var aliases = map[string]Type{
	"delete": TypeRemove,
	"toggle": TypeDone,
	"next":   TypeSkip,
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]
	typ := Type(head)
	if alias, ok := aliases[head]; ok {
		typ = alias
	}

	switch typ {
	case TypeAdd:
		return parseAdd(input, raw, head)
	case TypeDone, TypeRemove, TypePomodoro:
		return parseTask(input, typ, args)
	case TypeSet:
		return parseSet(input, args)
	case TypeSkip, TypeReset:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", typ)}
		}
		return Command{Type: typ, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd keeps the task text's inner spacing intact.
func parseAdd(input, raw, head string) (Command, error) {
	text := strings.TrimSpace(raw[len(head):])
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
	}
	return Command{Type: TypeAdd, Raw: input, Add: &AddArgs{Text: text}}, nil
}

func parseTask(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task number", typ)}
	}
	pos, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
	if err != nil || pos < 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid task number: %s", args[0])}
	}
	return Command{Type: typ, Raw: raw, Task: &TaskArgs{Position: pos}}, nil
}

func parseSet(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "set requires a field and a value"}
	}
	return Command{Type: TypeSet, Raw: raw, Set: &SetArgs{Field: strings.ToLower(args[0]), Value: args[1]}}, nil
}
