package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/pomo/internal/timer"
)

type Type string

const (
	TypeAdd     Type = "add"
	TypeNow     Type = "now"
	TypeEdit    Type = "edit"
	TypeSync    Type = "sync"
	TypeSession Type = "session"
	TypeStats   Type = "stats"
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

// TextArgs carries the task text for add, now and edit.
type TextArgs struct {
	Text string
}

type SessionArgs struct {
	Session timer.SessionType
}

type Command struct {
	Type    Type
	Raw     string
	Text    *TextArgs
	Session *SessionArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimPrefix(raw, ":")
	raw = strings.TrimPrefix(raw, "/")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	head, rest, _ := strings.Cut(raw, " ")
	head = strings.ToLower(head)
	rest = strings.TrimSpace(rest)

	switch Type(head) {
	case TypeAdd, TypeNow, TypeEdit:
		return parseText(input, Type(head), rest)
	case TypeSync, TypeStats:
		if rest != "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", head)}
		}
		return Command{Type: Type(head), Raw: input}, nil
	case TypeSession:
		return parseSession(input, rest)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseText(raw string, typ Type, text string) (Command, error) {
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires task text", typ)}
	}
	return Command{Type: typ, Raw: raw, Text: &TextArgs{Text: text}}, nil
}

func parseSession(raw string, arg string) (Command, error) {
	if arg == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "session requires work, short or long"}
	}
	session, err := timer.ParseSessionType(arg)
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeSession, Raw: raw, Session: &SessionArgs{Session: session}}, nil
}
