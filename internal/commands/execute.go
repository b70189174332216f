package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add     func(TextArgs) (Result, error)
	Now     func(TextArgs) (Result, error)
	Edit    func(TextArgs) (Result, error)
	Sync    func() (Result, error)
	Session func(SessionArgs) (Result, error)
	Stats   func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Text)
	case TypeNow:
		if handlers.Now == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Now(*cmd.Text)
	case TypeEdit:
		if handlers.Edit == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Edit(*cmd.Text)
	case TypeSync:
		if handlers.Sync == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Sync()
	case TypeSession:
		if handlers.Session == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Session(*cmd.Session)
	case TypeStats:
		if handlers.Stats == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Stats()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
