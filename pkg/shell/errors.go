package shell

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers match categories with errors.Is. For errors built
// with newShellError, user-facing text comes from the *ShellError.Error()
// string attached to the sentinel, not from the sentinel itself; Lex returns
// its two sentinels bare.
var (
	ErrExit               = errors.New("exit")
	ErrUnclosedQuote      = errors.New("unclosed quote")
	ErrUnescapedCharacter = errors.New("unescaped character")
	ErrSyntax             = errors.New("syntax error")
	ErrOpen               = errors.New("open error")
	ErrNotFound           = errors.New("not found")
	ErrPermission         = errors.New("permission denied")
	ErrSpawn              = errors.New("spawn error")
)

// ShellError carries a fixed, user-facing message alongside a sentinel for
// errors.Is classification, so the printed text never grows a sentinel's
// Go-style ": " wrapping prefix.
type ShellError struct {
	Msg string
	Err error
}

func (e *ShellError) Error() string { return e.Msg }
func (e *ShellError) Unwrap() error { return e.Err }

func newShellError(sentinel error, format string, args ...any) *ShellError {
	return &ShellError{Msg: fmt.Sprintf(format, args...), Err: sentinel}
}
