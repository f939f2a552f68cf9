package lint

import (
	"cmp"
	"go/token"
)

// Finding is an accessor call that may panic because no check of the
// matching variant guards it.
type Finding struct {
	// Pos is the position of the call.
	Pos token.Position `json:"pos"`
	// Func is the name of the enclosing function declaration, if any.
	Func string `json:"func,omitempty"`
	// Receiver is the source text of the checked value.
	Receiver string `json:"receiver"`
	// Method is the called accessor, MustRight or MustLeft.
	Method  string `json:"method"`
	Message string `json:"message"`
}

func (f Finding) String() string {
	return f.Pos.String() + ": " + f.Message
}

// Compare orders findings by file, line and column.
func Compare(a, b Finding) int {
	return cmp.Or(
		cmp.Compare(a.Pos.Filename, b.Pos.Filename),
		cmp.Compare(a.Pos.Line, b.Pos.Line),
		cmp.Compare(a.Pos.Column, b.Pos.Column),
	)
}
