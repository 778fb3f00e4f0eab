package app

// Kind separates caller mistakes from provider trouble.
type Kind int

const (
	KindInvalid Kind = iota + 1
	KindUpstream
)

// Error carries a static, caller-safe message. Err holds the cause and is for logs only.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func invalid(msg string) error { return &Error{Kind: KindInvalid, Msg: msg} }

func upstream(msg string, err error) error { return &Error{Kind: KindUpstream, Msg: msg, Err: err} }
