package middleware

// Flash is a write-once error slot scoped to a single request, the JSON-API
// stand-in for a flash message. The first message wins; later writes are
// ignored.
type Flash struct {
	msg string
	set bool
}

func (f *Flash) SetError(msg string) {
	if f.set {
		return
	}
	f.msg = msg
	f.set = true
}

// Message returns the recorded text, empty when nothing was set.
func (f *Flash) Message() string { return f.msg }

func (f *Flash) HasError() bool { return f.set }
