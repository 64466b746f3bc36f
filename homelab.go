package homelab

// Version of the tools, reported by every binary's version command and sent
// as the client version to remote APIs.
const Version = "1.0.0"

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// logs wraps an optional Logger so pipelines can log unconditionally.
type logs struct {
	Logger
}

func (l logs) info(f string, a ...any) {
	if l.Logger != nil {
		l.Infof(f, a...)
	}
}

func (l logs) warn(f string, a ...any) {
	if l.Logger != nil {
		l.Warnf(f, a...)
	}
}

func (l logs) error(f string, a ...any) {
	if l.Logger != nil {
		l.Errorf(f, a...)
	}
}
