package environ

// Provider supplies the environment used for path expansion and child
// processes. Ready reports whether Environment currently holds valid data.
type Provider interface {
	Environment() Env
	Ready() bool
}

// Process is a Provider backed by the environment of the current process.
type Process struct{}

func (Process) Environment() Env { return FromOS() }
func (Process) Ready() bool      { return true }

// Static is a Provider that always returns a fixed environment.
type Static Env

func (s Static) Environment() Env { return Env(s).Clone() }
func (s Static) Ready() bool      { return s != nil }

// Func adapts a pair of functions to a Provider. A nil ReadyFn is treated as
// always ready.
type Func struct {
	EnvironmentFn func() Env
	ReadyFn       func() bool
}

func (f Func) Environment() Env {
	if f.EnvironmentFn == nil {
		return nil
	}
	return f.EnvironmentFn()
}

func (f Func) Ready() bool {
	if f.ReadyFn == nil {
		return f.EnvironmentFn != nil
	}
	return f.ReadyFn()
}

// Current resolves the environment to use right now: the provider's when it
// is ready and non-nil, the process environment otherwise.
func Current(p Provider) Env {
	if p == nil || !p.Ready() {
		return FromOS()
	}
	if env := p.Environment(); env != nil {
		return env
	}
	return FromOS()
}
