package executor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"golocate/internal/environ"
)

// waitDelay bounds how long Wait keeps reading output after the process is
// killed because its context ended.
const waitDelay = 500 * time.Millisecond

// Options describes one command invocation.
type Options struct {
	Command string
	Args    []string
	// Dir must exist. It is resolved to its canonical path before use.
	Dir string
	// Env replaces the executor's environment when non-nil.
	Env environ.Env
	// Input is written to stdin when non-empty.
	Input   string
	Timeout time.Duration
}

// Executor runs external commands and normalizes their outcome.
type Executor struct {
	mu          sync.RWMutex
	environment func() environ.Env
}

// New returns an Executor whose default environment comes from environment.
// A nil function or a nil result falls back to the process environment.
func New(environment func() environ.Env) *Executor {
	return &Executor{environment: environment}
}

// Close drops the environment supplier. In-flight commands are not affected.
func (e *Executor) Close() error {
	e.mu.Lock()
	e.environment = nil
	e.mu.Unlock()
	return nil
}

// Environment returns the environment commands run with by default.
func (e *Executor) Environment() environ.Env {
	e.mu.RLock()
	fn := e.environment
	e.mu.RUnlock()
	if fn == nil {
		return environ.FromOS()
	}
	if env := fn(); env != nil {
		return env
	}
	return environ.FromOS()
}

// ExecSync runs the command and blocks until it exits. The returned error is
// non-nil only when the working directory cannot be resolved; every other
// failure is reported through Result.
func (e *Executor) ExecSync(ctx context.Context, opts Options) (Result, error) {
	p, err := e.prepare(ctx, opts)
	if err != nil {
		var xe *Error
		if errors.As(err, &xe) && xe.Op == "chdir" {
			status := StatusNotStarted
			if IsNotFound(err) {
				status = StatusNotFound
			}
			return Result{ExitStatus: status, Err: err}, err
		}
		status, nerr := normalize(ctx, "lookup", opts.Command, StatusNotStarted, err)
		return Result{ExitStatus: status, Err: nerr}, nil
	}

	var stdout, stderr bytes.Buffer
	status, _, err := p.run(&stdout, &stderr)
	status, err = normalize(p.ctx, "wait", p.path, status, err)
	return Result{ExitStatus: status, Stdout: stdout.String(), Stderr: stderr.String(), Err: err}, nil
}

// Exec starts the command and returns immediately. done is called exactly
// once, from another goroutine, after the process has exited. A command that
// cannot be started completes with StatusNotFound and the start error.
func (e *Executor) Exec(ctx context.Context, opts Options, done func(Result, error)) {
	var once sync.Once
	complete := func(r Result, err error) {
		once.Do(func() {
			if done != nil {
				done(r, err)
			}
		})
	}

	p, err := e.prepare(ctx, opts)
	if err != nil {
		go complete(Result{ExitStatus: StatusNotFound, Err: err}, err)
		return
	}

	stdout, stderr := &chunkBuffer{}, &chunkBuffer{}
	go func() {
		status, started, err := p.run(stdout, stderr)
		status, err = normalize(p.ctx, "wait", p.path, status, err)
		if !started && err != nil {
			status = StatusNotFound
		}
		complete(Result{ExitStatus: status, Stdout: stdout.String(), Stderr: stderr.String(), Err: err}, err)
	}()
}

// ExecAsync is Exec delivering its completion on a channel. The channel
// receives exactly one Result and is then closed.
func (e *Executor) ExecAsync(ctx context.Context, opts Options) <-chan Result {
	ch := make(chan Result, 1)
	e.Exec(ctx, opts, func(r Result, err error) {
		r.Err = err
		ch <- r
		close(ch)
	})
	return ch
}

type prepared struct {
	cmd    *exec.Cmd
	ctx    context.Context
	cancel context.CancelFunc
	path   string
}

func (e *Executor) prepare(ctx context.Context, opts Options) (*prepared, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	env := opts.Env
	if env == nil {
		env = e.Environment()
	}

	dir := ""
	if strings.TrimSpace(opts.Dir) != "" {
		d, err := canonicalDir(opts.Dir)
		if err != nil {
			return nil, wrap("chdir", opts.Dir, err)
		}
		dir = d
	}

	path, err := lookPath(opts.Command, env)
	if err != nil {
		return nil, wrap("lookup", opts.Command, err)
	}

	cancel := context.CancelFunc(func() {})
	if opts.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
	}
	args := opts.Args
	if args == nil {
		args = []string{}
	}
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir
	cmd.Env = env.Slice()
	cmd.WaitDelay = waitDelay
	if opts.Input != "" {
		cmd.Stdin = strings.NewReader(opts.Input)
	}
	return &prepared{cmd: cmd, ctx: ctx, cancel: cancel, path: path}, nil
}

func (p *prepared) run(stdout, stderr io.Writer) (status int, started bool, err error) {
	defer p.cancel()
	p.cmd.Stdout = stdout
	p.cmd.Stderr = stderr
	if err := p.cmd.Start(); err != nil {
		return StatusNotStarted, false, wrap("start", p.path, err)
	}

	err = p.cmd.Wait()
	status = StatusNotStarted
	if p.cmd.ProcessState != nil {
		status = p.cmd.ProcessState.ExitCode()
	}
	if err != nil && p.ctx.Err() != nil {
		return status, true, wrap("wait", p.path, p.ctx.Err())
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		err = nil
	}
	if err != nil {
		return status, true, wrap("wait", p.path, err)
	}
	return status, true, nil
}

// chunkBuffer accumulates streamed output; exec copies pipe chunks into it
// from its own goroutines.
type chunkBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *chunkBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *chunkBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
