// Package proc provides the external-process runner adapter.
package proc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// waitDelay bounds how long Wait blocks on lingering pipe readers after the
// context kills the child, so a timed-out process is never left orphaned.
const waitDelay = 5 * time.Second

// maxLineSize bounds a single streamed output line; compilers can emit very
// long diagnostics.
const maxLineSize = 1024 * 1024

// Runner implements ports.ProcessRunner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes one external process to completion.
//
// The request environment is merged over os.Environ(), request entries
// winning, so unrelated ambient variables survive. The executable is resolved
// against PATH from the merged environment unless given as an absolute path.
// Stdout and stderr are streamed line by line to the request callbacks as they
// arrive, defaulting to a console echo.
func (r *Runner) Run(ctx context.Context, req ports.ProcessRequest) (int, error) {
	if req.Name == "" {
		return -1, zerr.Wrap(domain.ErrProcessInvocation, "no executable given")
	}

	cmdEnv := mergeEnvironment(os.Environ(), req.Env)

	executable := req.Name
	if !filepath.IsAbs(executable) {
		if lp, err := lookPath(executable, cmdEnv); err == nil {
			executable = lp
		}
	}

	runCtx := ctx
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, executable, req.Args...) //nolint:gosec // caller-provided command
	// Preserve the command name as invoked in Args[0].
	if len(cmd.Args) > 0 {
		cmd.Args[0] = req.Name
	}
	cmd.Dir = req.Dir
	cmd.Env = cmdEnv
	cmd.WaitDelay = waitDelay

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return -1, zerr.Wrap(err, "failed to open stdout pipe")
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return -1, zerr.Wrap(err, "failed to open stderr pipe")
	}

	onStdout := req.OnStdout
	if onStdout == nil {
		onStdout = func(line string) { _, _ = fmt.Fprintln(os.Stdout, line) }
	}
	onStderr := req.OnStderr
	if onStderr == nil {
		onStderr = func(line string) { _, _ = fmt.Fprintln(os.Stderr, line) }
	}

	r.logger.Info(fmt.Sprintf("exec: %s %s", req.Name, strings.Join(req.Args, " ")))

	if err := cmd.Start(); err != nil {
		startErr := zerr.Wrap(domain.ErrProcessInvocation, err.Error())
		return -1, zerr.With(startErr, "executable", req.Name)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go streamLines(&wg, stdout, onStdout)
	go streamLines(&wg, stderr, onStderr)
	wg.Wait()

	waitErr := cmd.Wait()
	if waitErr == nil {
		return 0, nil
	}

	// The context expiring kills the child; report it as a timeout or a
	// cancellation rather than as a synthetic exit code.
	if req.Timeout > 0 && errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		timeoutErr := zerr.With(zerr.Wrap(domain.ErrProcessTimeout, req.Name), "timeout", req.Timeout.String())
		return -1, timeoutErr
	}
	if ctx.Err() != nil {
		return -1, zerr.Wrap(ctx.Err(), "process cancelled")
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, zerr.Wrap(waitErr, "process wait failed")
}

// streamLines forwards each line read from rc to the callback until EOF.
func streamLines(wg *sync.WaitGroup, rc io.Reader, fn func(string)) {
	defer wg.Done()
	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		fn(scanner.Text())
	}
}

// mergeEnvironment overlays overrides on the system environment.
func mergeEnvironment(sysEnv, overrides []string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	order := make([]string, 0, len(sysEnv)+len(overrides))
	for _, entry := range append(append([]string{}, sysEnv...), overrides...) {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env, not the ambient process PATH.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
