// Package placeholder owns the disposable windows that stand in for
// real applications during replay. A single worker goroutine spawns and
// tracks the placeholder surfaces; the control context reaches it only
// through a typed message channel, and shutdown is a message rather
// than a goroutine kill so outstanding windows can close naturally
// after being killed by a swap.
package placeholder

import (
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

type message struct {
	// create a window when drain is false
	title string
	appID string
	// drain requests idle shutdown: exit once no windows remain open
	drain bool
}

// Handle is the control context's view of the worker.
type Handle struct {
	msgs chan message
	stop chan struct{}
	done chan struct{}
	log  *zap.Logger
}

// Start launches the worker. commandTemplate is the program used to
// realize a placeholder surface, with {app_id} and {title} substituted
// per window, e.g. "foot --app-id={app_id} --title={title}".
func Start(commandTemplate string, log *zap.Logger) *Handle {
	h := &Handle{
		msgs: make(chan message, 16),
		stop: make(chan struct{}),
		done: make(chan struct{}),
		log:  log,
	}
	go h.loop(strings.Fields(commandTemplate))
	return h
}

// CreateWindow asks the worker to open one placeholder surface with the
// given title and app_id tag. Fire-and-forget: the caller observes the
// window through the WM event stream.
func (h *Handle) CreateWindow(title, appID string) {
	h.msgs <- message{title: title, appID: appID}
}

// WaitUntilIdle requests idle shutdown and joins the worker: it returns
// once every placeholder window has closed and the worker has exited.
func (h *Handle) WaitUntilIdle() {
	h.msgs <- message{drain: true}
	<-h.done
}

// Stop tears the worker down immediately, killing any windows still
// open. Used on the abort path, where no cleanup of the partially-built
// layout is attempted.
func (h *Handle) Stop() {
	close(h.stop)
	<-h.done
}

func (h *Handle) loop(template []string) {
	defer close(h.done)

	live := make(map[*exec.Cmd]bool)
	exited := make(chan *exec.Cmd)
	draining := false

	for {
		if draining && len(live) == 0 {
			return
		}
		select {
		case <-h.stop:
			for cmd := range live {
				if cmd.Process != nil {
					_ = cmd.Process.Kill()
				}
			}
			return
		case cmd := <-exited:
			delete(live, cmd)
		case m := <-h.msgs:
			if m.drain {
				draining = true
				continue
			}
			cmd := buildCommand(template, m.title, m.appID)
			if cmd == nil {
				h.log.Error("empty placeholder command template")
				continue
			}
			h.log.Debug("create placeholder",
				zap.String("app_id", m.appID),
				zap.String("title", m.title))
			if err := cmd.Start(); err != nil {
				h.log.Error("start placeholder", zap.Error(err))
				continue
			}
			live[cmd] = true
			go func(c *exec.Cmd) {
				_ = c.Wait()
				exited <- c
			}(cmd)
		}
	}
}

func buildCommand(template []string, title, appID string) *exec.Cmd {
	if len(template) == 0 {
		return nil
	}
	args := make([]string, len(template))
	for i, f := range template {
		f = strings.ReplaceAll(f, "{app_id}", appID)
		f = strings.ReplaceAll(f, "{title}", title)
		args[i] = f
	}
	return exec.Command(args[0], args[1:]...)
}
