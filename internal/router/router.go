// Package router keeps the TUI's screen stack. Screens navigate by
// returning one of the *Msg values below from a tea.Cmd.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cfdroid/internal/screen"
)

type (
	PushScreenMsg    struct{ Screen screen.Screen }
	ReplaceScreenMsg struct{ Screen screen.Screen }
	PopScreenMsg     struct{}

	// PopToRootMsg unwinds the stack down to the bottom screen.
	PopToRootMsg struct{}
)

// Router owns the stack. The bottom screen is never popped. Screens that
// leave the stack are closed if they implement screen.Closer.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) Depth() int { return len(r.stack) }

func (r *Router) Active() screen.Screen {
	if n := len(r.stack); n > 0 {
		return r.stack[n-1]
	}
	return nil
}

// Breadcrumb lists the non-empty titles from the bottom of the stack up.
func (r *Router) Breadcrumb() []string {
	var out []string
	for _, s := range r.stack {
		if t := s.Title(); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

func (r *Router) Pop() tea.Cmd {
	if len(r.stack) < 2 {
		return nil
	}
	r.dropTop()
	return nil
}

func (r *Router) PopToRoot() tea.Cmd {
	for len(r.stack) > 1 {
		r.dropTop()
	}
	return nil
}

func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		return r.Push(s)
	}
	top := len(r.stack) - 1
	closeIfCloser(r.stack[top])
	r.stack[top] = s
	return s.Init()
}

// CloseAll closes every screen, top first. The stack itself is left as is.
func (r *Router) CloseAll() {
	for i := len(r.stack) - 1; i >= 0; i-- {
		closeIfCloser(r.stack[i])
	}
}

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case PushScreenMsg:
		return r.Push(m.Screen)
	case ReplaceScreenMsg:
		return r.Replace(m.Screen)
	case PopScreenMsg:
		return r.Pop()
	case PopToRootMsg:
		return r.PopToRoot()
	}

	if len(r.stack) == 0 {
		return nil
	}
	top := len(r.stack) - 1
	next, cmd := r.stack[top].Update(msg)
	r.stack[top] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if s := r.Active(); s != nil {
		return s.View(width, height)
	}
	return ""
}

func (r *Router) dropTop() {
	top := len(r.stack) - 1
	closeIfCloser(r.stack[top])
	r.stack[top] = nil
	r.stack = r.stack[:top]
}

func closeIfCloser(s screen.Screen) {
	if c, ok := s.(screen.Closer); ok {
		c.Close()
	}
}
