package nav

import (
	"sync"

	"github.com/matzehuels/protonav/pkg/observability"
	"github.com/matzehuels/protonav/pkg/schema"
)

// Observer receives the view produced by each transition.
type Observer func(View)

// Option configures a Navigator.
type Option func(*Navigator)

// WithObserver registers fn to be called after every transition, outside the
// navigator's state lock. Views are delivered in transition order; when
// transitions race, a view older than one already delivered is dropped.
// Observers may read the navigator but must not start transitions.
func WithObserver(fn Observer) Option {
	return func(n *Navigator) {
		if fn != nil {
			n.observers = append(n.observers, fn)
		}
	}
}

// WithDocument loads doc as if SetDocument had been called.
func WithDocument(doc *schema.Document) Option {
	return func(n *Navigator) {
		n.doc = doc
		n.stack = Initialize(doc)
	}
}

// Navigator owns the navigation stack of one browsing session.
// It is safe for concurrent use; transitions are applied one at a time.
type Navigator struct {
	mu        sync.Mutex
	doc       *schema.Document
	stack     Stack
	seq       uint64 // transitions applied
	observers []Observer

	notifyMu  sync.Mutex
	delivered uint64 // seq of the last view handed to observers
}

// NewNavigator creates a navigator with no document loaded.
func NewNavigator(opts ...Option) *Navigator {
	n := &Navigator{stack: Stack{}}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SetDocument supplies the document to browse. When doc is a different
// document than the current one, the stack is reset to its root key;
// supplying the same document again keeps the current trail. A nil document
// clears the stack.
func (n *Navigator) SetDocument(doc *schema.Document) View {
	n.mu.Lock()
	if doc == n.doc && len(n.stack) > 0 {
		v := Project(n.stack, n.doc)
		n.mu.Unlock()
		return v
	}
	n.doc = doc
	n.stack = Initialize(doc)
	v := Project(n.stack, n.doc)
	seq := n.next()
	n.mu.Unlock()

	defs := 0
	if doc != nil {
		defs = len(doc.Definitions)
	}
	observability.Navigation().OnDocument(doc.RootKey(), defs)
	n.notify(seq, v)
	return v
}

// Drill follows a link into the definition at key.
func (n *Navigator) Drill(key string) View {
	n.mu.Lock()
	if n.doc == nil {
		v := Project(n.stack, n.doc)
		n.mu.Unlock()
		return v
	}
	from, _ := n.stack.Current()
	n.stack = n.stack.Drill(key)
	v := Project(n.stack, n.doc)
	seq := n.next()
	n.mu.Unlock()

	observability.Navigation().OnDrill(from, key, v.Found())
	n.notify(seq, v)
	return v
}

// JumpTo returns to the breadcrumb at index. Out of range indexes leave the
// stack unchanged.
func (n *Navigator) JumpTo(index int) View {
	n.mu.Lock()
	return n.jumpLocked(index)
}

// Back returns to the previous breadcrumb. It is a no-op at the root.
func (n *Navigator) Back() View {
	n.mu.Lock()
	index := len(n.stack) - 2
	if index < 0 {
		defer n.mu.Unlock()
		return Project(n.stack, n.doc)
	}
	return n.jumpLocked(index)
}

// jumpLocked applies JumpTo with n.mu held and releases it, so the index
// is read and applied in one critical section.
func (n *Navigator) jumpLocked(index int) View {
	applied := n.stack.Valid(index)
	n.stack = n.stack.JumpTo(index)
	v := Project(n.stack, n.doc)
	depth := len(n.stack)
	seq := n.next()
	n.mu.Unlock()

	observability.Navigation().OnJump(index, depth, applied)
	n.notify(seq, v)
	return v
}

// Restore replays a previously saved trail. The trail is accepted only when
// it starts at the current document's root key; the remaining keys are
// drilled in order. It reports whether the trail was applied.
func (n *Navigator) Restore(trail []string) (View, bool) {
	n.mu.Lock()
	if n.doc == nil || len(trail) == 0 || trail[0] != n.doc.RootKey() {
		v := Project(n.stack, n.doc)
		n.mu.Unlock()
		return v, false
	}
	stack := Initialize(n.doc)
	for _, key := range trail[1:] {
		stack = stack.Drill(key)
	}
	n.stack = stack
	v := Project(n.stack, n.doc)
	seq := n.next()
	n.mu.Unlock()

	n.notify(seq, v)
	return v, true
}

// View returns the projection of the current state.
func (n *Navigator) View() View {
	n.mu.Lock()
	defer n.mu.Unlock()
	return Project(n.stack, n.doc)
}

// Stack returns a copy of the current stack.
func (n *Navigator) Stack() Stack {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack.Clone()
}

// Document returns the document being browsed, or nil.
func (n *Navigator) Document() *schema.Document {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.doc
}

// next numbers a transition. Callers hold n.mu.
func (n *Navigator) next() uint64 {
	n.seq++
	return n.seq
}

func (n *Navigator) notify(seq uint64, v View) {
	if len(n.observers) == 0 {
		return
	}
	n.notifyMu.Lock()
	defer n.notifyMu.Unlock()
	if seq <= n.delivered {
		return
	}
	n.delivered = seq
	for _, fn := range n.observers {
		fn(v)
	}
}
