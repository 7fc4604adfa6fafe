package nav

import (
	"slices"

	"github.com/matzehuels/protonav/pkg/schema"
)

// Stack is the drill-down path from the root definition to the current one.
// The zero value is an uninitialized stack (no document loaded).
type Stack []string

// Initialize returns a stack holding only the document's root key. Any
// previous history is discarded. A nil document yields an empty stack.
func Initialize(doc *schema.Document) Stack {
	if doc == nil {
		return Stack{}
	}
	return Stack{doc.RootKey()}
}

// Drill returns a new stack with key appended. The key is not checked
// against any document.
func (s Stack) Drill(key string) Stack {
	out := make(Stack, len(s), len(s)+1)
	copy(out, s)
	return append(out, key)
}

// JumpTo returns a new stack keeping positions 0 through index inclusive.
// An index outside the stack leaves it unchanged, so stale breadcrumb clicks
// are harmless.
func (s Stack) JumpTo(index int) Stack {
	if !s.Valid(index) {
		return s.Clone()
	}
	return slices.Clone(s[:index+1])
}

// Back returns the stack without its last entry. The root is never popped.
func (s Stack) Back() Stack {
	return s.JumpTo(len(s) - 2)
}

// Valid reports whether index addresses an existing position.
func (s Stack) Valid(index int) bool {
	return index >= 0 && index < len(s)
}

// Current returns the last key. It reports false for an empty stack.
func (s Stack) Current() (string, bool) {
	if len(s) == 0 {
		return "", false
	}
	return s[len(s)-1], true
}

// Len returns the number of entries.
func (s Stack) Len() int {
	return len(s)
}

// Clone returns a copy that shares no memory with s.
func (s Stack) Clone() Stack {
	if s == nil {
		return Stack{}
	}
	return slices.Clone(s)
}

// Equal reports whether both stacks hold the same keys in the same order.
func (s Stack) Equal(other Stack) bool {
	return slices.Equal(s, other)
}
