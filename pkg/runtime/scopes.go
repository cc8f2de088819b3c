package runtime

// scope is a single frame of the scope stack. A nested scope falls through to
// its parent on lookup; a detached scope stops the traversal, so a function
// call cannot see its caller's locals while an if or block still sees the
// surrounding scope.
type scope struct {
	nested bool
	vars   map[string]Value
}

// Scopes provides lexical scoping as an explicit growable stack of
// name-to-value mappings. Scopes are created and destroyed in strict LIFO
// order around block and call boundaries; the single active evaluator owns
// the stack exclusively.
type Scopes struct {
	stack []scope
}

// NewScopes returns an empty scope stack.
func NewScopes() *Scopes {
	return &Scopes{}
}

// Enter pushes a new empty scope, nested or detached.
func (s *Scopes) Enter(nested bool) {
	s.stack = append(s.stack, scope{nested: nested, vars: make(map[string]Value)})
}

// Exit pops the top scope. The caller must keep Enter and Exit balanced;
// an unbalanced Exit is a programming error.
func (s *Scopes) Exit() {
	s.stack = s.stack[:len(s.stack)-1]
}

// Depth reports the number of active scopes.
func (s *Scopes) Depth() int {
	return len(s.stack)
}

// Get scans scopes top-down and returns the first binding found. The
// traversal stops at the first detached scope, inclusive.
func (s *Scopes) Get(name string) (Value, bool) {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if v, ok := s.stack[i].vars[name]; ok {
			return v, true
		}
		if !s.stack[i].nested {
			break
		}
	}
	return nil, false
}

// Set mutates the first scope where the name is already bound, following the
// same traversal rule as Get. It reports whether a binding was found.
func (s *Scopes) Set(name string, value Value) bool {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if _, ok := s.stack[i].vars[name]; ok {
			s.stack[i].vars[name] = value
			return true
		}
		if !s.stack[i].nested {
			break
		}
	}
	return false
}

// Create inserts into the current top scope, shadowing any identically named
// binding in an outer scope. Calling Create with no active scope is an
// internal invariant violation and panics.
func (s *Scopes) Create(name string, value Value) {
	s.stack[len(s.stack)-1].vars[name] = value
}
