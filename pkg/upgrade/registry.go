package upgrade

// Registry manages the available modifiers in registration order.
// Modifiers run in the order they were registered; each sees the output
// of the previous one.
type Registry struct {
	order    []Modifier
	byName   map[string]Modifier
	disabled map[string]bool
}

// NewRegistry creates an empty modifier registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:   make(map[string]Modifier),
		disabled: make(map[string]bool),
	}
}

// Register adds a modifier. A modifier registered under an existing name
// replaces the original in place.
func (r *Registry) Register(m Modifier) {
	if _, exists := r.byName[m.Name()]; exists {
		for i, existing := range r.order {
			if existing.Name() == m.Name() {
				r.order[i] = m
				break
			}
		}
	} else {
		r.order = append(r.order, m)
	}
	r.byName[m.Name()] = m
}

// Get retrieves a modifier by name.
func (r *Registry) Get(name string) (Modifier, bool) {
	m, ok := r.byName[name]
	return m, ok
}

// All returns every registered modifier in registration order.
func (r *Registry) All() []Modifier {
	out := make([]Modifier, len(r.order))
	copy(out, r.order)
	return out
}

// Enabled returns the modifiers that have not been disabled, in
// registration order.
func (r *Registry) Enabled() []Modifier {
	out := make([]Modifier, 0, len(r.order))
	for _, m := range r.order {
		if !r.disabled[m.Name()] {
			out = append(out, m)
		}
	}
	return out
}

// Disable prevents a modifier from running.
func (r *Registry) Disable(name string) {
	r.disabled[name] = true
}

// Enable re-enables a previously disabled modifier.
func (r *Registry) Enable(name string) {
	delete(r.disabled, name)
}
