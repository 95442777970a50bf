package upgrade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModifier struct {
	name       string
	constraint string
	apply      func(doc *Document) (*Outcome, error)
}

func (s *stubModifier) Name() string        { return s.name }
func (s *stubModifier) Description() string { return "stub" }
func (s *stubModifier) Constraint() string  { return s.constraint }
func (s *stubModifier) Apply(doc *Document) (*Outcome, error) {
	if s.apply != nil {
		return s.apply(doc)
	}
	return &Outcome{Source: doc.Source}, nil
}

func TestRegistryOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubModifier{name: "b"})
	r.Register(&stubModifier{name: "a"})
	r.Register(&stubModifier{name: "c"})

	names := make([]string, 0)
	for _, m := range r.All() {
		names = append(names, m.Name())
	}
	assert.Equal(t, []string{"b", "a", "c"}, names)
}

func TestRegistryReplaceKeepsPosition(t *testing.T) {
	r := NewRegistry()
	first := &stubModifier{name: "a"}
	r.Register(first)
	r.Register(&stubModifier{name: "b"})

	replacement := &stubModifier{name: "a", constraint: "< 2.0.0"}
	r.Register(replacement)

	all := r.All()
	require.Len(t, all, 2)
	assert.Same(t, Modifier(replacement), all[0])
}

func TestRegistryDisableEnable(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubModifier{name: "a"})
	r.Register(&stubModifier{name: "b"})

	r.Disable("a")
	enabled := r.Enabled()
	require.Len(t, enabled, 1)
	assert.Equal(t, "b", enabled[0].Name())

	r.Enable("a")
	assert.Len(t, r.Enabled(), 2)
}

func TestRegistryGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubModifier{name: "a"})

	m, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", m.Name())

	_, ok = r.Get("missing")
	assert.False(t, ok)
}
