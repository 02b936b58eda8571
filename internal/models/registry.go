package models

import (
	"fmt"
	"strings"

	"github.com/san-kum/rdsim/internal/turing"
)

// Constructor builds a pattern for one registered model.
type Constructor func(opts ...turing.Option) (*turing.Pattern, error)

// Entry is one registered model.
type Entry struct {
	Name  string
	Model turing.Model
	New   Constructor
}

// Info returns the static description of the model.
func (e Entry) Info() turing.Info { return e.Model.Info() }

type Registry struct {
	entries []Entry
	byKey   map[string]int
}

func NewRegistry() *Registry {
	r := &Registry{byKey: make(map[string]int)}

	r.Register(FitzHughNagumo{})
	r.Register(Brusselator{})
	r.Register(GrayScott{})
	r.Register(GameOfLife{})
	r.Register(Oregonator{})

	return r
}

var defaultRegistry = NewRegistry()

// Available lists the built-in models in display order.
func Available() []Entry { return defaultRegistry.Entries() }

// Lookup finds a built-in model by name.
func Lookup(name string) (Entry, error) { return defaultRegistry.Get(name) }

// Register adds m under its Info().Name, replacing any model of that name.
func (r *Registry) Register(m turing.Model) {
	name := m.Info().Name
	e := Entry{
		Name:  name,
		Model: m,
		New: func(opts ...turing.Option) (*turing.Pattern, error) {
			return turing.New(m, opts...)
		},
	}
	if i, ok := r.byKey[normalize(name)]; ok {
		r.entries[i] = e
		return
	}
	r.byKey[normalize(name)] = len(r.entries)
	r.entries = append(r.entries, e)
}

// Get accepts the display name in any case, and kebab or snake variants
// such as "gray-scott" or "game_of_life".
func (r *Registry) Get(name string) (Entry, error) {
	i, ok := r.byKey[normalize(name)]
	if !ok {
		return Entry{}, fmt.Errorf("unknown model: %s (available: %s)", name, strings.Join(r.Names(), ", "))
	}
	return r.entries[i], nil
}

func (r *Registry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

func (r *Registry) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

func normalize(name string) string {
	name = strings.ToLower(name)
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(name)
}
