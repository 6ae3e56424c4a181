package achievement

// Definition is immutable catalog data.
type Definition struct {
	Name        string      `yaml:"name" json:"name"`
	Description string      `yaml:"description" json:"description"`
	Requirement Requirement `yaml:"requirement" json:"requirement"`
}

// Unlocked is reported once, on the evaluation pass that first satisfies
// the definition at Index.
type Unlocked struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Entry pairs an achievement name with its unlocked flag.
type Entry struct {
	Name     string `json:"name"`
	Unlocked bool   `json:"unlocked"`
}

// Registry holds the achievement list and an unlocked flag per entry,
// indexed identically. Flags only ever go from false to true.
type Registry struct {
	defs     []Definition
	unlocked []bool
}

func NewRegistry(defs []Definition) *Registry {
	r := &Registry{
		defs:     make([]Definition, len(defs)),
		unlocked: make([]bool, len(defs)),
	}
	copy(r.defs, defs)
	return r
}

// Evaluate unlocks every still-locked achievement whose requirement p
// satisfies and returns them in catalog order.
func (r *Registry) Evaluate(p Progress) []Unlocked {
	var out []Unlocked
	for i, def := range r.defs {
		if r.unlocked[i] {
			continue
		}
		if !def.Requirement.Satisfied(p) {
			continue
		}
		r.unlocked[i] = true
		out = append(out, Unlocked{Index: i, Name: def.Name, Description: def.Description})
	}
	return out
}

// Restore marks the named achievements unlocked. Names the registry does not
// know are returned so the caller can report them as dropped.
func (r *Registry) Restore(names []string) (unknown []string) {
	index := make(map[string]int, len(r.defs))
	for i, def := range r.defs {
		index[def.Name] = i
	}
	for _, name := range names {
		i, ok := index[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		r.unlocked[i] = true
	}
	return unknown
}

func (r *Registry) Len() int { return len(r.defs) }

func (r *Registry) UnlockedCount() int {
	n := 0
	for _, u := range r.unlocked {
		if u {
			n++
		}
	}
	return n
}

func (r *Registry) IsUnlocked(i int) bool {
	if i < 0 || i >= len(r.unlocked) {
		return false
	}
	return r.unlocked[i]
}

func (r *Registry) Definitions() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.defs))
	for i, def := range r.defs {
		out[i] = Entry{Name: def.Name, Unlocked: r.unlocked[i]}
	}
	return out
}

func (r *Registry) Clone() *Registry {
	c := NewRegistry(r.defs)
	copy(c.unlocked, r.unlocked)
	return c
}
