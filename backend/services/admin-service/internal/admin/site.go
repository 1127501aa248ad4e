// Package admin holds the declarative back-office configuration: which
// models are editable, how their change lists look and how their edit
// forms are laid out. Clients render forms from it.
package admin

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrAlreadyRegistered = errors.New("model already registered")
	ErrNotRegistered     = errors.New("model not registered")
)

type Fieldset struct {
	Name    string   `json:"name,omitempty"`
	Classes []string `json:"classes,omitempty"`
	// Each row holds one or more fields rendered side by side.
	Rows [][]string `json:"rows"`
}

type Inline struct {
	Model    string   `json:"model"`
	Endpoint string   `json:"endpoint"`
	Fields   []string `json:"fields"`
	Extra    int      `json:"extra"`
}

type Media struct {
	CSS []string `json:"css,omitempty"`
	JS  []string `json:"js,omitempty"`
}

// AutocompleteLookups lists the relation fields served by a lookup widget.
type AutocompleteLookups struct {
	FK  []string `json:"fk,omitempty"`
	M2M []string `json:"m2m,omitempty"`
}

type ModelAdmin struct {
	Name               string               `json:"name"`
	VerboseName        string               `json:"verbose_name"`
	Endpoint           string               `json:"endpoint"`
	ListDisplay        []string             `json:"list_display"`
	SearchFields       []string             `json:"search_fields,omitempty"`
	ListFilter         []string             `json:"list_filter,omitempty"`
	Ordering           []string             `json:"ordering,omitempty"`
	DateHierarchy      string               `json:"date_hierarchy,omitempty"`
	PrepopulatedFields map[string][]string  `json:"prepopulated_fields,omitempty"`
	RawIDFields        []string             `json:"raw_id_fields,omitempty"`
	Autocomplete       *AutocompleteLookups `json:"autocomplete_lookup_fields,omitempty"`
	ReadonlyFields     []string             `json:"readonly_fields,omitempty"`
	Fieldsets          []Fieldset           `json:"fieldsets,omitempty"`
	Inlines            []Inline             `json:"inlines,omitempty"`
	Media              *Media               `json:"media,omitempty"`
}

// FieldsetFields returns every field named in the fieldsets, in layout order.
func (m *ModelAdmin) FieldsetFields() []string {
	var out []string
	for _, fs := range m.Fieldsets {
		for _, row := range fs.Rows {
			out = append(out, row...)
		}
	}
	return out
}

func (m *ModelAdmin) check() error {
	if m.Name == "" {
		return errors.New("model admin requires a name")
	}
	seen := make(map[string]string)
	for _, fs := range m.Fieldsets {
		for _, row := range fs.Rows {
			for _, f := range row {
				if prev, dup := seen[f]; dup {
					return fmt.Errorf("%s: field %q appears in fieldsets %q and %q", m.Name, f, prev, fs.Name)
				}
				seen[f] = fs.Name
			}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	for _, f := range m.ReadonlyFields {
		if _, ok := seen[f]; !ok {
			return fmt.Errorf("%s: readonly field %q is not part of any fieldset", m.Name, f)
		}
	}
	return nil
}

// Site is a registry of ModelAdmins keyed by model name.
type Site struct {
	mu       sync.RWMutex
	registry map[string]*ModelAdmin
}

func NewSite() *Site {
	return &Site{registry: make(map[string]*ModelAdmin)}
}

func (s *Site) Register(m *ModelAdmin) error {
	if err := m.check(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registry[m.Name]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, m.Name)
	}
	if len(m.ListDisplay) == 0 {
		m.ListDisplay = []string{"__str__"}
	}
	s.registry[m.Name] = m
	return nil
}

func (s *Site) Unregister(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registry[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	delete(s.registry, name)
	return nil
}

func (s *Site) Get(name string) (*ModelAdmin, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.registry[name]
	return m, ok
}

// Models returns the registered admins sorted by verbose name.
func (s *Site) Models() []*ModelAdmin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*ModelAdmin, 0, len(s.registry))
	for _, m := range s.registry {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VerboseName < out[j].VerboseName })
	return out
}
