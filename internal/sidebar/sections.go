package sidebar

import "fmt"

// Section names used by the sidebar.
const (
	SectionMain  = "main"
	SectionAdmin = "admin"
	SectionHelp  = "help"
)

// Variant selects the initial expanded/collapsed layout.
type Variant int

const (
	// VariantBase starts with admin and help collapsed.
	VariantBase Variant = iota
	// VariantDemo starts with help expanded and admin collapsed.
	VariantDemo
)

// ParseVariant maps a config value to a Variant. Unknown values fall back to base.
func ParseVariant(s string) Variant {
	if s == "demo" {
		return VariantDemo
	}
	return VariantBase
}

func (v Variant) String() string {
	if v == VariantDemo {
		return "demo"
	}
	return "base"
}

// Sections tracks which sidebar sections are expanded.
//
// At most one of admin and help is expanded at any time; main is
// independent. Opening admin collapses help and remembers whether help was
// open, so closing admin restores it.
type Sections struct {
	expanded map[string]bool
	// helpBeforeAdmin is help's state captured when admin was last opened.
	helpBeforeAdmin bool
}

// NewSections returns the initial section state for variant.
func NewSections(variant Variant) *Sections {
	s := &Sections{expanded: map[string]bool{
		SectionMain:  true,
		SectionAdmin: false,
		SectionHelp:  false,
	}}
	if variant == VariantDemo {
		s.expanded[SectionHelp] = true
	}
	return s
}

// Expanded reports whether section name is expanded. Unknown names are collapsed.
func (s *Sections) Expanded(name string) bool {
	return s.expanded[name]
}

// Has reports whether name is a known section.
func (s *Sections) Has(name string) bool {
	_, ok := s.expanded[name]
	return ok
}

// Toggle flips section name and applies the admin/help exclusion rule.
// It returns false, changing nothing, when name is not a known section.
func (s *Sections) Toggle(name string) bool {
	if !s.Has(name) {
		return false
	}

	switch name {
	case SectionAdmin:
		if s.expanded[SectionAdmin] {
			s.expanded[SectionAdmin] = false
			s.expanded[SectionHelp] = s.helpBeforeAdmin
			s.helpBeforeAdmin = false
			return true
		}
		s.helpBeforeAdmin = s.expanded[SectionHelp]
		s.expanded[SectionHelp] = false
		s.expanded[SectionAdmin] = true

	case SectionHelp:
		opening := !s.expanded[SectionHelp]
		if opening && s.expanded[SectionAdmin] {
			s.expanded[SectionAdmin] = false
			s.helpBeforeAdmin = false
		}
		s.expanded[SectionHelp] = opening

	default:
		s.expanded[name] = !s.expanded[name]
	}
	return true
}

// Snapshot returns a copy of the expanded flags keyed by section name.
func (s *Sections) Snapshot() map[string]bool {
	out := make(map[string]bool, len(s.expanded))
	for k, v := range s.expanded {
		out[k] = v
	}
	return out
}

// Clone returns an independent copy, including the remembered help state.
func (s *Sections) Clone() *Sections {
	return &Sections{expanded: s.Snapshot(), helpBeforeAdmin: s.helpBeforeAdmin}
}

// SectionsState is the serializable form of Sections.
type SectionsState struct {
	Expanded        map[string]bool `json:"expanded"`
	HelpBeforeAdmin bool            `json:"help_before_admin,omitempty"`
}

// State exports the current flags and the remembered help state.
func (s *Sections) State() SectionsState {
	return SectionsState{Expanded: s.Snapshot(), HelpBeforeAdmin: s.helpBeforeAdmin}
}

// RestoreSections rebuilds section state saved by State. Sections missing
// from st keep their variant default and unknown names are dropped. A state
// with both admin and help expanded keeps admin and collapses help.
func RestoreSections(st SectionsState, variant Variant) *Sections {
	s := NewSections(variant)
	for name, open := range st.Expanded {
		if s.Has(name) {
			s.expanded[name] = open
		}
	}
	if s.expanded[SectionAdmin] {
		s.expanded[SectionHelp] = false
		s.helpBeforeAdmin = st.HelpBeforeAdmin
	}
	return s
}

func (s *Sections) String() string {
	return fmt.Sprintf("main=%t admin=%t help=%t",
		s.expanded[SectionMain], s.expanded[SectionAdmin], s.expanded[SectionHelp])
}
