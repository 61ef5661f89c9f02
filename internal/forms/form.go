package forms

import (
	"fmt"
	"sync"
)

// Feedback is the visual validation state of a field.
type Feedback string

const (
	FeedbackNone    Feedback = ""
	FeedbackValid   Feedback = "is-valid"
	FeedbackInvalid Feedback = "is-invalid"
)

// FieldState is the live state of one field.
type FieldState struct {
	Field
	Result   Result
	Feedback Feedback
}

// Form holds field values and their validation state. It is safe for
// concurrent use so an AutoSaver can read values while the owner edits.
type Form struct {
	id    string
	specs []FieldSpec

	mu     sync.RWMutex
	values map[string]string
	states map[string]FieldState
}

// NewForm returns an empty form with the given fields in display order.
func NewForm(id string, specs []FieldSpec) *Form {
	f := &Form{
		id:     id,
		specs:  append([]FieldSpec(nil), specs...),
		values: make(map[string]string, len(specs)),
		states: make(map[string]FieldState, len(specs)),
	}
	for _, s := range specs {
		f.states[s.Name] = FieldState{Field: Field{FieldSpec: s}, Result: Result{Valid: true}}
	}
	return f
}

// ID returns the form id used for draft keys.
func (f *Form) ID() string { return f.id }

// Specs returns the field specs in display order.
func (f *Form) Specs() []FieldSpec {
	return append([]FieldSpec(nil), f.specs...)
}

// Input sets a field value and validates it live. Feedback is shown only
// once the field has content. Unknown field names return an error.
func (f *Form) Input(name, value string) (FieldState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	st, ok := f.states[name]
	if !ok {
		return FieldState{}, fmt.Errorf("forms: %s has no field %q", f.id, name)
	}
	st.Value = value
	st.Result = Validate(st.Field)
	switch {
	case value == "":
		st.Feedback = FeedbackNone
	case st.Result.Valid:
		st.Feedback = FeedbackValid
	default:
		st.Feedback = FeedbackInvalid
	}
	f.values[name] = value
	f.states[name] = st
	return st, nil
}

// Submit validates every field and marks failures invalid, including empty
// required fields. It reports whether the form may be submitted.
func (f *Form) Submit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	ok := true
	for name, st := range f.states {
		st.Result = Validate(st.Field)
		if st.Result.Valid {
			if st.Value != "" {
				st.Feedback = FeedbackValid
			}
		} else {
			st.Feedback = FeedbackInvalid
			ok = false
		}
		f.states[name] = st
	}
	return ok
}

// State returns the live state of field name.
func (f *Form) State(name string) (FieldState, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	st, ok := f.states[name]
	return st, ok
}

// States returns all field states in display order.
func (f *Form) States() []FieldState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]FieldState, 0, len(f.specs))
	for _, s := range f.specs {
		out = append(out, f.states[s.Name])
	}
	return out
}

// Values returns every field's value keyed by name. Fields never set are
// reported as "".
func (f *Form) Values() map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]string, len(f.specs))
	for _, s := range f.specs {
		out[s.Name] = f.values[s.Name]
	}
	return out
}

// Restore loads values without raising feedback, as when a draft is
// reopened. Unknown names are ignored.
func (f *Form) Restore(values map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for name, v := range values {
		st, ok := f.states[name]
		if !ok {
			continue
		}
		st.Value = v
		st.Result = Validate(st.Field)
		st.Feedback = FeedbackNone
		f.values[name] = v
		f.states[name] = st
	}
}

// Reset clears every value and feedback.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = make(map[string]string, len(f.specs))
	for _, s := range f.specs {
		f.states[s.Name] = FieldState{Field: Field{FieldSpec: s}, Result: Result{Valid: true}}
	}
}

// ValidateValues checks values against specs without keeping state. It is
// used by stateless callers such as the HTTP validation endpoint.
func ValidateValues(specs []FieldSpec, values map[string]string) (map[string]Result, bool) {
	results := make(map[string]Result, len(specs))
	ok := true
	for _, s := range specs {
		r := Validate(Field{FieldSpec: s, Value: values[s.Name]})
		results[s.Name] = r
		ok = ok && r.Valid
	}
	return results, ok
}
