package form

// Phase is the submission phase of a loaded form.
type Phase int

const (
	// PhaseEditing accepts input and submit attempts.
	PhaseEditing Phase = iota

	// PhaseSubmitting is terminal for the page. Only navigation leaves it.
	PhaseSubmitting
)

// String returns a human-readable name for the phase
func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhaseSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// State is the controller's view of one loaded form. A new State is built
// on every navigation; nothing carries over between pages.
type State struct {
	Fields []Field
	Phase  Phase

	index map[string]int
}

// NewState creates an editing-phase state with every field untouched.
// Duplicate names keep the first occurrence.
func NewState(fields []Field) *State {
	s := &State{
		Fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if _, dup := s.index[f.Name]; dup {
			continue
		}
		f.Verdict = Untouched()
		s.index[f.Name] = len(s.Fields)
		s.Fields = append(s.Fields, f)
	}
	return s
}

// Field returns the named field, or nil.
func (s *State) Field(name string) *Field {
	i, ok := s.index[name]
	if !ok {
		return nil
	}
	return &s.Fields[i]
}

// Has reports whether the form has a field with that name.
func (s *State) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// SetValue writes a raw value without validating it.
func (s *State) SetValue(name, value string) bool {
	f := s.Field(name)
	if f == nil {
		return false
	}
	f.Value = value
	return true
}

// Revalidate validates the named field against its current value and
// records the verdict.
func (s *State) Revalidate(name string) (Verdict, bool) {
	f := s.Field(name)
	if f == nil {
		return Verdict{}, false
	}
	f.Verdict = Validate(f.Name, f.Value)
	return f.Verdict, true
}

// ValidateAll validates every field and records each verdict.
func (s *State) ValidateAll() Result {
	res := ValidateAll(s.Fields)
	for i := range s.Fields {
		s.Fields[i].Verdict = res.Verdicts[s.Fields[i].Name]
	}
	return res
}

// Aggregate is Valid iff every field is Valid. Untouched fields make the
// aggregate Untouched unless some field is already Invalid.
func (s *State) Aggregate() Status {
	agg := StatusValid
	for _, f := range s.Fields {
		switch f.Verdict.Status {
		case StatusInvalid:
			return StatusInvalid
		case StatusUntouched:
			agg = StatusUntouched
		}
	}
	return agg
}

// Values returns name/value pairs in document order.
func (s *State) Values() [][2]string {
	out := make([][2]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		out = append(out, [2]string{f.Name, f.Value})
	}
	return out
}
