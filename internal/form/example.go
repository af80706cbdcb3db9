package form

// ExampleValue is one entry of an example record.
type ExampleValue struct {
	Name  string
	Value string
}

// ExampleRecord is a set of example values in the order the backend sent
// them. Names without a matching field are ignored when applied.
type ExampleRecord []ExampleValue

// Lookup returns the value for name.
func (r ExampleRecord) Lookup(name string) (string, bool) {
	for _, v := range r {
		if v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}
