// Package form holds the field model and validation rules of the mesh
// circuit form.
//
// Fields are classified by the first letter of their name: R* fields are
// resistances in ohms, V* fields are voltages in volts. Anything else is
// unclassified and only has to be a positive number.
//
// # Validation Rules
//
// Validate applies these rules in order and stops at the first failure:
//
//	""                      -> "Este campo es obligatorio"
//	not a finite number     -> "Debe ser un número válido"
//	value <= 0              -> "El valor debe ser mayor que cero"
//	R*, outside [0.1, 1000] -> "La resistencia debe estar entre 0.1Ω y 1000Ω"
//	V*, outside [1, 500]    -> "El voltaje debe estar entre 1V y 500V"
//
// ValidateAll runs Validate over every field without short-circuiting.
//
// # State
//
// State is the per-page form model: ordered fields, their latest verdicts
// and the submission phase. A State is created when a page loads and is
// dropped on navigation.
//
//	st := form.NewState(fields)
//	st.SetValue("R1", "2")
//	v, _ := st.Revalidate("R1")
//	if st.ValidateAll().Valid() { ... }
package form
