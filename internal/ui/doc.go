// Package ui renders the styled output of the mallas command line tools.
//
// Commands print a Header when they start and a Result box when they
// finish. In between they may print the verdict table of a form or the
// mesh currents of a result page:
//
//	p := ui.NewPrinter(os.Stdout)
//	p.PrintHeader("Validate", "mallas validate", ui.Detail{Key: "Fields", Value: "3"})
//	p.PrintVerdicts(state.Fields)
//	p.PrintSuccess("All fields valid")
//
// The palette and layout helpers are shared with the interactive UI in
// internal/tui. Colors degrade automatically when stdout is not a
// terminal.
package ui
