// Package tui implements the interactive terminal front end of mallas.
//
// The TUI loads the simulator's form page from the backend and lets the
// user fill it in, submit it, load the example values, inspect the mesh
// currents and export them. It is built on Bubble Tea and follows the
// Model-Update-View pattern.
//
// # Event Loop
//
// Update is the controller's event loop. Every controller call happens
// inside Update, and controller timers (banner expiry, toast fades, the
// result activation delay, the electron pulse) are delivered by draining
// controller.Loop's queue through a command that re-arms itself. Network
// work runs in commands and reports back with a message; the example
// record is applied only if the page it was requested on is still loaded.
//
// # Screens
//
//   - Loading: fetching the form page
//   - Form: fields with inline validation, the submit button, the banner,
//     result cards, the circuit diagram and notifications
//   - Error: the page or the submission could not be loaded
//
// Tab and shift+tab move between the fields and the result cards.
// Leaving a field validates it. While the result cards have focus, the
// arrow keys move the highlight from mesh to mesh.
//
// # Usage Example
//
//	app := tui.NewAppModel(ctx, tui.Options{
//	    Client:    backend.NewClient("http://127.0.0.1:5000"),
//	    ExportDir: ".",
//	    Clipboard: controller.SystemClipboard{},
//	    Animate:   true,
//	})
//	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
//	    return err
//	}
package tui
