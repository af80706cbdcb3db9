// Package page turns the backend's HTML page into an in-memory Document.
//
// The Document stands in for the browser DOM: it holds the numeric inputs
// in document order, the submit control, the general-error banner, toasts,
// the rendered results and the circuit diagram elements. The controller
// mutates it through small interfaces, and the terminal UI renders it.
//
// # Page Contract
//
//	<form action method>           form target and verb
//	input[type=number][name]       validated fields
//	input[type=hidden][name]       posted unchanged
//	.btn-calcular                  submit control
//	.result-card                   result cards (hover targets)
//	.current-value                 result text, e.g. "2.182 A"
//	[class~=mallaN]                diagram elements of mesh N
//	[id^=electron]                 animated electrons
//	.error-msg                     error reported by the backend
//
// Mesh highlighting matches whole class tokens, so "malla1" never selects
// "malla10".
package page
