// Package controller implements the interactive behaviour of the mesh
// circuit form: live validation feedback, the submission gate, the example
// loader, result highlighting, CSV export, clipboard copy and toast
// notifications.
//
// # Event Loop
//
// Everything runs on one loop. Timers and network completions come back as
// callbacks through a Scheduler, so controller state needs no locking.
// Two schedulers exist:
//
//   - Loop: real timers, drained by Run (headless CLI commands) or by the
//     terminal UI via Queue
//   - ManualScheduler: virtual clock advanced explicitly (tests)
//
// # Surfaces
//
// The controller never looks anything up globally. It is handed a Surface
// (normally a *page.Document) and talks to it through narrow interfaces:
// FieldSurface, BannerSurface, ToastSurface, SubmitSurface, ResultSurface
// and AnimationSurface.
//
// # Submission
//
// Submission is a two-state machine driven by a transition table:
//
//	editing    --submit_valid-->   submitting   (busy state)
//	editing    --submit_invalid--> editing      (banner)
//
// Submitting is terminal for the page. Only navigation, which creates a
// new Controller, leaves it.
//
// # Timings
//
//	banner auto-hide          5s, restarted by each new message
//	toast                     visible +100ms, fading +3000ms, removed +3300ms
//	result highlighting       armed 500ms after Attach
//	electron pulse            every 2000+200*i ms, 500ms dim
//
// # Usage
//
//	doc, _ := page.Parse(body, pageURL)
//	loop := controller.NewLoop()
//	ctrl := controller.New(doc, loop, controller.Options{Examples: client})
//	ctrl.Attach()
//	go loop.Run(ctx)
package controller
