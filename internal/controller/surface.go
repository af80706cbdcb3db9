package controller

import (
	"github.com/muurk/mallas/internal/form"
	"github.com/muurk/mallas/internal/page"
)

// FieldSurface is the set of numeric inputs the controller validates and
// decorates.
type FieldSurface interface {
	FormFields() []form.Field
	SetValue(name, value string) bool
	Decorate(name string, v form.Verdict)
	SetHint(name, hint string)
}

// BannerSurface is the single general-error element.
type BannerSurface interface {
	ShowBanner(text string)
	HideBanner()
}

// ToastSurface hosts transient notifications.
type ToastSurface interface {
	AddToast(id, text string)
	SetToastOpacity(id string, opacity float64)
	RemoveToast(id string)
}

// SubmitSurface is the submit control plus the form container.
type SubmitSurface interface {
	SetSubmitBusy(label string, buttonOpacity float64, cursor string, containerOpacity float64)
}

// ResultSurface exposes the rendered results and the circuit diagram.
type ResultSurface interface {
	ResultCards() int
	ResultEntries() []page.Result
	SetMeshBrightness(mesh int, brightness float64) int
}

// AnimationSurface exposes the animated electron elements.
type AnimationSurface interface {
	Electrons() []string
	SetElementOpacity(id string, opacity float64)
}

// Downloader hands a generated file to the user.
type Downloader interface {
	Download(name, mime string, data []byte) error
}

// Clipboard receives copied text.
type Clipboard interface {
	WriteAll(text string) error
}

// Surface is everything a loaded page offers the controller.
// *page.Document implements it.
type Surface interface {
	FieldSurface
	BannerSurface
	ToastSurface
	SubmitSurface
	ResultSurface
	AnimationSurface
	Downloader
}

var _ Surface = (*page.Document)(nil)
