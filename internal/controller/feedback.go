package controller

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muurk/mallas/internal/form"
	"github.com/muurk/mallas/internal/logging"
)

// Notification and banner timings.
const (
	BannerTimeout      = 5 * time.Second
	ToastFadeInDelay   = 100 * time.Millisecond
	ToastFadeOutDelay  = 3000 * time.Millisecond
	ToastRemoveDelay   = ToastFadeOutDelay + 300*time.Millisecond
	toastOpaque        = 1.0
	toastTransparent   = 0.0
)

// FeedbackRenderer maps verdicts and messages onto the page.
type FeedbackRenderer struct {
	fields FieldSurface
	banner BannerSurface
	toasts ToastSurface
	sched  Scheduler

	bannerTimer Timer
	newID       func() string
}

// NewFeedbackRenderer creates a renderer bound to one page.
func NewFeedbackRenderer(fields FieldSurface, banner BannerSurface, toasts ToastSurface, sched Scheduler) *FeedbackRenderer {
	return &FeedbackRenderer{
		fields: fields,
		banner: banner,
		toasts: toasts,
		sched:  sched,
		newID:  uuid.NewString,
	}
}

// Apply decorates a field with its verdict. Invalid shows the reason
// under the input and marks it as an error; Valid marks it as a success
// and removes any message.
func (r *FeedbackRenderer) Apply(name string, v form.Verdict) {
	r.fields.Decorate(name, v)
}

// ShowGeneralError shows msg in the banner and hides it after five
// seconds. Calling it again replaces the text and restarts the countdown.
func (r *FeedbackRenderer) ShowGeneralError(msg string) {
	if r.bannerTimer != nil {
		r.bannerTimer.Stop()
	}
	r.banner.ShowBanner(msg)
	r.bannerTimer = r.sched.AfterFunc(BannerTimeout, func() {
		r.bannerTimer = nil
		r.banner.HideBanner()
	})
	logging.Debug("General error shown", zap.String("message", msg))
}

// ShowNotification adds a toast that fades in, fades out and is removed.
// Toasts are independent: any number may be on screen at once. It returns
// the toast id.
func (r *FeedbackRenderer) ShowNotification(msg string) string {
	id := r.newID()
	r.toasts.AddToast(id, msg)
	r.sched.AfterFunc(ToastFadeInDelay, func() {
		r.toasts.SetToastOpacity(id, toastOpaque)
	})
	r.sched.AfterFunc(ToastFadeOutDelay, func() {
		r.toasts.SetToastOpacity(id, toastTransparent)
	})
	r.sched.AfterFunc(ToastRemoveDelay, func() {
		r.toasts.RemoveToast(id)
	})
	logging.Debug("Notification shown", zap.String("id", id), zap.String("message", msg))
	return id
}

// Stop cancels the banner countdown. Toast timers are left to run out.
func (r *FeedbackRenderer) Stop() {
	if r.bannerTimer != nil {
		r.bannerTimer.Stop()
		r.bannerTimer = nil
	}
}
