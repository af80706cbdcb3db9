package page

import (
	"testing"

	"github.com/muurk/mallas/internal/form"
)

func newDoc(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseBytes([]byte(resultPage), "http://127.0.0.1:5000/")
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestDocument_Decorate(t *testing.T) {
	doc := newDoc(t)

	doc.Decorate("R1", form.Invalid(form.MsgRequired))
	f := doc.Field("R1")
	if f.State != form.StatusInvalid || f.Message != form.MsgRequired {
		t.Errorf("after invalid: %+v", f)
	}

	doc.Decorate("R1", form.Valid())
	if f.State != form.StatusValid || f.Message != "" {
		t.Errorf("after valid: %+v", f)
	}

	doc.Decorate("R1", form.Untouched())
	if f.State != form.StatusUntouched {
		t.Errorf("after untouched: %+v", f)
	}

	// Unknown names are ignored.
	doc.Decorate("nope", form.Valid())
}

func TestDocument_SetMeshBrightness(t *testing.T) {
	doc := newDoc(t)

	if n := doc.SetMeshBrightness(1, 1.3); n != 2 {
		t.Errorf("SetMeshBrightness(1) matched %d elements, want 2", n)
	}
	if doc.Element("r10").Brightness != 1 {
		t.Error("malla10 must not match mesh 1")
	}
	if n := doc.SetMeshBrightness(10, 1.3); n != 1 {
		t.Errorf("SetMeshBrightness(10) matched %d, want 1", n)
	}
	if n := doc.SetMeshBrightness(3, 1.3); n != 0 {
		t.Errorf("SetMeshBrightness(3) matched %d, want 0", n)
	}
}

func TestDocument_Toasts(t *testing.T) {
	doc := newDoc(t)

	doc.AddToast("a", "uno")
	doc.AddToast("b", "dos")
	doc.SetToastOpacity("b", 1)
	doc.RemoveToast("a")
	doc.RemoveToast("missing")

	if len(doc.Toasts) != 1 || doc.Toasts[0].ID != "b" || doc.Toasts[0].Opacity != 1 {
		t.Errorf("Toasts = %+v", doc.Toasts)
	}
}

func TestDocument_BannerAndBusy(t *testing.T) {
	doc := newDoc(t)

	doc.ShowBanner("x")
	doc.ShowBanner("y")
	if !doc.Banner.Visible || doc.Banner.Text != "y" {
		t.Errorf("Banner = %+v", doc.Banner)
	}
	doc.HideBanner()
	if doc.Banner.Visible {
		t.Error("banner still visible")
	}

	doc.SetSubmitBusy("busy", 0.8, "not-allowed", 0.6)
	if !doc.Submit.Disabled || doc.Submit.Label != "busy" || doc.Container.PointerEvents {
		t.Errorf("Submit = %+v Container = %+v", doc.Submit, doc.Container)
	}
}

func TestDocument_FormValuesAndAction(t *testing.T) {
	doc := newDoc(t)
	doc.SetValue("R2", "9")

	v := doc.FormValues()
	if v.Get("R1") != "2" || v.Get("R2") != "9" || v.Get("csrf") != "tok" {
		t.Errorf("FormValues() = %v", v)
	}
	if v.Has("nota") {
		t.Error("text inputs are not part of the numeric form model")
	}

	got, err := doc.ActionURL()
	if err != nil {
		t.Fatal(err)
	}
	if got != "http://127.0.0.1:5000/calcular" {
		t.Errorf("ActionURL() = %q", got)
	}

	doc.Action = ""
	if got, _ := doc.ActionURL(); got != "http://127.0.0.1:5000/" {
		t.Errorf("empty action resolved to %q", got)
	}
}

func TestDocument_Download(t *testing.T) {
	doc := newDoc(t)
	if err := doc.Download("f.csv", "text/csv", []byte("a")); err != nil {
		t.Fatal(err)
	}
	if len(doc.Downloads) != 1 || doc.Downloads[0].Name != "f.csv" {
		t.Errorf("Downloads = %+v", doc.Downloads)
	}
}

func TestDocument_FormSnapshot(t *testing.T) {
	doc := newDoc(t)
	doc.SetValue("R2", "9")

	snap := doc.FormSnapshot()
	doc.SetValue("R2", "1")
	doc.ShowBanner("x")

	if got := snap.FormValues().Get("R2"); got != "9" {
		t.Errorf("snapshot R2 = %q, want 9", got)
	}
	if snap.FormValues().Get("csrf") != "tok" {
		t.Error("snapshot lost hidden inputs")
	}
	if snap.Banner.Visible || len(snap.Results) != 0 {
		t.Error("snapshot should only carry the form")
	}
	want, _ := doc.ActionURL()
	if got, _ := snap.ActionURL(); got != want || snap.Method != doc.Method {
		t.Errorf("snapshot target = %s %s, want %s %s", snap.Method, got, doc.Method, want)
	}
}
