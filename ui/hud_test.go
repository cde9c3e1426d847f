package ui

import (
	"testing"
	"time"
)

func TestToastFades(t *testing.T) {
	now := time.Unix(100, 0)
	h := NewHUD()
	h.now = func() time.Time { return now }

	if h.toastAlpha() != 0 {
		t.Error("no toast should be invisible")
	}

	h.Toast("placed %s", "abc")
	if h.toast != "placed abc" {
		t.Errorf("toast = %q", h.toast)
	}
	if a := h.toastAlpha(); a != 1 {
		t.Errorf("fresh toast alpha = %v, want 1", a)
	}

	now = now.Add(toastDuration + toastFade/2)
	if a := h.toastAlpha(); a < 0.49 || a > 0.51 {
		t.Errorf("mid-fade alpha = %v, want 0.5", a)
	}

	now = now.Add(toastFade)
	if a := h.toastAlpha(); a != 0 {
		t.Errorf("expired alpha = %v, want 0", a)
	}
}
