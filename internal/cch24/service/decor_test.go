package service_test

import (
	"strings"
	"testing"

	"codehunt/internal/cch24/service"
	pkgerrors "codehunt/pkg/errors"
)

func TestPresentCycle(t *testing.T) {
	got, err := service.Present("purple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<div class="present purple" hx-get="/23/present/red" hx-swap="outerHTML">` +
		strings.Repeat(`<div class="ribbon"></div>`, 4) + `</div>`
	if got != want {
		t.Fatalf("unexpected present: %s", got)
	}
	if _, err := service.Present("green"); !pkgerrors.Is(err, pkgerrors.Teapot) {
		t.Fatalf("expected teapot, got %v", err)
	}
}

func TestOrnamentEscapesID(t *testing.T) {
	got, err := service.Ornament("on", `"><script>alert("Spicy soup!")</script>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	const id = `&quot;&gt;&lt;script&gt;alert(&quot;Spicy soup!&quot;)&lt;/script&gt;`
	want := `<div class="ornament on" id="ornament` + id + `" hx-trigger="load delay:2s once" hx-get="/23/ornament/off/` + id + `" hx-swap="outerHTML"></div>`
	if got != want {
		t.Fatalf("unexpected ornament: %s", got)
	}

	got, err = service.Ornament("off", "1")
	if err != nil || !strings.Contains(got, `class="ornament"`) || !strings.Contains(got, `hx-get="/23/ornament/on/1"`) {
		t.Fatalf("unexpected off ornament: %s %v", got, err)
	}
	if _, err := service.Ornament("maybe-on", "1"); !pkgerrors.Is(err, pkgerrors.Teapot) {
		t.Fatalf("expected teapot, got %v", err)
	}
}

func TestLockfile(t *testing.T) {
	lock := `version = 3

[[package]]
name = "shuttle-runtime"
version = "0.49.0"
checksum = "337789faa0372648a8ac286b2f92a53121fe118f12e29009ac504872a5413cc6"

[[package]]
name = "workspace-member"
version = "0.1.0"
dependencies = ["shuttle-runtime"]

[[package]]
name = "shuttle-service"
version = "0.49.0"
checksum = "22BA454b13e4e29b5b892a62c334360a571de5a25c936283416c94328427dd57"
`
	got, err := service.Lockfile([]byte(lock))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<div style="background-color:#337789;top:250px;left:160px;"></div>` + "\n" +
		`<div style="background-color:#22ba45;top:75px;left:19px;"></div>`
	if got != want {
		t.Fatalf("unexpected divs:\n%s", got)
	}

	cases := []struct {
		body string
		code pkgerrors.ErrorCode
	}{
		{"MINE DIAMONDS!!!!", pkgerrors.InvalidFormat},
		{"[[package]]\nchecksum = \"337789faa0\"\n\x00\x00", pkgerrors.InvalidFormat},
		{"[[package]]\nchecksum = [ \"cookie\", \"milk\" ]\n", pkgerrors.InvalidFormat},
		{"[[package]]\nchecksum = \"3377QQFAA0\"\n", pkgerrors.Unprocessable},
		{"[[package]]\nchecksum = \"BEEF\"\n", pkgerrors.Unprocessable},
	}
	for _, tc := range cases {
		if _, err := service.Lockfile([]byte(tc.body)); !pkgerrors.Is(err, tc.code) {
			t.Fatalf("expected code %d for %q, got %v", tc.code, tc.body, err)
		}
	}
}
