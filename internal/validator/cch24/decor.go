package cch24

import (
	"bytes"
	"context"
	_ "embed"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"codehunt/internal/validator"
)

const assetSize = 7163

var (
	//go:embed testdata/Cargo.lock
	cargoLock string
	//go:embed testdata/Cargo.lock.html
	cargoLockHTML string
)

const shuttleLock = `[[package]]
name = "shuttle-runtime"
version = "0.49.0"
source = "registry+https://github.com/rust-lang/crates.io-index"
checksum = "337789faa0372648a8ac286b2f92a53121fe118f12e29009ac504872a5413cc6"

[[package]]
name = "shuttle-service"
version = "0.49.0"
source = "registry+https://github.com/rust-lang/crates.io-index"
checksum = "22ba454b13e4e29b5b892a62c334360a571de5a25c936283416c94328427dd57"
`

const ribbons = `<div class="ribbon"></div><div class="ribbon"></div><div class="ribbon"></div><div class="ribbon"></div>`

// lockfileCase uploads body under field. An empty field sends an empty form.
type lockfileCase struct {
	test   int
	field  string
	file   string
	body   string
	status int
	html   string
}

const shuttleDiv = `<div style="background-color:#337789;top:250px;left:160px;"></div>`

var lockfileCases = []lockfileCase{
	{test: 1, field: "lockfile", file: "Cargo.lock", body: shuttleLock, status: http.StatusOK,
		html: shuttleDiv + "\n" + `<div style="background-color:#22ba45;top:75px;left:19px;"></div>`},
	{test: 2, field: "lockfile", file: "Cargo.lock", body: cargoLock, status: http.StatusOK, html: cargoLockHTML},
	{test: 3, field: "blockfile", file: "Cargo.block", body: "MINE DIAMONDS!!!!", status: http.StatusBadRequest},
	{test: 4, status: http.StatusBadRequest},
	{test: 5, field: "lockfile", file: "Cargo.lock", body: "[[package]]\nchecksum = \"337789faa0372648a8ac286b2f92a53121fe118f12e29009ac504872a5413cc6\"\n\x00\x00", status: http.StatusBadRequest},
	{test: 5, field: "lockfile", file: "Cargo.lock", body: "[[package]]\nchecksum = \"337789faa0372648a8ac286b2f92a53121fe118f12e29009ac504872a5413cc6\"\nfn jingle_bells(volume: f32) -> Result<Sound<DingDong>, MusicError> { ... }\n", status: http.StatusBadRequest},
	{test: 6, field: "lockfile", file: "Cargo.lock", body: "[[package]]\nchecksum = \"337789faa0372648a8ac286b2f92a53121fe118f12e29009ac504872a5413cc6\"\n", status: http.StatusOK, html: shuttleDiv},
	{test: 7, field: "lockfile", file: "Cargo.lock", body: "[[package]]\nchecksum = [ \"cookie\", \"milk\", \"hot cocoa\" ]\n", status: http.StatusBadRequest},
	{test: 8, field: "lockfile", file: "Cargo.lock", body: "[[package]]\nchecksum = \"337789faa0\"\n", status: http.StatusOK, html: shuttleDiv},
	{test: 9, field: "lockfile", file: "Cargo.lock", body: "[[package]]\nchecksum = \"337789faa0\"\n", status: http.StatusOK, html: shuttleDiv},
	{test: 10, field: "lockfile", file: "Cargo.lock", body: "[[package]]\nchecksum = \"337789FAA0\"\n", status: http.StatusOK, html: shuttleDiv},
	{test: 11, field: "lockfile", file: "Cargo.lock", body: "[[package]]\nchecksum = \"3377QQFAA0\"\n", status: http.StatusUnprocessableEntity},
	{test: 12, field: "lockfile", file: "Cargo.lock", body: "[[package]]\nchecksum = \"BEEF\"\n", status: http.StatusUnprocessableEntity},
}

// multipartBody builds a form with at most one file part.
func multipartBody(field, file, body string) (string, []byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if field != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+file+`"`)
		h.Set("Content-Type", "application/octet-stream")
		part, err := w.CreatePart(h)
		if err != nil {
			return "", nil, err
		}
		if _, err := part.Write([]byte(body)); err != nil {
			return "", nil, err
		}
	}
	if err := w.Close(); err != nil {
		return "", nil, err
	}
	return w.FormDataContentType(), buf.Bytes(), nil
}

func getHTML(ctx context.Context, s *validator.Session, client *http.Client, path string, status int, want string) error {
	res, err := s.Get(ctx, client, path)
	if err != nil {
		return err
	}
	if err := s.ExpectStatus(res, status); err != nil {
		return err
	}
	if want == "" {
		return nil
	}
	return s.ExpectHTML(res, want)
}

func present(color, next string) string {
	return `<div class="present ` + color + `" hx-get="/23/present/` + next + `" hx-swap="outerHTML">` + ribbons + `</div>`
}

func ornament(on bool, id string) string {
	class, next := "ornament", "on"
	if on {
		class, next = "ornament on", "off"
	}
	return `<div class="` + class + `" id="ornament` + id + `" hx-trigger="load delay:2s once" hx-get="/23/ornament/` + next + `/` + id + `" hx-swap="outerHTML"></div>`
}

func validateDay23(ctx context.Context, s *validator.Session) error {
	client := s.Client()

	s.Test(1, 1)
	res, err := s.Get(ctx, client, "/assets/23.html")
	if err != nil {
		return err
	}
	if err := s.ExpectStatus(res, http.StatusOK); err != nil {
		return err
	}
	if err := s.Check(len(res.Body) == assetSize); err != nil {
		return err
	}
	if err := s.Complete(ctx, false, 0); err != nil {
		return err
	}

	s.Test(2, 1)
	if err := getHTML(ctx, s, client, "/23/star", http.StatusOK, `<div id="star" class="lit"></div>`); err != nil {
		return err
	}
	if err := s.Complete(ctx, false, 0); err != nil {
		return err
	}

	s.Test(3, 1)
	for _, pair := range [][2]string{{"red", "blue"}, {"blue", "purple"}, {"purple", "red"}} {
		if err := getHTML(ctx, s, client, "/23/present/"+pair[0], http.StatusOK, present(pair[0], pair[1])); err != nil {
			return err
		}
	}
	s.Test(3, 2)
	if err := getHTML(ctx, s, client, "/23/present/green", http.StatusTeapot, ""); err != nil {
		return err
	}
	if err := s.Complete(ctx, false, 0); err != nil {
		return err
	}

	s.Test(4, 1)
	if err := getHTML(ctx, s, client, "/23/ornament/on/1", http.StatusOK, ornament(true, "1")); err != nil {
		return err
	}
	if err := getHTML(ctx, s, client, "/23/ornament/off/1", http.StatusOK, ornament(false, "1")); err != nil {
		return err
	}
	if err := getHTML(ctx, s, client, "/23/ornament/off/100", http.StatusOK, ornament(false, "100")); err != nil {
		return err
	}
	s.Test(4, 2)
	if err := getHTML(ctx, s, client, "/23/ornament/on/the_prettiest_one", http.StatusOK, ornament(true, "the_prettiest_one")); err != nil {
		return err
	}
	s.Test(4, 3)
	if err := getHTML(ctx, s, client, "/23/ornament/maybe-on/1", http.StatusTeapot, ""); err != nil {
		return err
	}
	if err := s.Complete(ctx, false, 0); err != nil {
		return err
	}

	s.Test(5, 1)
	const escaped = `&quot;&gt;&lt;script&gt;alert(&quot;Spicy soup!&quot;)&lt;/script&gt;`
	path := "/23/ornament/on/%22%3E%3Cscript%3Ealert%28%22Spicy%20soup%21%22%29%3C%2Fscript%3E"
	if err := getHTML(ctx, s, client, path, http.StatusOK, ornament(true, escaped)); err != nil {
		return err
	}
	if err := s.Complete(ctx, true, 0); err != nil {
		return err
	}

	for _, c := range lockfileCases {
		s.Test(6, c.test)
		contentType, body, err := multipartBody(c.field, c.file, c.body)
		if err != nil {
			return s.Fail(ctx, err)
		}
		res, err := s.Do(ctx, client, validator.Request{Method: http.MethodPost, Path: "/23/lockfile", ContentType: contentType, Body: body})
		if err != nil {
			return err
		}
		if err := s.ExpectStatus(res, c.status); err != nil {
			return err
		}
		if c.html != "" {
			if err := s.ExpectHTML(res, c.html); err != nil {
				return err
			}
		}
	}
	return s.Complete(ctx, false, 100)
}
