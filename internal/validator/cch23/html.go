package cch23

import (
	"context"
	"net/http"

	"codehunt/internal/validator"
)

func renderPage(content string) string {
	return "<html>\n  <head>\n    <title>CCH23 Day 14</title>\n  </head>\n  <body>\n    " +
		content + "\n  </body>\n</html>"
}

func validateDay14(ctx context.Context, s *validator.Session) error {
	client := s.Client()
	post := func(path, content string) (*validator.Response, error) {
		return s.SendJSON(ctx, client, http.MethodPost, path, map[string]string{"content": content})
	}

	unsafe := []struct{ content, want string }{
		{"Bing Chilling 🥶🍦", renderPage("Bing Chilling 🥶🍦")},
		{`<script>alert("XSS Attack Success!")</script>`, renderPage(`<script>alert("XSS Attack Success!")</script>`)},
	}
	for i, c := range unsafe {
		s.Test(1, i+1)
		res, err := post("/14/unsafe", c.content)
		if err != nil {
			return err
		}
		if err := s.ExpectText(res, c.want); err != nil {
			return err
		}
	}
	if err := s.Complete(ctx, true, 0); err != nil {
		return err
	}

	s.Test(2, 1)
	res, err := post("/14/safe", `<script>alert("XSS Attack Failed!")</script>`)
	if err != nil {
		return err
	}
	if err := s.ExpectText(res, renderPage("&lt;script&gt;alert(&quot;XSS Attack Failed!&quot;)&lt;/script&gt;")); err != nil {
		return err
	}
	return s.Complete(ctx, false, 100)
}
