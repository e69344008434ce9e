package service

import "strings"

var htmlEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
	`'`, "&#x27;",
)

// RenderPage wraps content in the day 14 page template. Safe pages escape
// the content first.
func RenderPage(content string, safe bool) string {
	if safe {
		content = htmlEscaper.Replace(content)
	}
	return "<html>\n  <head>\n    <title>CCH23 Day 14</title>\n  </head>\n  <body>\n    " +
		content + "\n  </body>\n</html>"
}
