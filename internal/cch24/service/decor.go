package service

import (
	"strconv"
	"strings"

	pkgerrors "codehunt/pkg/errors"

	"github.com/pelletier/go-toml/v2"
)

// StarHTML is the lit star fragment.
const StarHTML = `<div id="star" class="lit"></div>`

const ribbon = `<div class="ribbon"></div>`

var presentCycle = map[string]string{
	"red":    "blue",
	"blue":   "purple",
	"purple": "red",
}

var attrEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`"`, "&quot;",
	`'`, "&#39;",
	`<`, "&lt;",
	`>`, "&gt;",
)

// Present renders a present of the given color that swaps to the next one.
func Present(color string) (string, error) {
	next, ok := presentCycle[color]
	if !ok {
		return "", pkgerrors.New(pkgerrors.Teapot)
	}
	var b strings.Builder
	b.WriteString(`<div class="present ` + color + `" hx-get="/23/present/` + next + `" hx-swap="outerHTML">`)
	for i := 0; i < 4; i++ {
		b.WriteString(ribbon)
	}
	b.WriteString(`</div>`)
	return b.String(), nil
}

// Ornament renders an ornament that flips its state after two seconds. The
// id is escaped before it reaches any attribute.
func Ornament(state, id string) (string, error) {
	var class, next string
	switch state {
	case "on":
		class, next = "ornament on", "off"
	case "off":
		class, next = "ornament", "on"
	default:
		return "", pkgerrors.New(pkgerrors.Teapot)
	}
	safe := attrEscaper.Replace(id)
	return `<div class="` + class + `" id="ornament` + safe +
		`" hx-trigger="load delay:2s once" hx-get="/23/ornament/` + next + `/` + safe +
		`" hx-swap="outerHTML"></div>`, nil
}

type lockfile struct {
	Package []map[string]any `toml:"package"`
}

// checksumDigits is the number of hex digits a checksum must carry.
const checksumDigits = 10

// Lockfile turns every package checksum of a Cargo.lock into a positioned
// colored div, one per line.
func Lockfile(data []byte) (string, error) {
	var lock lockfile
	if err := toml.Unmarshal(data, &lock); err != nil {
		return "", pkgerrors.Wrapf(err, pkgerrors.InvalidFormat, "invalid lockfile")
	}
	divs := make([]string, 0, len(lock.Package))
	for _, pkg := range lock.Package {
		raw, ok := pkg["checksum"]
		if !ok {
			continue
		}
		sum, ok := raw.(string)
		if !ok {
			return "", pkgerrors.New(pkgerrors.InvalidFormat).WithMessage("checksum is not a string")
		}
		div, err := checksumDiv(sum)
		if err != nil {
			return "", err
		}
		divs = append(divs, div)
	}
	return strings.Join(divs, "\n"), nil
}

func checksumDiv(sum string) (string, error) {
	if len(sum) < checksumDigits || !isHex(sum) {
		return "", pkgerrors.New(pkgerrors.Unprocessable)
	}
	top, _ := strconv.ParseUint(sum[6:8], 16, 8)
	left, _ := strconv.ParseUint(sum[8:10], 16, 8)
	return `<div style="background-color:#` + strings.ToLower(sum[:6]) +
		`;top:` + strconv.FormatUint(top, 10) +
		`px;left:` + strconv.FormatUint(left, 10) + `px;"></div>`, nil
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}
