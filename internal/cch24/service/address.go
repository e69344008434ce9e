// Package service holds the cch24 challenge logic behind the HTTP handlers.
package service

import (
	"net/netip"

	pkgerrors "codehunt/pkg/errors"
)

func parseAddr(raw string, v6 bool) (netip.Addr, error) {
	addr, err := netip.ParseAddr(raw)
	if err != nil || addr.Is6() != v6 || addr.Zone() != "" {
		return netip.Addr{}, pkgerrors.Newf(pkgerrors.InvalidParams, "invalid address %q", raw)
	}
	return addr, nil
}

func combine(a, b netip.Addr, op func(x, y byte) byte) netip.Addr {
	if a.Is4() {
		x, y := a.As4(), b.As4()
		for i := range x {
			x[i] = op(x[i], y[i])
		}
		return netip.AddrFrom4(x)
	}
	x, y := a.As16(), b.As16()
	for i := range x {
		x[i] = op(x[i], y[i])
	}
	return netip.AddrFrom16(x)
}

// Dest4 adds key to from octet by octet, wrapping around.
func Dest4(from, key string) (string, error) {
	f, err := parseAddr(from, false)
	if err != nil {
		return "", err
	}
	k, err := parseAddr(key, false)
	if err != nil {
		return "", err
	}
	return combine(f, k, func(x, y byte) byte { return x + y }).String(), nil
}

// Key4 recovers the key that takes from to to.
func Key4(from, to string) (string, error) {
	f, err := parseAddr(from, false)
	if err != nil {
		return "", err
	}
	t, err := parseAddr(to, false)
	if err != nil {
		return "", err
	}
	return combine(t, f, func(x, y byte) byte { return x - y }).String(), nil
}

func xor6(a, b string) (string, error) {
	x, err := parseAddr(a, true)
	if err != nil {
		return "", err
	}
	y, err := parseAddr(b, true)
	if err != nil {
		return "", err
	}
	return combine(x, y, func(p, q byte) byte { return p ^ q }).String(), nil
}

// Dest6 xors from with key.
func Dest6(from, key string) (string, error) {
	return xor6(from, key)
}

// Key6 xors from with to, which is the key.
func Key6(from, to string) (string, error) {
	return xor6(from, to)
}
