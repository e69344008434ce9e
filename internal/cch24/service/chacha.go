package service

import (
	"encoding/binary"
	"math/bits"
)

const chachaRounds = 12

// chachaRNG is a ChaCha12 keystream used as a deterministic generator. It
// matches the word order of the reference rand_chacha generator seeded
// through PCG32, so seed 2024 always yields the same boards.
type chachaRNG struct {
	key     [8]uint32
	counter uint64
	buf     [16]uint32
	pos     int
}

// newChaChaRNG expands seed into a key with PCG32, one 32 bit word at a time.
func newChaChaRNG(seed uint64) *chachaRNG {
	const (
		mul = 6364136223846793005
		inc = 11634580027462260723
	)
	var raw [32]byte
	state := seed
	for i := 0; i < len(raw); i += 4 {
		state = state*mul + inc
		xorshifted := uint32(((state >> 18) ^ state) >> 27)
		rot := int(state >> 59)
		binary.LittleEndian.PutUint32(raw[i:], bits.RotateLeft32(xorshifted, -rot))
	}
	r := &chachaRNG{pos: 16}
	for i := range r.key {
		r.key[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	return r
}

func quarterRound(s *[16]uint32, a, b, c, d int) {
	s[a] += s[b]
	s[d] = bits.RotateLeft32(s[d]^s[a], 16)
	s[c] += s[d]
	s[b] = bits.RotateLeft32(s[b]^s[c], 12)
	s[a] += s[b]
	s[d] = bits.RotateLeft32(s[d]^s[a], 8)
	s[c] += s[d]
	s[b] = bits.RotateLeft32(s[b]^s[c], 7)
}

func (r *chachaRNG) refill() {
	in := [16]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574}
	copy(in[4:12], r.key[:])
	in[12] = uint32(r.counter)
	in[13] = uint32(r.counter >> 32)
	w := in
	for i := 0; i < chachaRounds; i += 2 {
		quarterRound(&w, 0, 4, 8, 12)
		quarterRound(&w, 1, 5, 9, 13)
		quarterRound(&w, 2, 6, 10, 14)
		quarterRound(&w, 3, 7, 11, 15)
		quarterRound(&w, 0, 5, 10, 15)
		quarterRound(&w, 1, 6, 11, 12)
		quarterRound(&w, 2, 7, 8, 13)
		quarterRound(&w, 3, 4, 9, 14)
	}
	for i := range w {
		r.buf[i] = w[i] + in[i]
	}
	r.counter++
	r.pos = 0
}

func (r *chachaRNG) Uint32() uint32 {
	if r.pos >= len(r.buf) {
		r.refill()
	}
	v := r.buf[r.pos]
	r.pos++
	return v
}

// Bool is true when the top bit of the next word is set.
func (r *chachaRNG) Bool() bool {
	return int32(r.Uint32()) < 0
}
