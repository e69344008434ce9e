package service

import (
	"bufio"
	"fmt"
	"math"
	"strconv"
	"strings"

	pkgerrors "codehunt/pkg/errors"
)

const maxPresents = 1 << 20

// LonelyInteger returns the only number in text, one per line, that occurs
// an odd number of times.
func LonelyInteger(text string) (uint64, error) {
	var acc uint64
	var seen bool
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		n, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			return 0, pkgerrors.Wrapf(err, pkgerrors.InvalidFormat, "invalid integer %q", line)
		}
		acc ^= n
		seen = true
	}
	if err := scanner.Err(); err != nil {
		return 0, pkgerrors.Wrap(err, pkgerrors.InvalidFormat)
	}
	if !seen {
		return 0, pkgerrors.New(pkgerrors.InvalidParams)
	}
	return acc, nil
}

// Presents wraps n presents.
func Presents(n uint64) (string, error) {
	if n > maxPresents {
		return "", pkgerrors.Newf(pkgerrors.InvalidValue, "%d presents do not fit on the sleigh", n)
	}
	return strings.Repeat("🎁", int(n)), nil
}

// Distances are single precision, rounded after every operation, so routes
// print the same digits as the published answers.
type star struct{ x, y, z float32 }

func (a star) distance(b star) float32 {
	dx, dy, dz := a.x-b.x, a.y-b.y, a.z-b.z
	sum := float32(float32(dx*dx)+float32(dy*dy)) + float32(dz*dz)
	return float32(math.Sqrt(float64(sum)))
}

// StarMap holds stars and the one way portals between them.
type StarMap struct {
	stars   []star
	portals [][]int
}

// ParseStarMap reads the star count, one "x y z" line per star, the portal
// count and one "from to" line per portal.
func ParseStarMap(text string) (*StarMap, error) {
	fields := strings.Fields(text)
	next := func() (int64, error) {
		if len(fields) == 0 {
			return 0, pkgerrors.Newf(pkgerrors.InvalidFormat, "star map ended early")
		}
		v, err := strconv.ParseInt(fields[0], 10, 64)
		fields = fields[1:]
		if err != nil {
			return 0, pkgerrors.Wrapf(err, pkgerrors.InvalidFormat, "invalid number")
		}
		return v, nil
	}

	count, err := next()
	if err != nil {
		return nil, err
	}
	if count < 1 || count > int64(len(fields)) {
		return nil, pkgerrors.Newf(pkgerrors.InvalidValue, "invalid star count %d", count)
	}
	m := &StarMap{stars: make([]star, count), portals: make([][]int, count)}
	for i := range m.stars {
		var coord [3]int64
		for k := range coord {
			if coord[k], err = next(); err != nil {
				return nil, err
			}
		}
		m.stars[i] = star{float32(coord[0]), float32(coord[1]), float32(coord[2])}
	}

	portals, err := next()
	if err != nil {
		return nil, err
	}
	if portals < 0 || portals > int64(len(fields)) {
		return nil, pkgerrors.Newf(pkgerrors.InvalidValue, "invalid portal count %d", portals)
	}
	for i := int64(0); i < portals; i++ {
		from, err := next()
		if err != nil {
			return nil, err
		}
		to, err := next()
		if err != nil {
			return nil, err
		}
		if from < 0 || from >= count || to < 0 || to >= count {
			return nil, pkgerrors.Newf(pkgerrors.InvalidValue, "portal %d -> %d leaves the map", from, to)
		}
		m.portals[from] = append(m.portals[from], int(to))
	}
	return m, nil
}

// Route finds the path from the first to the last star using the fewest
// portals and returns the portal count and the distance travelled.
func (m *StarMap) Route() (int, float32, error) {
	target := len(m.stars) - 1
	prev := make([]int, len(m.stars))
	for i := range prev {
		prev[i] = -1
	}
	prev[0] = 0
	queue := []int{0}
	for len(queue) > 0 && prev[target] < 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range m.portals[cur] {
			if prev[n] < 0 {
				prev[n] = cur
				queue = append(queue, n)
			}
		}
	}
	if prev[target] < 0 {
		return 0, 0, pkgerrors.Newf(pkgerrors.Unprocessable, "no route to star %d", target)
	}

	path := []int{target}
	for at := target; at != 0; at = prev[at] {
		path = append(path, prev[at])
	}
	var distance float32
	for i := len(path) - 1; i > 0; i-- {
		distance = float32(distance + m.stars[path[i]].distance(m.stars[path[i-1]]))
	}
	return len(path) - 1, distance, nil
}

// FormatRoute renders a route as "<portals> <distance>".
func FormatRoute(portals int, distance float32) string {
	return fmt.Sprintf("%d %.3f", portals, float64(distance))
}
