package service

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"codehunt/internal/common/cache"
	pkgerrors "codehunt/pkg/errors"
	"codehunt/pkg/utils/logger"

	"github.com/golang/geo/s2"
	"go.uber.org/zap"
)

const countryKeyPrefix = "cch23:21:country:"

// ParseCell reads an S2 cell id written as a 64 digit binary string.
func ParseCell(binary string) (s2.CellID, error) {
	if len(binary) != 64 {
		return 0, pkgerrors.Newf(pkgerrors.InvalidFormat, "cell id must have 64 bits, got %d", len(binary))
	}
	raw, err := strconv.ParseUint(binary, 2, 64)
	if err != nil {
		return 0, pkgerrors.Wrapf(err, pkgerrors.InvalidFormat, "invalid cell id %q", binary)
	}
	cell := s2.CellID(raw)
	if !cell.IsValid() {
		return 0, pkgerrors.Newf(pkgerrors.InvalidValue, "%s is not a valid s2 cell", binary)
	}
	return cell, nil
}

// CellCoords formats the centre of a cell as latitude then longitude, each in
// degrees, minutes and seconds followed by its hemisphere letter.
func CellCoords(cell s2.CellID) string {
	ll := cell.LatLng()
	return formatDMS(ll.Lat.Degrees(), 'N', 'S') + " " + formatDMS(ll.Lng.Degrees(), 'E', 'W')
}

func formatDMS(deg float64, positive, negative byte) string {
	hemisphere := positive
	if deg < 0 {
		hemisphere = negative
	}
	abs := math.Abs(deg)
	d := math.Floor(abs)
	minutes := (abs - d) * 60
	m := math.Floor(minutes)
	seconds := strconv.FormatFloat((minutes-m)*60, 'f', 3, 64)
	// 59.9996 seconds prints as 60.000 and carries into the minute.
	if seconds == "60.000" {
		seconds = "0.000"
		m++
		if m == 60 {
			m = 0
			d++
		}
	}
	return fmt.Sprintf("%d°%d'%s''%c", int(d), int(m), seconds, hemisphere)
}

// Geocoder names the country under a point using a Nominatim compatible
// reverse geocoding API.
type Geocoder struct {
	api   upstream
	cache cache.BasicOps
}

// NewGeocoder creates a Geocoder that remembers answers in c.
func NewGeocoder(cfg UpstreamConfig, c cache.BasicOps) *Geocoder {
	cfg = cfg.WithDefaults()
	return &Geocoder{
		api:   newUpstream(cfg.GeocoderURL, cfg.UserAgent, cfg.Timeout),
		cache: c,
	}
}

// Country returns the English name of the country containing the centre of cell.
func (g *Geocoder) Country(ctx context.Context, cell s2.CellID) (string, error) {
	key := countryKeyPrefix + cell.ToToken()
	if name, err := g.cache.Get(ctx, key); err == nil && name != "" {
		return name, nil
	}

	ll := cell.LatLng()
	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("zoom", "3")
	query.Set("accept-language", "en")
	query.Set("lat", strconv.FormatFloat(ll.Lat.Degrees(), 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(ll.Lng.Degrees(), 'f', -1, 64))

	var place struct {
		Error   string `json:"error"`
		Address struct {
			Country string `json:"country"`
		} `json:"address"`
	}
	missing, err := g.api.getJSON(ctx, "/reverse?"+query.Encode(), &place)
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(place.Address.Country)
	if missing || place.Error != "" || name == "" {
		return "", pkgerrors.Newf(pkgerrors.NotFound, "no country at %s", cell.ToToken())
	}

	if err := g.cache.Set(ctx, key, name, lookupCacheTTL); err != nil {
		logger.Warn(ctx, "cache country failed", zap.String("cell", cell.ToToken()), zap.Error(err))
	}
	return name, nil
}
