package region

import (
	"encoding/json"
	"strconv"
	"strings"
)

// BBox is a closed latitude/longitude rectangle.
type BBox struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

func (b BBox) contains(lat, lon float64) bool {
	return b.MinLat <= lat && lat <= b.MaxLat && b.MinLon <= lon && lon <= b.MaxLon
}

// Probe records: one per dataset shape, carrying exactly the field-name
// fallbacks the upstream payloads are known to use. Fields stay raw so a
// value of an unexpected type degrades to "absent" instead of failing the
// whole element.

// stationProbe matches one element of a station list.
type stationProbe struct {
	Code        json.RawMessage `json:"code"`
	StationCode json.RawMessage `json:"stationCode"`
	ID          json.RawMessage `json:"id"`
}

func (p stationProbe) code() string {
	return firstString(p.Code, p.StationCode, p.ID)
}

// trainProbe matches one element of a train/trip snapshot list.
type trainProbe struct {
	RouteName json.RawMessage `json:"routeName"`
	Route     json.RawMessage `json:"route"`
	Service   json.RawMessage `json:"service"`

	Station     json.RawMessage `json:"station"`
	StationCode json.RawMessage `json:"stationCode"`
	Code        json.RawMessage `json:"code"`
	From        json.RawMessage `json:"from"`
	To          json.RawMessage `json:"to"`
	Origin      json.RawMessage `json:"origin"`
	Destination json.RawMessage `json:"destination"`
	NextStation json.RawMessage `json:"nextStation"`
	PrevStation json.RawMessage `json:"prevStation"`
	LastStation json.RawMessage `json:"lastStation"`

	Stations      json.RawMessage `json:"stations"`
	Stops         json.RawMessage `json:"stops"`
	RouteStations json.RawMessage `json:"routeStations"`

	Lat       json.RawMessage `json:"lat"`
	Latitude  json.RawMessage `json:"latitude"`
	Lon       json.RawMessage `json:"lon"`
	Lng       json.RawMessage `json:"lng"`
	Longitude json.RawMessage `json:"longitude"`
}

func (p trainProbe) routeLabel() string {
	return firstString(p.RouteName, p.Route, p.Service)
}

func (p trainProbe) stationFields() []json.RawMessage {
	return []json.RawMessage{
		p.Station, p.StationCode, p.Code, p.From, p.To, p.Origin,
		p.Destination, p.NextStation, p.PrevStation, p.LastStation,
	}
}

func (p trainProbe) stationLists() []json.RawMessage {
	return []json.RawMessage{p.Stations, p.Stops, p.RouteStations}
}

// coordinates resolves the lat/lon field fallbacks. Presence wins over
// parseability: an unusable "lat" field does not fall through to "latitude".
func (p trainProbe) coordinates() (lat, lon float64, ok bool) {
	lat, ok = asFloat(firstPresent(p.Lat, p.Latitude))
	if !ok {
		return 0, 0, false
	}
	lon, ok = asFloat(firstPresent(p.Lon, p.Lng, p.Longitude))
	if !ok {
		return 0, 0, false
	}
	return lat, lon, true
}

// stationRefProbe matches one member of a train's station-reference list.
type stationRefProbe struct {
	Code        json.RawMessage `json:"code"`
	StationCode json.RawMessage `json:"stationCode"`
	Station     json.RawMessage `json:"station"`
}

func (p stationRefProbe) code() string {
	return firstString(p.Code, p.StationCode, p.Station)
}

// tripMetaProbe matches one value of the trip-metadata lookup. The route
// label lives under "rl" with "rs" as the legacy fallback; "svc" carries the
// service identifier used by the calendar join.
type tripMetaProbe struct {
	RL  json.RawMessage `json:"rl"`
	RS  json.RawMessage `json:"rs"`
	Svc json.RawMessage `json:"svc"`
}

func (p tripMetaProbe) routeLabel() string {
	return firstString(p.RL, p.RS)
}

// serviceID returns the stringified service identifier, or "" when the
// field is absent, empty, or numeric zero.
func (p tripMetaProbe) serviceID() string {
	switch strings.TrimSpace(string(p.Svc)) {
	case "", "null", "false", `""`:
		return ""
	}
	if _, isStr := asStringValue(p.Svc); !isStr {
		var f float64
		if json.Unmarshal(p.Svc, &f) == nil && f == 0 {
			return ""
		}
	}
	return stringify(p.Svc)
}

// asStringValue decodes raw as a JSON string.
func asStringValue(raw json.RawMessage) (string, bool) {
	if raw == nil {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// isTruthy reports whether raw is a non-empty, non-zero JSON value. Absent
// fields, null, false, zero, the empty string and empty containers are all
// falsy.
func isTruthy(raw json.RawMessage) bool {
	switch strings.TrimSpace(string(raw)) {
	case "", "null", "false", `""`, "[]", "{}":
		return false
	}
	if _, isStr := asStringValue(raw); !isStr {
		var f float64
		if json.Unmarshal(raw, &f) == nil && f == 0 {
			return false
		}
	}
	return true
}

// firstString resolves an or-chain of fallbacks: the first truthy candidate
// wins, and when that winner is not a string the chain yields no usable
// value rather than falling through to the next candidate.
func firstString(raws ...json.RawMessage) string {
	for _, raw := range raws {
		if raw == nil || !isTruthy(raw) {
			continue
		}
		s, ok := asStringValue(raw)
		if !ok {
			return ""
		}
		return s
	}
	return ""
}

// firstPresent returns the first candidate that exists in the payload at
// all, regardless of type.
func firstPresent(raws ...json.RawMessage) json.RawMessage {
	for _, raw := range raws {
		if raw != nil {
			return raw
		}
	}
	return nil
}

// asFloat decodes a JSON number or a numeric string. A JSON null is not a
// number even though Unmarshal accepts it as a no-op.
func asFloat(raw json.RawMessage) (float64, bool) {
	if raw == nil || isJSONNull(raw) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	s, ok := asStringValue(raw)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// stringify renders a scalar the way the join sets are keyed: strings
// decode, everything else keeps its literal text (so the number 123 matches
// the key "123").
func stringify(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	if s, ok := asStringValue(raw); ok {
		return s
	}
	return strings.TrimSpace(string(raw))
}
