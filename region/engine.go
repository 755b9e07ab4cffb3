package region

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Engine filters payloads against one corridor whitelist: a station-code
// set, a bounding rectangle and a list of route-name substrings.
type Engine struct {
	codes   map[string]bool
	bbox    BBox
	hints   []string
	dataDir string
}

// New builds an engine. hints are matched case-insensitively.
func New(codes []string, bbox BBox, hints []string, dataDir string) *Engine {
	e := &Engine{
		codes:   make(map[string]bool, len(codes)),
		bbox:    bbox,
		hints:   make([]string, 0, len(hints)),
		dataDir: dataDir,
	}
	for _, c := range codes {
		e.codes[c] = true
	}
	for _, h := range hints {
		e.hints = append(e.hints, strings.ToLower(h))
	}
	return e
}

// AllowsStation reports whether code is on the whitelist.
func (e *Engine) AllowsStation(code string) bool {
	return e.codes[code]
}

func (e *Engine) labelMatches(label string) bool {
	if label == "" {
		return false
	}
	label = strings.ToLower(label)
	for _, h := range e.hints {
		if strings.Contains(label, h) {
			return true
		}
	}
	return false
}

// Payload lists arrive either bare or wrapped in an object under a
// dataset-specific key (checked in order).
var (
	stationWrapperKeys = []string{"stations", "data", "results"}
	trainWrapperKeys   = []string{"trains", "data", "results"}
)

// filterList applies keep to a list payload, bare or wrapped under one of
// wrapperKeys. The boolean reports whether raw was recognized as a
// filterable shape; an empty result for a bare or wrapped list falls back to
// the unfiltered list.
func filterList(raw []byte, wrapperKeys []string, keep func(json.RawMessage) bool) ([]byte, bool) {
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		out := filterElements(list, keep)
		if len(out) == 0 {
			return raw, true
		}
		buf, err := json.Marshal(out)
		if err != nil {
			return raw, false
		}
		return buf, true
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return raw, false
	}
	for _, key := range wrapperKeys {
		inner, ok := wrapper[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(inner, &list); err != nil {
			continue
		}
		out := filterElements(list, keep)
		if len(out) == 0 {
			// fail-open on an emptied wrapped list too
			return raw, true
		}
		replaced, err := json.Marshal(out)
		if err != nil {
			return raw, false
		}
		wrapper[key] = replaced
		buf, err := json.Marshal(wrapper)
		if err != nil {
			return raw, false
		}
		return buf, true
	}
	return raw, false
}

func isJSONNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

func filterElements(list []json.RawMessage, keep func(json.RawMessage) bool) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(list))
	for _, el := range list {
		if keep(el) {
			out = append(out, el)
		}
	}
	return out
}

// FilterStations keeps only whitelisted stations from a station-list
// payload. The boolean reports whether the payload was rewritten.
func (e *Engine) FilterStations(raw []byte) ([]byte, bool) {
	return filterList(raw, stationWrapperKeys, func(el json.RawMessage) bool {
		var p stationProbe
		if err := json.Unmarshal(el, &p); err != nil {
			return false
		}
		return e.codes[p.code()]
	})
}

// FilterTrains keeps a train when its route label matches a corridor
// service, when it references a whitelisted station, or when its position
// falls inside the bounding rectangle.
func (e *Engine) FilterTrains(raw []byte) ([]byte, bool) {
	return filterList(raw, trainWrapperKeys, func(el json.RawMessage) bool {
		var p trainProbe
		if err := json.Unmarshal(el, &p); err != nil {
			return false
		}
		if e.labelMatches(p.routeLabel()) {
			return true
		}
		if e.mentionsStation(p) {
			return true
		}
		if lat, lon, ok := p.coordinates(); ok && e.bbox.contains(lat, lon) {
			return true
		}
		return false
	})
}

func (e *Engine) mentionsStation(p trainProbe) bool {
	for _, f := range p.stationFields() {
		if s, ok := asStringValue(f); ok && e.codes[s] {
			return true
		}
	}
	for _, f := range p.stationLists() {
		if f == nil {
			continue
		}
		var members []json.RawMessage
		if err := json.Unmarshal(f, &members); err != nil {
			continue
		}
		for _, m := range members {
			if s, ok := asStringValue(m); ok {
				if e.codes[s] {
					return true
				}
				continue
			}
			var ref stationRefProbe
			if err := json.Unmarshal(m, &ref); err != nil {
				continue
			}
			if code := ref.code(); code != "" && e.codes[code] {
				return true
			}
		}
	}
	return false
}

// FilterDataFile narrows a GTFS-derived dataset file, dispatching on the
// file name. Unknown files and undecodable payloads pass through unchanged.
func (e *Engine) FilterDataFile(relpath string, raw []byte) []byte {
	switch {
	case strings.HasSuffix(relpath, "stops.json"):
		return e.filterStops(raw)
	case strings.HasSuffix(relpath, "tripmap.json"):
		return e.filterTripMap(raw)
	case strings.HasSuffix(relpath, "stop_events.json"):
		return e.filterStopEvents(raw)
	case strings.HasSuffix(relpath, "services_by_date.json"):
		return e.filterServicesByDate(raw)
	}
	return raw
}

// filterStops keeps entries of the code->metadata mapping whose key is
// whitelisted.
func (e *Engine) filterStops(raw []byte) []byte {
	var stops map[string]json.RawMessage
	if err := json.Unmarshal(raw, &stops); err != nil {
		return raw
	}
	out := make(map[string]json.RawMessage)
	for code, meta := range stops {
		if e.codes[code] {
			out[code] = meta
		}
	}
	buf, err := json.Marshal(out)
	if err != nil {
		return raw
	}
	return buf
}

// filterTripMap keeps entries of the tripID->metadata mapping whose route
// label names a corridor service.
func (e *Engine) filterTripMap(raw []byte) []byte {
	var trips map[string]json.RawMessage
	if err := json.Unmarshal(raw, &trips); err != nil {
		return raw
	}
	out := make(map[string]json.RawMessage)
	for tid, rawMeta := range trips {
		var meta tripMetaProbe
		if err := json.Unmarshal(rawMeta, &meta); err != nil {
			continue
		}
		if e.labelMatches(meta.routeLabel()) {
			out[tid] = rawMeta
		}
	}
	buf, err := json.Marshal(out)
	if err != nil {
		return raw
	}
	return buf
}

// allowedTripIDs side-loads the trip metadata file and derives the set of
// trip identifiers whose route label passes the corridor test. ok is false
// when the file is missing or malformed; callers then fail open.
func (e *Engine) allowedTripIDs() (map[string]bool, bool) {
	data, err := os.ReadFile(filepath.Join(e.dataDir, "tripmap.json"))
	if err != nil {
		return nil, false
	}
	var trips map[string]tripMetaProbe
	if err := json.Unmarshal(data, &trips); err != nil {
		return nil, false
	}
	allowed := make(map[string]bool)
	for tid, meta := range trips {
		if e.labelMatches(meta.routeLabel()) {
			allowed[tid] = true
		}
	}
	return allowed, true
}

// allowedServiceIDs derives the service identifiers carried by corridor
// trips. ok is false when the trip metadata cannot be side-loaded.
func (e *Engine) allowedServiceIDs() (map[string]bool, bool) {
	data, err := os.ReadFile(filepath.Join(e.dataDir, "tripmap.json"))
	if err != nil {
		return nil, false
	}
	var trips map[string]json.RawMessage
	if err := json.Unmarshal(data, &trips); err != nil {
		return nil, false
	}
	allowed := make(map[string]bool)
	for _, rawMeta := range trips {
		var meta tripMetaProbe
		if err := json.Unmarshal(rawMeta, &meta); err != nil {
			continue
		}
		if !e.labelMatches(meta.routeLabel()) {
			continue
		}
		if svc := meta.serviceID(); svc != "" {
			allowed[svc] = true
		}
	}
	return allowed, true
}

// filterStopEvents keeps whitelisted station keys and, when the trip
// metadata join is available, only the [arrival, departure, tripID] triples
// whose trip identifier is allowed. A failed join keeps every triple for the
// surviving stations.
func (e *Engine) filterStopEvents(raw []byte) []byte {
	var events map[string]json.RawMessage
	if err := json.Unmarshal(raw, &events); err != nil {
		return raw
	}
	allowed, haveJoin := e.allowedTripIDs()

	out := make(map[string]json.RawMessage)
	for code, rawList := range events {
		if !e.codes[code] {
			continue
		}
		var list []json.RawMessage
		if err := json.Unmarshal(rawList, &list); err != nil || isJSONNull(rawList) {
			continue
		}
		if !haveJoin {
			out[code] = rawList
			continue
		}
		kept := make([]json.RawMessage, 0, len(list))
		for _, rawTriple := range list {
			var triple []json.RawMessage
			if err := json.Unmarshal(rawTriple, &triple); err != nil {
				continue
			}
			if len(triple) < 3 {
				continue
			}
			if allowed[stringify(triple[2])] {
				kept = append(kept, rawTriple)
			}
		}
		buf, err := json.Marshal(kept)
		if err != nil {
			continue
		}
		out[code] = buf
	}
	buf, err := json.Marshal(out)
	if err != nil {
		return raw
	}
	return buf
}

// filterServicesByDate narrows each date's service-identifier list to the
// services run by corridor trips. When trip metadata is unavailable the
// whole mapping passes through unfiltered; non-list values are kept as-is.
func (e *Engine) filterServicesByDate(raw []byte) []byte {
	var byDate map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byDate); err != nil {
		return raw
	}
	allowed, ok := e.allowedServiceIDs()
	if !ok {
		return raw
	}
	out := make(map[string]json.RawMessage)
	for date, rawList := range byDate {
		var list []json.RawMessage
		if err := json.Unmarshal(rawList, &list); err != nil || isJSONNull(rawList) {
			out[date] = rawList
			continue
		}
		kept := make([]json.RawMessage, 0, len(list))
		for _, svc := range list {
			if allowed[stringify(svc)] {
				kept = append(kept, svc)
			}
		}
		buf, err := json.Marshal(kept)
		if err != nil {
			out[date] = rawList
			continue
		}
		out[date] = buf
	}
	buf, err := json.Marshal(out)
	if err != nil {
		return raw
	}
	return buf
}
