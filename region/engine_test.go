package region

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeList(t *testing.T, raw []byte) []map[string]any {
	t.Helper()
	var list []map[string]any
	require.NoError(t, json.Unmarshal(raw, &list))
	return list
}

func TestFilterStationsBareList(t *testing.T) {
	e := NEC(t.TempDir())
	in := []byte(`[
		{"code": "NYP", "name": "New York Penn", "extra": {"tz": "ET"}},
		{"code": "CHI", "name": "Chicago Union"},
		{"stationCode": "WAS"},
		{"id": "BOS"}
	]`)

	out, changed := e.FilterStations(in)
	require.True(t, changed)
	list := decodeList(t, out)
	require.Len(t, list, 3)
	// Kept elements survive byte-for-byte, unknown fields included.
	assert.Equal(t, "New York Penn", list[0]["name"])
	assert.Equal(t, map[string]any{"tz": "ET"}, list[0]["extra"])
}

func TestFilterStationsWrappedList(t *testing.T) {
	e := NEC(t.TempDir())
	in := []byte(`{"version": 3, "stations": [{"code": "PHL"}, {"code": "LAX"}]}`)

	out, changed := e.FilterStations(in)
	require.True(t, changed)
	var wrapper map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &wrapper))
	// Sibling keys of the wrapped list are preserved.
	assert.Contains(t, wrapper, "version")
	var kept []map[string]any
	require.NoError(t, json.Unmarshal(wrapper["stations"], &kept))
	require.Len(t, kept, 1)
	assert.Equal(t, "PHL", kept[0]["code"])
}

func TestFilterStationsIsIdempotent(t *testing.T) {
	e := NEC(t.TempDir())
	in := []byte(`[{"code": "NYP"}, {"code": "CHI"}, {"code": "WAS"}]`)

	once, changed := e.FilterStations(in)
	require.True(t, changed)
	twice, changed := e.FilterStations(once)
	require.True(t, changed)
	assert.JSONEq(t, string(once), string(twice))
}

func TestFilterStationsEmptyResultFailsOpen(t *testing.T) {
	e := NEC(t.TempDir())
	in := []byte(`[{"code": "CHI"}, {"code": "LAX"}]`)

	out, changed := e.FilterStations(in)
	assert.True(t, changed)
	assert.Equal(t, in, out, "emptied list falls back to the original payload")
}

func TestFilterStationsUnparseablePassesThrough(t *testing.T) {
	e := NEC(t.TempDir())
	in := []byte(`this is not json`)

	out, changed := e.FilterStations(in)
	assert.False(t, changed)
	assert.Equal(t, in, out)
}

func TestFilterTrainsByRouteName(t *testing.T) {
	e := NEC(t.TempDir())
	in := []byte(`[
		{"routeName": "Acela", "trainNum": "2150"},
		{"routeName": "Empire Builder", "trainNum": "7"},
		{"route": "northeast regional"}
	]`)

	out, changed := e.FilterTrains(in)
	require.True(t, changed)
	list := decodeList(t, out)
	require.Len(t, list, 2)
	assert.Equal(t, "2150", list[0]["trainNum"])
}

func TestFilterTrainsWrappedList(t *testing.T) {
	e := NEC(t.TempDir())
	in := []byte(`{"trains": [
		{"routeName": "Acela"},
		{"routeName": "Empire Builder", "lat": 41.88, "lon": -87.63}
	]}`)

	out, changed := e.FilterTrains(in)
	require.True(t, changed, "wrapped trains payload is filterable")
	var wrapper map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &wrapper))
	var kept []map[string]any
	require.NoError(t, json.Unmarshal(wrapper["trains"], &kept))
	require.Len(t, kept, 1)
	assert.Equal(t, "Acela", kept[0]["routeName"])
}

func TestFilterTrainsLabelChainStopsAtTruthyValue(t *testing.T) {
	e := NEC(t.TempDir())
	// A truthy non-string routeName consumes the fallback chain; an empty
	// string falls through to the next candidate.
	in := []byte(`[
		{"routeName": 123, "route": "Acela"},
		{"routeName": "", "route": "Acela", "trainNum": "42"}
	]`)

	out, changed := e.FilterTrains(in)
	require.True(t, changed)
	list := decodeList(t, out)
	require.Len(t, list, 1)
	assert.Equal(t, "42", list[0]["trainNum"])
}

func TestFilterTrainsByStationReference(t *testing.T) {
	e := NEC(t.TempDir())
	in := []byte(`[
		{"routeName": "Empire Builder", "origin": "NYP"},
		{"routeName": "Empire Builder", "stations": ["MSP", "CHI"]},
		{"routeName": "Lake Shore Limited", "stations": [{"code": "BOS"}, {"code": "ALB"}]},
		{"routeName": "Coast Starlight", "origin": "SEA"}
	]`)

	out, changed := e.FilterTrains(in)
	require.True(t, changed)
	list := decodeList(t, out)
	require.Len(t, list, 2)
	assert.Equal(t, "NYP", list[0]["origin"])
}

func TestFilterTrainsByPosition(t *testing.T) {
	e := NEC(t.TempDir())
	in := []byte(`[
		{"routeName": "Unknown", "lat": 40.75, "lon": -73.99},
		{"routeName": "Unknown", "lat": 41.88, "lon": -87.63},
		{"routeName": "Unknown", "latitude": "39.95", "longitude": "-75.18"}
	]`)

	out, changed := e.FilterTrains(in)
	require.True(t, changed)
	list := decodeList(t, out)
	require.Len(t, list, 2)
}

func TestFilterTrainsUnusableCoordinateDoesNotFallBack(t *testing.T) {
	e := NEC(t.TempDir())
	// "lat" is present but unusable, so "latitude" is never consulted.
	in := []byte(`[
		{"routeName": "Unknown", "lat": null, "latitude": 40.75, "lon": -73.99},
		{"routeName": "Acela"}
	]`)

	out, changed := e.FilterTrains(in)
	require.True(t, changed)
	list := decodeList(t, out)
	require.Len(t, list, 1)
	assert.Equal(t, "Acela", list[0]["routeName"])
}

func TestFilterTrainsEmptyResultFailsOpen(t *testing.T) {
	e := NEC(t.TempDir())
	in := []byte(`[{"routeName": "Coast Starlight", "lat": 47.6, "lon": -122.3}]`)

	out, changed := e.FilterTrains(in)
	assert.True(t, changed)
	assert.Equal(t, in, out)
}

func TestFilterStopsKeepsWhitelistedKeys(t *testing.T) {
	e := NEC(t.TempDir())
	in := []byte(`{
		"NYP": {"name": "New York Penn"},
		"CHI": {"name": "Chicago Union"},
		"WAS": {"name": "Washington Union"}
	}`)

	out := e.FilterDataFile("stops.json", in)
	var stops map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &stops))
	assert.Contains(t, stops, "NYP")
	assert.Contains(t, stops, "WAS")
	assert.NotContains(t, stops, "CHI")
}

func TestFilterStopsEmptyResultStaysEmpty(t *testing.T) {
	e := NEC(t.TempDir())
	in := []byte(`{"CHI": {}, "LAX": {}}`)

	out := e.FilterDataFile("stops.json", in)
	var stops map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &stops))
	assert.Empty(t, stops, "keyed mappings have no empty-result fallback")
}

func TestFilterTripMap(t *testing.T) {
	e := NEC(t.TempDir())
	in := []byte(`{
		"t1": {"rl": "Acela", "svc": "a"},
		"t2": {"rl": "Empire Builder", "svc": "b"},
		"t3": {"rs": "Northeast Regional"},
		"t4": "not an object"
	}`)

	out := e.FilterDataFile("tripmap.json", in)
	var trips map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &trips))
	assert.Contains(t, trips, "t1")
	assert.Contains(t, trips, "t3", "rs is the fallback route label")
	assert.NotContains(t, trips, "t2")
	assert.NotContains(t, trips, "t4")
}

func writeTripMap(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tripmap.json"), []byte(content), 0o600))
}

func TestFilterStopEventsJoinsTripMetadata(t *testing.T) {
	dir := t.TempDir()
	writeTripMap(t, dir, `{
		"t1": {"rl": "Acela", "svc": "wk"},
		"t2": {"rl": "Empire Builder", "svc": "xc"}
	}`)
	e := NEC(dir)
	in := []byte(`{
		"NYP": [["08:00", "08:05", "t1"], ["09:00", "09:02", "t2"]],
		"CHI": [["10:00", "10:05", "t2"]],
		"WAS": null
	}`)

	out := e.FilterDataFile("stop_events.json", in)
	var events map[string][][]string
	require.NoError(t, json.Unmarshal(out, &events))
	require.Contains(t, events, "NYP")
	assert.NotContains(t, events, "CHI")
	assert.NotContains(t, events, "WAS", "null value is dropped, not kept")
	require.Len(t, events["NYP"], 1)
	assert.Equal(t, "t1", events["NYP"][0][2])
}

func TestFilterStopEventsNumericTripIDs(t *testing.T) {
	dir := t.TempDir()
	writeTripMap(t, dir, `{"123": {"rl": "Acela"}}`)
	e := NEC(dir)
	in := []byte(`{"NYP": [["08:00", "08:05", 123], ["09:00", "09:02", 456]]}`)

	out := e.FilterDataFile("stop_events.json", in)
	var events map[string][]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &events))
	require.Len(t, events["NYP"], 1)
}

func TestFilterStopEventsFailedJoinKeepsAllTriples(t *testing.T) {
	dir := t.TempDir()
	e := NEC(dir) // no tripmap.json on disk
	in := []byte(`{
		"NYP": [["08:00", "08:05", "t1"], ["09:00", "09:02", "t2"]],
		"CHI": [["10:00", "10:05", "t2"]]
	}`)

	out := e.FilterDataFile("stop_events.json", in)
	var events map[string][][]string
	require.NoError(t, json.Unmarshal(out, &events))
	assert.Len(t, events["NYP"], 2, "failed join keeps every triple")
	assert.NotContains(t, events, "CHI", "station whitelist still applies")
}

func TestFilterStopEventsMalformedTripMapFailsOpen(t *testing.T) {
	dir := t.TempDir()
	// One non-object value poisons the whole strict decode.
	writeTripMap(t, dir, `{"t1": {"rl": "Acela"}, "t2": "garbage"}`)
	e := NEC(dir)
	in := []byte(`{"NYP": [["08:00", "08:05", "t2"]]}`)

	out := e.FilterDataFile("stop_events.json", in)
	var events map[string][][]string
	require.NoError(t, json.Unmarshal(out, &events))
	assert.Len(t, events["NYP"], 1)
}

func TestFilterServicesByDate(t *testing.T) {
	dir := t.TempDir()
	writeTripMap(t, dir, `{
		"t1": {"rl": "Acela", "svc": "wk"},
		"t2": {"rl": "Empire Builder", "svc": "xc"},
		"t3": "garbage"
	}`)
	e := NEC(dir)
	in := []byte(`{
		"2026-08-29": ["wk", "xc"],
		"2026-08-30": ["xc"],
		"note": "not a list"
	}`)

	out := e.FilterDataFile("services_by_date.json", in)
	var byDate map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &byDate))

	var day []string
	require.NoError(t, json.Unmarshal(byDate["2026-08-29"], &day))
	assert.Equal(t, []string{"wk"}, day)

	require.NoError(t, json.Unmarshal(byDate["2026-08-30"], &day))
	assert.Empty(t, day)

	assert.Equal(t, `"not a list"`, string(byDate["note"]), "non-list values pass through")
}

func TestFilterServicesByDateMissingTripMapFailsOpen(t *testing.T) {
	e := NEC(t.TempDir())
	in := []byte(`{"2026-08-30": ["wk", "xc"]}`)

	out := e.FilterDataFile("services_by_date.json", in)
	assert.Equal(t, in, out)
}

func TestFilterDataFileUnknownNamePassesThrough(t *testing.T) {
	e := NEC(t.TempDir())
	in := []byte(`{"whatever": true}`)
	assert.Equal(t, in, e.FilterDataFile("routes.json", in))
}

func TestServiceIDTruthiness(t *testing.T) {
	cases := []struct {
		svc  string
		want string
	}{
		{`"wk"`, "wk"},
		{`123`, "123"},
		{`"0"`, "0"},
		{`0`, ""},
		{`""`, ""},
		{`null`, ""},
		{`false`, ""},
	}
	for _, tc := range cases {
		var p tripMetaProbe
		require.NoError(t, json.Unmarshal([]byte(`{"svc": `+tc.svc+`}`), &p))
		assert.Equal(t, tc.want, p.serviceID(), "svc=%s", tc.svc)
	}
}
