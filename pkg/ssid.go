package wifihelper

import (
	"sort"
	"strings"
)

// Hosts commonly store configured SSIDs wrapped in literal
// double quotes, ie: "\"home\"". UnquoteSSID strips exactly
// one surrounding pair and leaves anything else alone.
func UnquoteSSID(ssid string) string {
	if len(ssid) >= 2 && strings.HasPrefix(ssid, `"`) && strings.HasSuffix(ssid, `"`) {
		return ssid[1 : len(ssid)-1]
	}
	return ssid
}

// SSIDEqual reports whether two SSIDs name the same network,
// regardless of which side (if either) carries the quoting.
func SSIDEqual(a, b string) bool {
	return UnquoteSSID(a) == UnquoteSSID(b)
}

// SortBySignal returns a copy of records ordered strongest first.
// Equal levels keep their relative order so repeated scans don't
// shuffle networks of the same strength.
func SortBySignal(records []SignalRecord) []SignalRecord {
	sorted := make([]SignalRecord, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Level > sorted[j].Level
	})

	return sorted
}
