package wifihelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnquoteSSID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"home"`, "home"},
		{"home", "home"},
		{`""`, ""},
		{`"`, `"`},
		{`""quoted""`, `"quoted"`},
		{`"half`, `"half`},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, UnquoteSSID(tt.in), "UnquoteSSID(%q)", tt.in)
	}
}

func TestSSIDEqual(t *testing.T) {
	assert.True(t, SSIDEqual("home", `"home"`))
	assert.True(t, SSIDEqual(`"home"`, "home"))
	assert.True(t, SSIDEqual("home", "home"))
	assert.False(t, SSIDEqual("home", "Home"))
	assert.False(t, SSIDEqual("home", `""home""`))
}

func TestSortBySignalStable(t *testing.T) {
	in := []SignalRecord{
		{SSID: "x", Level: -60},
		{SSID: "y", Level: -60},
		{SSID: "z", Level: -60},
		{SSID: "top", Level: -20},
	}

	out := SortBySignal(in)
	var got []string
	for _, r := range out {
		got = append(got, r.SSID)
	}
	assert.Equal(t, []string{"top", "x", "y", "z"}, got)
	assert.Equal(t, "x", in[0].SSID)

	assert.Empty(t, SortBySignal(nil))
}

func TestSortBySignalUnknownLast(t *testing.T) {
	out := SortBySignal([]SignalRecord{
		{SSID: "silent", Level: LevelUnknown},
		{SSID: "weak", Level: -95},
		{SSID: "strong", Level: -30},
	})

	var got []string
	for _, r := range out {
		got = append(got, r.SSID)
	}
	assert.Equal(t, []string{"strong", "weak", "silent"}, got)
}
