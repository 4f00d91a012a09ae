package api

import (
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestCompareDPID(t *testing.T) {
	testCases := []struct {
		name string
		a, b string
		exp  int
	}{
		{name: "equal", a: "00:00:00:00:00:00:02:01", b: "00:00:00:00:00:00:02:01", exp: 0},
		{name: "numeric across 09/0a", a: "00:00:00:00:00:00:0a:01", b: "00:00:00:00:00:00:09:ff", exp: 1},
		{name: "last component", a: "00:00:00:00:00:00:01:02", b: "00:00:00:00:00:00:01:10", exp: -1},
		{name: "earlier component wins", a: "00:00:00:00:00:01:00:00", b: "00:00:00:00:00:00:ff:ff", exp: 1},
		{name: "mixed case hex", a: "00:0A", b: "00:0a", exp: 0},
		{name: "prefix first", a: "00:01", b: "00:01:00", exp: -1},
		{name: "non hex falls back to string", a: "00:zz", b: "00:zy", exp: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.exp, CompareDPID(tc.a, tc.b))
			assert.Equal(t, -tc.exp, CompareDPID(tc.b, tc.a))
		})
	}
}

func TestCompareDPIDDisagreesWithStrings(t *testing.T) {
	ids := []string{
		"00:00:00:00:00:00:0a:01",
		"00:00:00:00:00:00:09:ff",
		"00:00:00:00:00:00:10:01",
		"00:00:00:00:00:00:0f:01",
	}
	sort.Slice(ids, func(i, j int) bool {
		return CompareDPID(ids[i], ids[j]) < 0
	})
	assert.Equal(t, []string{
		"00:00:00:00:00:00:09:ff",
		"00:00:00:00:00:00:0a:01",
		"00:00:00:00:00:00:0f:01",
		"00:00:00:00:00:00:10:01",
	}, ids)
}

func TestReplaceLastComponent(t *testing.T) {
	assert.Equal(t, "00:00:00:00:00:00:03:01", ReplaceLastComponent("00:00:00:00:00:00:03:0c", "01"))
	assert.Equal(t, "01", ReplaceLastComponent("ff", "01"))
}

func TestCompareDPIDIsNumeric(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("components order by value", prop.ForAll(
		func(a, b []uint8) bool {
			da, db := formatDPID(a), formatDPID(b)
			return CompareDPID(da, db) == compareBytes(a, b)
		},
		gen.SliceOfN(8, gen.UInt8()),
		gen.SliceOfN(8, gen.UInt8()),
	))

	properties.TestingRun(t)
}

func formatDPID(b []uint8) string {
	const hex = "0123456789abcdef"
	var s []byte
	for i, v := range b {
		if i > 0 {
			s = append(s, ':')
		}
		s = append(s, hex[v>>4], hex[v&0xf])
	}
	return string(s)
}

func compareBytes(a, b []uint8) int {
	for i := range a {
		if a[i] < b[i] {
			return -1
		} else if a[i] > b[i] {
			return 1
		}
	}
	return 0
}
