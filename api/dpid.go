package api

import (
	"strconv"
	"strings"
)

const dpidSeparator = ":"

func SplitDPID(dpid string) []string {
	return strings.Split(dpid, dpidSeparator)
}

// CompareDPID orders datapath ids by the numeric value of each hex component,
// left to right. Components that don't parse as hex are compared as strings
// and a dpid that is a prefix of another sorts first.
func CompareDPID(a, b string) int {
	if a == b {
		return 0
	}
	aa, bb := SplitDPID(a), SplitDPID(b)
	for i := 0; i < len(aa) && i < len(bb); i++ {
		if aa[i] == bb[i] {
			continue
		}
		if c := compareComponent(aa[i], bb[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(aa) < len(bb):
		return -1
	case len(aa) > len(bb):
		return 1
	}
	return 0
}

func compareComponent(a, b string) int {
	x, errA := strconv.ParseUint(a, 16, 64)
	y, errB := strconv.ParseUint(b, 16, 64)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// ReplaceLastComponent returns dpid with its final component set to s.
func ReplaceLastComponent(dpid, s string) string {
	parts := SplitDPID(dpid)
	parts[len(parts)-1] = s
	return strings.Join(parts, dpidSeparator)
}
