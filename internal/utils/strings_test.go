package utils

import "testing"

func TestNormalizeSpace(t *testing.T) {
	cases := map[string]string{
		"  Rajdhani   Express ": "Rajdhani Express",
		"Norwegian\tWood":       "Norwegian Wood",
		"":                      "",
		"   ":                   "",
	}
	for in, want := range cases {
		if got := NormalizeSpace(in); got != want {
			t.Fatalf("NormalizeSpace(%q) = %q, want %q", in, got, want)
		}
	}
}
