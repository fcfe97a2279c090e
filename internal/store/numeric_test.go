package store

import (
	"encoding/json"
	"testing"
)

func TestAsInt(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want int
		ok   bool
	}{
		{"int", 42, 42, true},
		{"int64", int64(7), 7, true},
		{"integral float64", float64(50), 50, true},
		{"fractional float64", 50.5, 0, false},
		{"json.Number integer", json.Number("33"), 33, true},
		{"json.Number fractional", json.Number("33.3"), 0, false},
		{"string", "50", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := AsInt(tc.in)
			if got != tc.want || ok != tc.ok {
				t.Errorf("AsInt(%v) = (%d, %v), want (%d, %v)", tc.in, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestAsFloat(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want float64
		ok   bool
	}{
		{"float64", 2.5, 2.5, true},
		{"int", 3, 3, true},
		{"int64", int64(4), 4, true},
		{"json.Number", json.Number("1.25"), 1.25, true},
		{"string", "2.5", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := AsFloat(tc.in)
			if got != tc.want || ok != tc.ok {
				t.Errorf("AsFloat(%v) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
			}
		})
	}
}
