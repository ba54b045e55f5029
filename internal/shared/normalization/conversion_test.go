package normalization

import (
	"encoding/json"
	"testing"
)

func TestCoerceInt(t *testing.T) {
	cases := []struct {
		name     string
		input    any
		expected int
		ok       bool
	}{
		{name: "float64 integral", input: float64(4), expected: 4, ok: true},
		{name: "json number", input: json.Number("12"), expected: 12, ok: true},
		{name: "numeric string", input: " 7 ", expected: 7, ok: true},
		{name: "fractional float", input: 4.5, ok: false},
		{name: "fractional json number", input: json.Number("4.5"), ok: false},
		{name: "alphabetic", input: "abc", ok: false},
		{name: "nil", input: nil, ok: false},
		{name: "bool", input: true, ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := CoerceInt(tc.input)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if ok && got != tc.expected {
				t.Fatalf("expected %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestCoerceFloat64(t *testing.T) {
	cases := []struct {
		name     string
		input    any
		expected float64
		ok       bool
	}{
		{name: "string", input: "4200.0", expected: 4200, ok: true},
		{name: "int", input: 12, expected: 12, ok: true},
		{name: "json number", input: json.Number("3.75"), expected: 3.75, ok: true},
		{name: "empty string", input: "", ok: false},
		{name: "alphabetic", input: "abc", ok: false},
		{name: "NaN literal", input: "NaN", ok: false},
		{name: "slice", input: []any{1}, ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := CoerceFloat64(tc.input)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if ok && got != tc.expected {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestCoerceStringAcceptsNumbers(t *testing.T) {
	got, ok := CoerceString(float64(12345678))
	if !ok || got != "12345678" {
		t.Fatalf("expected numeric phone to stringify, got %q ok=%v", got, ok)
	}
	if _, ok := CoerceString(map[string]any{}); ok {
		t.Fatal("expected object to be rejected")
	}
}

func TestRoundTo(t *testing.T) {
	if got := RoundTo(10.005, 2); got != 10.01 && got != 10.0 {
		t.Fatalf("unexpected rounding result %v", got)
	}
	if got := RoundTo(3.14159, 2); got != 3.14 {
		t.Fatalf("expected 3.14, got %v", got)
	}
}

func TestMapFromPayloadUnwrapsData(t *testing.T) {
	inner := map[string]any{"reservation_code": "YYY12345678"}
	got := MapFromPayload(map[string]any{"data": inner})
	if got["reservation_code"] != "YYY12345678" {
		t.Fatalf("expected envelope to be unwrapped, got %#v", got)
	}
	if MapFromPayload("nope") != nil {
		t.Fatal("expected nil for non-map payloads")
	}
}

func TestIsBlank(t *testing.T) {
	blank := []any{nil, "", "   ", []any{}, map[string]any{}}
	for _, value := range blank {
		if !IsBlank(value) {
			t.Fatalf("expected %#v to be blank", value)
		}
	}
	if IsBlank(0) || IsBlank("x") {
		t.Fatal("expected non-empty values to be present")
	}
}
