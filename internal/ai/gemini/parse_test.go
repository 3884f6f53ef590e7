package gemini

import "testing"

func TestDecodeJSON(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "plain object", raw: `{"score": 0.5}`},
		{name: "json fence", raw: "```json\n{\"score\": 0.5}\n```"},
		{name: "bare fence", raw: "```\n{\"score\": 0.5}\n```"},
		{name: "prose around the object", raw: `Here is the result: {"score": 0.5}. Let me know!`},
		{name: "no object at all", raw: "I am unable to help with that.", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var payload map[string]any
			err := decodeJSON(tc.raw, &payload)

			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error for %q", tc.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if payload["score"] != 0.5 {
				t.Fatalf("unexpected payload: %v", payload)
			}
		})
	}
}

func TestDecodeJSONBraceRecoveryKeepsInnerObjects(t *testing.T) {
	raw := `prefix {"outer": {"inner": 1}} suffix`

	var payload map[string]any
	if err := decodeJSON(raw, &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outer, ok := payload["outer"].(map[string]any)
	if !ok || outer["inner"] != 1.0 {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestCoerceFloat(t *testing.T) {
	cases := []struct {
		name     string
		input    any
		expected float64
		ok       bool
	}{
		{name: "float", input: 0.7, expected: 0.7, ok: true},
		{name: "int", input: 1, expected: 1.0, ok: true},
		{name: "numeric string", input: "0.85", expected: 0.85, ok: true},
		{name: "padded string", input: " 0.5 ", expected: 0.5, ok: true},
		{name: "empty string", input: "", ok: false},
		{name: "prose", input: "about half", ok: false},
		{name: "nil", input: nil, ok: false},
		{name: "bool", input: true, ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := coerceFloat(tc.input)
			if ok != tc.ok {
				t.Fatalf("coerceFloat(%v) ok = %v, expected %v", tc.input, ok, tc.ok)
			}
			if ok && got != tc.expected {
				t.Fatalf("coerceFloat(%v) = %v, expected %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestCoerceString(t *testing.T) {
	if got := coerceString("  text  "); got != "text" {
		t.Fatalf("expected trimming, got %q", got)
	}
	if got := coerceString(nil); got != "" {
		t.Fatalf("expected empty for nil, got %q", got)
	}
	if got := coerceString(map[string]any{"a": 1}); got != `{"a":1}` {
		t.Fatalf("expected JSON rendering for structured values, got %q", got)
	}
}

func TestClamp01(t *testing.T) {
	if got := clamp01(-0.3); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := clamp01(1.3); got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
	if got := clamp01(0.42); got != 0.42 {
		t.Fatalf("expected passthrough, got %v", got)
	}
}
