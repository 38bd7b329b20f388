package cli

import "testing"

func TestParseOptionOverride(t *testing.T) {
	ov, err := parseOptionOverride("clock_source=external")
	if err != nil {
		t.Fatalf("parseOptionOverride: %v", err)
	}
	if ov.Name != "clock_source" || ov.Value != "external" {
		t.Fatalf("got %+v, want clock_source=external", ov)
	}
}

func TestParseOptionOverrideMalformed(t *testing.T) {
	cases := []string{"noequals", "=value", ""}
	for _, c := range cases {
		if _, err := parseOptionOverride(c); err == nil {
			t.Fatalf("parseOptionOverride(%q) should have failed", c)
		}
	}
}

func TestParseOptionOverrideValueWithEquals(t *testing.T) {
	// strings.Cut splits on the first "=" only, so values may contain one.
	ov, err := parseOptionOverride("name=a=b")
	if err != nil {
		t.Fatalf("parseOptionOverride: %v", err)
	}
	if ov.Value != "a=b" {
		t.Fatalf("Value = %q, want a=b", ov.Value)
	}
}

func TestParseOptionOverrides(t *testing.T) {
	out, err := parseOptionOverrides([]string{"a=1", "b=2"})
	if err != nil {
		t.Fatalf("parseOptionOverrides: %v", err)
	}
	if len(out) != 2 || out[0].Name != "a" || out[1].Name != "b" {
		t.Fatalf("got %+v", out)
	}
}

func TestParseOptionOverridesStopsOnFirstError(t *testing.T) {
	_, err := parseOptionOverrides([]string{"a=1", "bad"})
	if err == nil {
		t.Fatal("expected error from malformed second entry")
	}
}
