package validate_test

import (
	"testing"

	"modahaus/internal/validate"
)

func TestQty(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 0},
		{"-3", 0},
		{"0", 0},
		{"25", 25},
		{" 12 ", 12},
		{"999999", 5000},
	}
	for _, tc := range cases {
		if got := validate.Qty(tc.in); got != tc.want {
			t.Fatalf("Qty(%q)=%d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestEmail(t *testing.T) {
	if _, ok := validate.Email("amaka@modahaus.test"); !ok {
		t.Fatal("valid email rejected")
	}
	for _, bad := range []string{"", "not-an-email", "a@b", "a b@c.com"} {
		if _, ok := validate.Email(bad); ok {
			t.Fatalf("accepted %q", bad)
		}
	}
}

func TestPhone(t *testing.T) {
	for _, good := range []string{"08012345678", "+2348012345678"} {
		if _, ok := validate.Phone(good); !ok {
			t.Fatalf("rejected %q", good)
		}
	}
	for _, bad := range []string{"", "080", "phone-number", "0801234567890123456"} {
		if _, ok := validate.Phone(bad); ok {
			t.Fatalf("accepted %q", bad)
		}
	}
}

func TestID(t *testing.T) {
	if _, ok := validate.ID("shein-floral-maxi-gown"); !ok {
		t.Fatal("valid id rejected")
	}
	for _, bad := range []string{"", "../etc/passwd", "id with spaces"} {
		if _, ok := validate.ID(bad); ok {
			t.Fatalf("accepted %q", bad)
		}
	}
}
