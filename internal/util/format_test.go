package util

import "testing"

func TestFormatShare(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want string
	}{
		{0.5161, "51.61%"},
		{0, "0.00%"},
		{1, "100.00%"},
	}
	for _, c := range cases {
		if got := FormatShare(c.in); got != c.want {
			t.Errorf("FormatShare(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatSignedPercent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want string
	}{
		{0.2, "+20.00%"},
		{-0.05, "-5.00%"},
		{0, "0.00%"},
	}
	for _, c := range cases {
		if got := FormatSignedPercent(c.in); got != c.want {
			t.Errorf("FormatSignedPercent(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatCurrency(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{999.5, "999.50"},
		{1234.5, "1,234.50"},
		{1234567.89, "1,234,567.89"},
		{-1234.5, "-1,234.50"},
	}
	for _, c := range cases {
		if got := FormatCurrency(c.in); got != c.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFindAvailablePort(t *testing.T) {
	t.Parallel()

	port := FindAvailablePort(38000)
	if port < 38000 || port >= 38100 {
		t.Errorf("FindAvailablePort(38000) = %d, out of probe range", port)
	}
}
