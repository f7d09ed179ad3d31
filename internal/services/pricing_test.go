package services

import "testing"

func TestTotalPayable(t *testing.T) {
	cases := []struct {
		price float64
		qty   int
		want  string
	}{
		{10, 2, "20.00"},
		{4.995, 3, "14.99"},
		{0.1, 3, "0.30"},
		{12.5, 1, "12.50"},
		{19.99, 0, "0.00"},
		{1.005, 1, "1.01"},
	}
	for _, c := range cases {
		if got := TotalPayable(c.price, c.qty); got != c.want {
			t.Errorf("TotalPayable(%v, %d) = %s, want %s", c.price, c.qty, got, c.want)
		}
	}
}
