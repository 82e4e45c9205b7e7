package textutil

import "testing"

func TestFold_RemovesDiacritics(t *testing.T) {
	cases := map[string]string{
		"Giải phương trình": "giai phuong trinh",
		"Tin tức mới nhất":  "tin tuc moi nhat",
		"plain ascii":       "plain ascii",
	}
	for in, want := range cases {
		if got := Fold(in); got != want {
			t.Errorf("Fold(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("Giải phương trình x^2 - 5x + 6 = 0!")
	want := []string{"giai", "phuong", "trinh", "x^2", "5x", "6", "0"}
	if len(got) != len(want) {
		t.Fatalf("Tokens = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
