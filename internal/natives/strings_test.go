package natives

import "testing"

func TestCompareLocaleStrIgnoresCase(t *testing.T) {
	info, ok := DefaultRegistry.Lookup("CompareLocaleStr")
	if !ok {
		t.Fatalf("CompareLocaleStr not registered")
	}
	result, err := info.Fn([]any{"abc", "ABC", "en"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.(int64) != 0 {
		t.Fatalf("expected 0 for a case-insensitive match, got %v", result)
	}
}

func TestNormalizeStringNFD(t *testing.T) {
	info, ok := DefaultRegistry.Lookup("NormalizeString")
	if !ok {
		t.Fatalf("NormalizeString not registered")
	}
	result, err := info.Fn([]any{"é", "NFD"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.(string) == "é" {
		t.Fatalf("expected NFD decomposition to differ from the precomposed form")
	}
}
