package ships

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestStaticResolverDisplayName(t *testing.T) {
	r := NewStaticResolver()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"entity id strips manufacturer", "ANVL_Arrow_123456789", "Arrow"},
		{"cutlass variant", "DRAK_Cutlass_Black_123", "Cutlass"},
		{"case insensitive", "AEGS_GLADIUS_555", "Gladius"},
		{"longest key wins", "MISC_Reliant_Tana_99", "Reliant"},
		{"variant key", "XNAA_Tana_99", "Reliant Tana"},
		{"single word name stays", "ARGO_MOLE_42", "MOLE"},
		{"generic fallback", "mystery_wreck", "Mystery Wreck"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.DisplayName(tt.input); got != tt.expected {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDisplayNameTruncatesLongFallback(t *testing.T) {
	r := NewStaticResolver()
	got := r.DisplayName("very_long_mystery_wreck_identifier_x")
	if len(got) != maxDisplayLen {
		t.Errorf("fallback should be truncated to %d chars, got %d (%q)", maxDisplayLen, len(got), got)
	}
	if got[len(got)-3:] != "..." {
		t.Errorf("truncated fallback should end with ellipsis, got %q", got)
	}
}

func TestFileResolverOverlaysBuiltins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ships.csv")
	csv := "key,display_name\narrow,Anvil Arrow Mk2\nzeus,RSI Zeus\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := NewFileResolver(path)
	if err != nil {
		t.Fatalf("NewFileResolver failed: %v", err)
	}

	if got := r.DisplayName("RSI_Zeus_1001"); got != "Zeus" {
		t.Errorf("new key should resolve, got %q", got)
	}
	if got := r.DisplayName("ANVL_Arrow_1001"); got != "Arrow Mk2" {
		t.Errorf("overridden key should use the file mapping, got %q", got)
	}
	// Builtins not mentioned in the file still resolve.
	if got := r.DisplayName("DRAK_Cutlass_1001"); got != "Cutlass" {
		t.Errorf("builtin key should survive the overlay, got %q", got)
	}
	if r.Count() <= len(shipNames) {
		t.Errorf("overlay table should be larger than the builtin table")
	}
}

func TestFileResolverMissingFile(t *testing.T) {
	if _, err := NewFileResolver(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestKeysSortedAndResolvable(t *testing.T) {
	keys := Keys()
	if len(keys) == 0 {
		t.Fatal("builtin table is empty")
	}
	if !sort.StringsAreSorted(keys) {
		t.Error("Keys() must return sorted keys")
	}
	r := NewStaticResolver()
	for _, k := range keys {
		if got := r.DisplayName(k); got == "" {
			t.Errorf("builtin key %q does not resolve", k)
		}
	}
}
