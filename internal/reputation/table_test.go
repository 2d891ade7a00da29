package reputation

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScore(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"ieee venue", "IEEE Transactions on Pattern Analysis", 100},
		{"case insensitive", "Published by AcM Press", 100},
		{"arxiv preprint", "arXiv preprint arXiv:1706.03762", 50},
		{"max of multiple matches", "arXiv version of an ICML paper", 95},
		{"no keyword", "Journal of Obscure Studies", 0},
		{"empty text", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Score(tt.text); got != tt.want {
				t.Errorf("Score(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestScore_Deterministic(t *testing.T) {
	table := DefaultTable()
	text := "Proceedings of NeurIPS, also on arxiv and as PDF"
	first := table.Score(text)
	for i := 0; i < 10; i++ {
		if got := table.Score(text); got != first {
			t.Fatalf("Score() not deterministic: %d then %d", first, got)
		}
	}
	if first != 95 {
		t.Errorf("Score() = %d, want 95 (neurips outranks arxiv and pdf)", first)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "venues.yml")
	content := "IEEE: 100\nmyconf: 80\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := table.Score("ieee symposium"); got != 100 {
		t.Errorf("Score after Load = %d, want 100 (keys lowercased)", got)
	}
	if got := table.Score("MyConf 2024"); got != 80 {
		t.Errorf("Score = %d, want 80", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yml")
	if err := os.WriteFile(empty, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(empty); err == nil {
		t.Error("Load() should reject an empty table")
	}

	negative := filepath.Join(dir, "neg.yml")
	if err := os.WriteFile(negative, []byte("bad: -5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(negative); err == nil {
		t.Error("Load() should reject negative scores")
	}

	if _, err := Load(filepath.Join(dir, "missing.yml")); err == nil {
		t.Error("Load() should fail for a missing file")
	}
}
