package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Name", "Population", "Capital"}
	rows := [][]string{
		{"Japan", "125,836,021", "Tokyo"},
		{"Iceland", "366,425", "Reykjavik"},
	}
	rightAlign := map[int]bool{1: true}

	lines := FormatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Name      Population  Capital" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Japan    125,836,021  Tokyo" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Iceland      366,425  Reykjavik" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableUsesDisplayWidth(t *testing.T) {
	lines := FormatTable([]string{"Name", "Region"}, [][]string{{"日本", "Asia"}}, nil)
	if lines[1] != "日本  Asia" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := FormatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil, got %v", lines)
	}
}
