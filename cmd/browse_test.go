package cmd

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"modside-analyzer/mod"
)

func testRows() []ResultRow {
	return []ResultRow{
		{FileName: "alpha.jar", DisplayName: "Alpha", Category: mod.ServerCapable},
		{FileName: "beta.jar", DisplayName: "Beta", Category: mod.ClientOnly},
		{FileName: "gamma.jar", DisplayName: "Gamma", Category: mod.ServerCapable},
		{FileName: "delta.jar", DisplayName: "delta.jar", Category: mod.Unparseable, Reason: "no recognized manifest entry"},
	}
}

// TestBrowseModelGrouping tests that rows land in their category group
func TestBrowseModelGrouping(t *testing.T) {
	m := BrowseModel{rows: testRows()}

	if got := len(m.groupRows(mod.ServerCapable)); got != 2 {
		t.Errorf("server capable group = %d, want 2", got)
	}
	if got := len(m.groupRows(mod.ClientOnly)); got != 1 {
		t.Errorf("client only group = %d, want 1", got)
	}
	if got := len(m.groupRows(mod.Unparseable)); got != 1 {
		t.Errorf("unparseable group = %d, want 1", got)
	}
}

// TestBrowseModelSelection tests that the flat selection index walks the
// groups in report order
func TestBrowseModelSelection(t *testing.T) {
	m := BrowseModel{rows: testRows()}

	// Index 0 and 1 are the server capable rows, then client only, then
	// unparseable.
	wantOrder := []string{"Alpha", "Gamma", "Beta", "delta.jar"}
	for i, want := range wantOrder {
		m.selectedIndex = i
		sel := m.selectedRow()
		if sel == nil {
			t.Fatalf("selectedRow(%d) = nil", i)
		}
		if sel.DisplayName != want {
			t.Errorf("selectedRow(%d) = %s, want %s", i, sel.DisplayName, want)
		}
	}

	m.selectedIndex = len(m.rows)
	if sel := m.selectedRow(); sel != nil {
		t.Errorf("selectedRow(out of range) = %v, want nil", sel)
	}
}

// TestBrowseModelNavigation tests the key handling bounds
func TestBrowseModelNavigation(t *testing.T) {
	m := BrowseModel{rows: testRows()}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = next.(BrowseModel)
	if m.selectedIndex != 1 {
		t.Errorf("selectedIndex after j = %d, want 1", m.selectedIndex)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	m = next.(BrowseModel)
	if m.selectedIndex != 0 {
		t.Errorf("selectedIndex after k = %d, want 0", m.selectedIndex)
	}

	// Never moves above the first row.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	m = next.(BrowseModel)
	if m.selectedIndex != 0 {
		t.Errorf("selectedIndex clamped = %d, want 0", m.selectedIndex)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	m = next.(BrowseModel)
	if m.selectedIndex != len(m.rows)-1 {
		t.Errorf("selectedIndex after G = %d, want %d", m.selectedIndex, len(m.rows)-1)
	}
}

// TestTruncateFunction tests the truncate helper function
func TestTruncateFunction(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"Hello World", 5, "He..."},
		{"Hi", 5, "Hi"},
		{"Test", 4, "Test"},
		{"LongString", 7, "Long..."},
		{"", 5, ""},
	}

	for _, test := range tests {
		result := truncate(test.input, test.maxLen)
		if result != test.expected {
			t.Fatalf("truncate(%q, %d) = %q, expected %q", test.input, test.maxLen, result, test.expected)
		}
	}
}
