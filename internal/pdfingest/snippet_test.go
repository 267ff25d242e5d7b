package pdfingest

import (
	"strings"
	"testing"
)

func TestSnippets_CountAndCap(t *testing.T) {
	text := "alpha beta alpha gamma ALPHA delta Alpha epsilon alpha"
	count, snips := Snippets(text, "alpha", 3, 100)
	if count != 5 {
		t.Errorf("count = %d, want 5 case-insensitive occurrences", count)
	}
	if len(snips) != 3 {
		t.Errorf("got %d snippets, want capped at 3", len(snips))
	}
}

func TestSnippets_ContextRadius(t *testing.T) {
	text := strings.Repeat("x", 500) + " needle " + strings.Repeat("y", 500)
	count, snips := Snippets(text, "needle", 3, 100)
	if count != 1 || len(snips) != 1 {
		t.Fatalf("count = %d, snippets = %d, want 1 and 1", count, len(snips))
	}
	s := snips[0]
	if !strings.Contains(s, "needle") {
		t.Errorf("snippet %q does not contain the term", s)
	}
	// term plus ~100 characters each side plus two separating spaces
	if len(s) > len("needle")+2*100+2 {
		t.Errorf("snippet length %d exceeds the context window", len(s))
	}
}

func TestSnippets_CollapsesWhitespace(t *testing.T) {
	text := "before\n\n\t  needle   \n after"
	_, snips := Snippets(text, "needle", 3, 100)
	if len(snips) != 1 {
		t.Fatalf("got %d snippets, want 1", len(snips))
	}
	if want := "before needle after"; snips[0] != want {
		t.Errorf("snippet = %q, want %q", snips[0], want)
	}
}

func TestSnippets_NoMatch(t *testing.T) {
	count, snips := Snippets("nothing here", "absent", 3, 100)
	if count != 0 || snips != nil {
		t.Errorf("got count=%d snippets=%v, want none", count, snips)
	}
}

func TestSnippets_EmptyInputs(t *testing.T) {
	if count, _ := Snippets("", "term", 3, 100); count != 0 {
		t.Errorf("empty text: count = %d, want 0", count)
	}
	if count, _ := Snippets("text", "", 3, 100); count != 0 {
		t.Errorf("empty term: count = %d, want 0", count)
	}
}

func TestSnippets_OverlappingMatches(t *testing.T) {
	count, _ := Snippets("aaaa", "aa", 10, 5)
	if count != 3 {
		t.Errorf("count = %d, want 3 overlapping matches", count)
	}
}
