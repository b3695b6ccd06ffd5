package lex

import "testing"

func TestLineIndexPositionAt(t *testing.T) {
	text := "ab\r\ncd\né\U0001F600x\rz"
	x := NewLineIndex(text)

	if got := x.LineCount(); got != 4 {
		t.Fatalf("LineCount() = %d, want 4", got)
	}

	tests := []struct {
		offset int
		want   Position
	}{
		{0, Position{0, 0}},
		{2, Position{0, 2}},
		{4, Position{1, 0}},
		{7, Position{2, 0}},
		{9, Position{2, 1}},  // after the two-byte é
		{13, Position{2, 3}}, // after the emoji, a surrogate pair
		{15, Position{3, 0}},
		{100, Position{3, 1}},
		{-1, Position{0, 0}},
	}
	for _, tt := range tests {
		if got := x.PositionAt(tt.offset); got != tt.want {
			t.Errorf("PositionAt(%d) = %+v, want %+v", tt.offset, got, tt.want)
		}
	}
}

func TestLineIndexOffsetAt(t *testing.T) {
	text := "ab\r\ncd\né\U0001F600x\rz"
	x := NewLineIndex(text)

	tests := []struct {
		pos  Position
		want int
	}{
		{Position{0, 0}, 0},
		{Position{0, 9}, 2},
		{Position{1, 1}, 5},
		{Position{2, 1}, 9},
		{Position{2, 3}, 13},
		{Position{3, 0}, 15},
		{Position{9, 0}, len(text)},
	}
	for _, tt := range tests {
		if got := x.OffsetAt(tt.pos); got != tt.want {
			t.Errorf("OffsetAt(%+v) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestLineIndexLine(t *testing.T) {
	x := NewLineIndex("first\r\nsecond\nthird")
	for i, want := range []string{"first", "second", "third", ""} {
		if got := x.Line(i); got != want {
			t.Errorf("Line(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestLineIndexLineStart(t *testing.T) {
	x := NewLineIndex("ab\ncd\r\nef")
	for n, want := range []int{0, 3, 7, 9} {
		if got := x.LineStart(n); got != want {
			t.Errorf("LineStart(%d) = %d, want %d", n, got, want)
		}
	}
}
