package lex

import (
	"reflect"
	"testing"
)

func TestSearch(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		substr string
		opts   []SearchOption
		want   []int
	}{
		{"plain", "Pass { Pass }", "Pass", nil, []int{0, 7}},
		{"skips double quotes", `Tags { "Pass" } Pass`, "Pass", nil, []int{16}},
		{"skips single quotes", `'Pass' Pass`, "Pass", nil, []int{7}},
		{"escaped quote stays in string", `"a \" Pass" Pass`, "Pass", nil, []int{12}},
		{"other quote kind is literal", `"it's" Pass`, "Pass", nil, []int{7}},
		{"whole word", "GrabPass Pass UsePass Pass_ Pass", "Pass", []SearchOption{WholeWord()}, []int{9, 28}},
		{"substring without whole word", "GrabPass", "Pass", nil, []int{4}},
		{"from", "a a a", "a", []SearchOption{From(1)}, []int{2, 4}},
		{"until", "a a a", "a", []SearchOption{Until(3)}, []int{0, 2}},
		{"reverse", "a a a", "a", []SearchOption{Reverse()}, []int{4, 2, 0}},
		{"reverse from", "a a a", "a", []SearchOption{Reverse(), From(3)}, []int{2, 0}},
		{"empty text", "", "a", nil, nil},
		{"empty needle", "abc", "", nil, nil},
		{"needle longer than text", "ab", "abc", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(tt.text, tt.substr, tt.opts...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Search(%q, %q) = %v, want %v", tt.text, tt.substr, got, tt.want)
			}
		})
	}
}

func TestIndexAndCount(t *testing.T) {
	text := `{ "{" } { }`
	if got := Index(text, "{"); got != 0 {
		t.Errorf("Index = %d, want 0", got)
	}
	if got := Index(text, "{", From(1)); got != 8 {
		t.Errorf("Index from 1 = %d, want 8", got)
	}
	if got := Index(text, "x"); got != -1 {
		t.Errorf("Index of missing = %d, want -1", got)
	}
	if got := Count(text, "{"); got != 2 {
		t.Errorf("Count = %d, want 2", got)
	}
}

func TestMatchingBrace(t *testing.T) {
	tests := []struct {
		name string
		text string
		open int
		want int
	}{
		{"simple", "{}", 0, 1},
		{"nested", "{ { } }", 0, 6},
		{"inner", "{ { } }", 2, 4},
		{"quoted brace ignored", `{ "}" }`, 0, 6},
		{"unterminated", "{ { }", 0, -1},
		{"not a brace", "a{}", 0, -1},
		{"out of range", "{}", 5, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchingBrace(tt.text, tt.open); got != tt.want {
				t.Errorf("MatchingBrace(%q, %d) = %d, want %d", tt.text, tt.open, got, tt.want)
			}
		})
	}
}

func TestAtDepth(t *testing.T) {
	text := `Inner { } Outer { Inner { } } Inner`
	offsets := Search(text, "Inner", WholeWord())
	if len(offsets) != 3 {
		t.Fatalf("expected 3 occurrences, got %v", offsets)
	}
	got := AtDepth(text, offsets, 0)
	want := []int{offsets[0], offsets[2]}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AtDepth(0) = %v, want %v", got, want)
	}
	if got := AtDepth(text, offsets, 1); !reflect.DeepEqual(got, []int{offsets[1]}) {
		t.Errorf("AtDepth(1) = %v, want %v", got, []int{offsets[1]})
	}
	if got := AtDepth(text, nil, 0); got != nil {
		t.Errorf("AtDepth(nil) = %v, want nil", got)
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{`"Unlit/Color"`, []string{`"Unlit/Color"`}},
		{`"Two words"`, []string{`"Two words"`}},
		{"a b\tc\n d", []string{"a", "b", "c", "d"}},
		{`[_MainTex] "x y"`, []string{"[_MainTex]", `"x y"`}},
	}
	for _, tt := range tests {
		if got := Fields(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Fields(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWordAt(t *testing.T) {
	text := "Blend SrcAlpha OneMinusSrcAlpha"
	tests := []struct {
		offset int
		want   string
	}{
		{0, "Blend"},
		{4, "Blend"},
		{5, ""},
		{8, "SrcAlpha"},
		{len(text) - 1, "OneMinusSrcAlpha"},
		{len(text), ""},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := WordAt(text, tt.offset); got != tt.want {
			t.Errorf("WordAt(%d) = %q, want %q", tt.offset, got, tt.want)
		}
	}
}
