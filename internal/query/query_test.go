package query

import "testing"

func TestBuild_Empty(t *testing.T) {
	if got := Build(nil, LogicAND); got != "" {
		t.Errorf("Build(nil) = %q, want empty", got)
	}
	if got := Build([]string{}, LogicOR); got != "" {
		t.Errorf("Build([]) = %q, want empty", got)
	}
}

func TestBuild_Join(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		logic    Logic
		want     string
	}{
		{"single plain and", []string{"golang"}, LogicAND, "golang"},
		{"single plain or", []string{"golang"}, LogicOR, "golang"},
		{"and joins with space", []string{"go", "release"}, LogicAND, "go release"},
		{"or joins with OR", []string{"go", "release"}, LogicOR, "go OR release"},
		{"phrase quoted and", []string{"foo bar"}, LogicAND, `"foo bar"`},
		{"hashtag quoted or", []string{"#tag", "plain"}, LogicOR, `"#tag" OR plain`},
		{"order preserved", []string{"c", "a", "b"}, LogicOR, "c OR a OR b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Build(tt.keywords, tt.logic); got != tt.want {
				t.Errorf("Build(%v, %s) = %q, want %q", tt.keywords, tt.logic, got, tt.want)
			}
		})
	}
}

func TestBuild_QuotingRule(t *testing.T) {
	quoted := []string{
		"foo bar", "tab\tsep", "#tag", "@handle", "$cash", "a:b",
		"(x", "y)", "[x", "y]", "{x", "y}", `say "hi"`, "it's",
	}
	for _, k := range quoted {
		if got, want := Build([]string{k}, LogicAND), `"`+k+`"`; got != want {
			t.Errorf("Build([%q]) = %q, want %q", k, got, want)
		}
	}

	plain := []string{"golang", "go1.25", "k8s", "release-notes"}
	for _, k := range plain {
		if got := Build([]string{k}, LogicAND); got != k {
			t.Errorf("Build([%q]) = %q, want unmodified", k, got)
		}
	}
}

func TestParseLogic(t *testing.T) {
	tests := []struct {
		in   string
		want Logic
		ok   bool
	}{
		{"AND", LogicAND, true},
		{"and", LogicAND, true},
		{"OR", LogicOR, true},
		{" or ", LogicOR, true},
		{"", LogicOR, true},
		{"XOR", LogicOR, false},
		{"MAYBE", LogicOR, false},
	}
	for _, tt := range tests {
		got, ok := ParseLogic(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLogic(%q) = (%s, %v), want (%s, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBuild_UnknownLogicMatchesOR(t *testing.T) {
	keywords := []string{"#tag", "plain", "two words"}
	logic, ok := ParseLogic("SOMETIMES")
	if ok {
		t.Fatal("expected unknown logic to report ok=false")
	}
	if got, want := Build(keywords, logic), Build(keywords, LogicOR); got != want {
		t.Errorf("unknown logic output = %q, want OR output %q", got, want)
	}
}
