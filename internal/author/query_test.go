package author

import "testing"

func TestParseName(t *testing.T) {
	tests := []struct {
		in   string
		want Name
	}{
		{"Smith, John Quincy", Name{Last: "Smith", First: "John Quincy"}},
		{"King, Martin Luther, Jr.", Name{Last: "King", First: "Martin Luther", Suffix: "Jr."}},
		{"Plato", Name{Last: "Plato"}},
		{" Doe ,  Jane ", Name{Last: "Doe", First: "Jane"}},
	}
	for _, tt := range tests {
		if got := ParseName(tt.in); got != tt.want {
			t.Errorf("ParseName(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Query
	}{
		{"single word is surname", "Smith", Query{Last: "Smith"}},
		{"First Last", "Jane Doe", Query{First: "Jane", Last: "Doe"}},
		{"middle initial stays with given name", "Jane Q Doe", Query{First: "Jane Q", Last: "Doe"}},
		{"comma format", "Doe, Jane", Query{First: "Jane", Last: "Doe"}},
		{"comma format with spaces", "Doe,   Jane Q", Query{First: "Jane Q", Last: "Doe"}},
		{"surrounding whitespace", "  Smith  ", Query{Last: "Smith"}},
		{"empty", "", Query{}},
		{"whitespace only", "   ", Query{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseQuery(tt.input); got != tt.want {
				t.Errorf("ParseQuery(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestQueryMatches(t *testing.T) {
	tests := []struct {
		name   string
		query  Query
		author string
		want   bool
	}{
		{"surname", Query{Last: "Doe"}, "Doe, Jane Q", true},
		{"surname ignores case", Query{Last: "doe"}, "Doe, Jane", true},
		{"surname is not a prefix match", Query{Last: "Do"}, "Doe, Jane", false},
		{"given name prefix", Query{First: "Ja", Last: "Doe"}, "Doe, Jane Q", true},
		{"given name ignores case", Query{First: "jane", Last: "Doe"}, "Doe, Jane", true},
		{"given name mismatch", Query{First: "John", Last: "Doe"}, "Doe, Jane", false},
		{"surname only author", Query{Last: "Plato"}, "Plato", true},
		{"given name against surname only author", Query{First: "P", Last: "Plato"}, "Plato", false},
		{"accented surname", Query{Last: "Müller"}, "Müller, Hans", true},
		{"empty query", Query{}, "Doe, Jane", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.Matches(tt.author); got != tt.want {
				t.Errorf("Query%+v.Matches(%q) = %v, want %v", tt.query, tt.author, got, tt.want)
			}
		})
	}
}

func TestAllMatch(t *testing.T) {
	authors := []string{"Doe, Jane", "Smith, John Quincy", "Roe, Rick"}

	tests := []struct {
		name    string
		queries []Query
		want    bool
	}{
		{"no queries", nil, true},
		{"one match", []Query{{Last: "Smith"}}, true},
		{"both match", []Query{{Last: "Smith"}, {First: "J", Last: "Doe"}}, true},
		{"one missing", []Query{{Last: "Smith"}, {Last: "Black"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllMatch(tt.queries, authors); got != tt.want {
				t.Errorf("AllMatch() = %v, want %v", got, tt.want)
			}
		})
	}

	if (Query{Last: "Doe"}).MatchesAny(nil) {
		t.Error("MatchesAny(nil) should be false")
	}
}
