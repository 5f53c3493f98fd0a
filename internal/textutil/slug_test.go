package textutil

import (
	"strings"
	"testing"
)

var slugCorpus = []string{
	"",
	"   ",
	"Opening Remarks",
	"Cloud 101 Q+A",
	"cloud 101 q&a",
	"Q+A with Q+A",
	"What's next? (Part 1/2)",
	"Don´t stop: AI, ML & you!",
	"  -- Leading and trailing --  ",
	"Startup Showcase 1 - 9:05am - 10:00am",
	"Crème brûlée für Straße",
	"Ærø Œuvre Łódź",
	"Multi\tline\nbreak",
	"100% <awesome> | fun $",
	"email@example.com ~ *stars*",
	"en–dash — em dash",
	"ＦＵＬＬＷＩＤＴＨ　＋　ｔｅｘｔ",
	"ẞ capital sharp s",
}

func TestNormalizeExamples(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "  \t ", ""},
		{"simple title", "Opening Remarks", "opening-remarks"},
		{"q plus a", "Cloud 101 Q+A", "cloud-101-qanda"},
		{"ampersand", "cloud 101 q&a", "cloud-101-qanda"},
		{"punctuation removed", "What's next? (Part 1/2)", "whats-next-part-12"},
		{"acute accent removed", "Don´t stop: AI, ML & you!", "dont-stop-ai-ml-and-you"},
		{"hyphen runs collapse", "  -- Leading and trailing --  ", "leading-and-trailing"},
		{"clock strings", "Startup Showcase 1 - 9:05am - 10:00am", "startup-showcase-1-905am-1000am"},
		{"accents fold", "Crème brûlée", "creme-brulee"},
		{"ligatures", "Straße Ærø", "strasse-aero"},
		{"en dash separator", "before–after", "before-after"},
		{"fullwidth plus", "Ａ＋Ｂ", "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, input := range slugCorpus {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestNormalizeOutputShape(t *testing.T) {
	for _, input := range slugCorpus {
		slug := Normalize(input)
		if strings.ContainsAny(slug, removedChars) {
			t.Errorf("Normalize(%q) = %q still contains removed punctuation", input, slug)
		}
		if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
			t.Errorf("Normalize(%q) = %q has edge hyphen", input, slug)
		}
		if strings.Contains(slug, "--") {
			t.Errorf("Normalize(%q) = %q has repeated hyphen", input, slug)
		}
		if strings.ContainsAny(slug, " \t\n") {
			t.Errorf("Normalize(%q) = %q has whitespace", input, slug)
		}
	}
}

func TestNormalizeEqualTitlesShareSlug(t *testing.T) {
	if Normalize("Cloud 101 Q+A") != Normalize("cloud 101 q&a") {
		t.Fatalf("expected Q+A and q&a titles to share a slug")
	}
	if Normalize("The Future: Now!") != Normalize("the future now") {
		t.Fatalf("expected punctuation-only differences to share a slug")
	}
}

func TestContainsAny(t *testing.T) {
	if !ContainsAny("startup-showcase-stage-1", "opening-remarks", "startup-showcase") {
		t.Fatal("expected marker match")
	}
	if ContainsAny("keynote", "opening-remarks", "") {
		t.Fatal("expected no marker match")
	}
	if ContainsAny("anything") {
		t.Fatal("expected no match without markers")
	}
}
