package profile

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseScore(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"7/10", 70},
		{"1/3", 33.3},
		{"2/3", 66.7},
		{"10/10", 100},
		{"0/10", 0},
		{"5/0", 0},
		{"82.5", 82.5},
		{" 45 ", 45},
		{"", 0},
		{"n/a", 0},
		{"abc", 0},
	}
	for _, c := range cases {
		if got := ParseScore(c.raw); got != c.want {
			t.Errorf("ParseScore(%q) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestBenchmarkBands(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{100, "High"},
		{75, "High"},
		{74.9, "Above Average"},
		{60, "Above Average"},
		{59.9, "Average"},
		{40, "Average"},
		{39.9, "Below Average"},
		{0, "Below Average"},
	}
	for _, c := range cases {
		if got := Benchmark(c.score); got != c.want {
			t.Errorf("Benchmark(%v) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestClassifyKey(t *testing.T) {
	if ClassifyKey("fifth") != KeyLearningVARK {
		t.Fatal("fifth should classify as the learning-style key")
	}
	if ClassifyKey("sixth") != KeyOther {
		t.Fatal("unknown key should classify as other")
	}
}

func TestDecodeRecord(t *testing.T) {
	rec := CategoryRecord{
		KeyName: "first",
		Label:   "Personality",
		JsonResult: `{"test_name":"Personality Assessment","description":"Big five traits.",
			"sections":[
				{"section":"Openness","section_score":"8/10","interpretation":"Curious and inventive."},
				{"section":"Grit","section_score":"4/10"}
			]}`,
	}

	cat, err := DecodeRecord(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.Key != KeyPersonality {
		t.Fatalf("key = %v", cat.Key)
	}
	if cat.TestName != "Personality Assessment" {
		t.Fatalf("test name = %q", cat.TestName)
	}
	if len(cat.Sections) != 2 {
		t.Fatalf("sections = %d", len(cat.Sections))
	}
	if cat.Sections[0].Score != 80 || cat.Sections[0].Benchmark != "High" {
		t.Fatalf("section 0 = %+v", cat.Sections[0])
	}
	if cat.Sections[1].Interpretation != "No interpretation available." {
		t.Fatalf("missing interpretation fallback, got %q", cat.Sections[1].Interpretation)
	}
}

func TestDecodeRecordFallsBackToLabel(t *testing.T) {
	rec := CategoryRecord{
		KeyName:    "second",
		Label:      "Cognitive Ability",
		JsonResult: `{"sections":[{"section":"Numerical","section_score":"6/10"}]}`,
	}
	cat, err := DecodeRecord(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.TestName != "Cognitive Ability" {
		t.Fatalf("test name should fall back to label, got %q", cat.TestName)
	}
}

func TestDecodeRecordErrors(t *testing.T) {
	cases := []struct {
		name string
		rec  CategoryRecord
	}{
		{"empty", CategoryRecord{KeyName: "first", JsonResult: "  "}},
		{"bad json", CategoryRecord{KeyName: "first", JsonResult: "{oops"}},
		{"no sections", CategoryRecord{KeyName: "first", JsonResult: `{"test_name":"X","sections":[]}`}},
	}
	for _, c := range cases {
		if _, err := DecodeRecord(c.rec); err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
}

func TestDecodeRecordIdempotent(t *testing.T) {
	rec := CategoryRecord{
		KeyName: "fourth",
		Label:   "Emotional Intelligence",
		JsonResult: `{"test_name":"EQ Assessment","sections":[
			{"section":"Empathy","section_score":"7/10","interpretation":"Reads the room."},
			{"section":"Self-regulation","section_score":"2/3"}
		]}`,
	}

	first, err := DecodeRecord(rec)
	if err != nil {
		t.Fatalf("first decode: %v", err)
	}
	second, err := DecodeRecord(rec)
	if err != nil {
		t.Fatalf("second decode: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("decoding is not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestDecodeAllCollectsDiagnostics(t *testing.T) {
	records := []CategoryRecord{
		{KeyName: "first", Label: "Personality", JsonResult: `{"sections":[{"section":"A","section_score":"5/10"}]}`},
		{KeyName: "second", Label: "Cognitive", JsonResult: "{broken"},
		{KeyName: "fifth", Label: "VARK", JsonResult: `{"sections":[{"section":"Visual","section_score":"3/10"}]}`},
	}

	cats, diags := DecodeAll(records)
	if len(cats) != 2 {
		t.Fatalf("cats = %d", len(cats))
	}
	if len(diags) != 1 {
		t.Fatalf("diags = %d", len(diags))
	}
	if diags[0].Label != "Cognitive" || !strings.Contains(diags[0].Reason, "decode JsonResult") {
		t.Fatalf("diag = %+v", diags[0])
	}
	if !cats[1].IsVARK() {
		t.Fatal("fifth category should be VARK")
	}
}

func TestProfileValidate(t *testing.T) {
	p := &Profile{
		StudentName: "Asha Verma",
		RegisterNo:  "REG-2024-117",
		Institution: "City Polytechnic",
		Categories:  []CategoryRecord{{KeyName: "first"}},
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("valid profile rejected: %v", err)
	}

	p.RegisterNo = ""
	if err := p.Validate(); err == nil {
		t.Fatal("missing RegisterNo should fail")
	}
}
