package generator

import (
	"strings"
	"testing"
)

const validResponse = `{
	"questions": [
		{
			"stem": "What is 2+2?",
			"options": ["3", "4", "5", "6"],
			"answer": 1,
			"explanation": "Basic addition: 2+2 = 4.",
			"difficulty": "easy",
			"tags": ["arithmetic"],
			"estimated_time": 30
		}
	]
}`

func TestParseResponseValid(t *testing.T) {
	batch, err := ParseResponse(validResponse)
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}
	if len(batch.Questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(batch.Questions))
	}

	q := batch.Questions[0]
	if q.Answer != 1 || q.Difficulty != "easy" || len(q.Options) != 4 {
		t.Errorf("parsed question = %+v", q)
	}
}

func TestParseResponseStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + validResponse + "\n```"
	if _, err := ParseResponse(fenced); err != nil {
		t.Errorf("ParseResponse with fences failed: %v", err)
	}
}

func TestParseResponseRejectsMalformedJSON(t *testing.T) {
	if _, err := ParseResponse("{not json"); err == nil {
		t.Error("ParseResponse accepted malformed JSON")
	}
}

func TestParseResponseValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			"empty batch",
			`{"questions":[]}`,
			"no questions",
		},
		{
			"wrong option count",
			`{"questions":[{"stem":"s","options":["a","b"],"answer":0,"explanation":"e","difficulty":"easy"}]}`,
			"expected 4 options",
		},
		{
			"answer out of range",
			`{"questions":[{"stem":"s","options":["a","b","c","d"],"answer":7,"explanation":"e","difficulty":"easy"}]}`,
			"out of range",
		},
		{
			"bad difficulty",
			`{"questions":[{"stem":"s","options":["a","b","c","d"],"answer":0,"explanation":"e","difficulty":"impossible"}]}`,
			"invalid difficulty",
		},
		{
			"empty stem",
			`{"questions":[{"stem":" ","options":["a","b","c","d"],"answer":0,"explanation":"e","difficulty":"easy"}]}`,
			"empty stem",
		},
	}

	for _, tt := range tests {
		_, err := ParseResponse(tt.body)
		if err == nil {
			t.Errorf("%s: ParseResponse accepted invalid batch", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: error = %q, want substring %q", tt.name, err, tt.wantErr)
		}
	}
}

func TestMockClientOutputParses(t *testing.T) {
	batch, err := ParseResponse(buildMockJSON())
	if err != nil {
		t.Fatalf("mock output does not parse: %v", err)
	}
	if len(batch.Questions) == 0 {
		t.Error("mock output has no questions")
	}
}

func TestToQuestion(t *testing.T) {
	batch, err := ParseResponse(validResponse)
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}

	q := batch.Questions[0].ToQuestion("gen_0001", "math", 0.3)
	if q.ID != "gen_0001" {
		t.Errorf("ID = %q", q.ID)
	}
	if q.PrimarySubject() != "math" {
		t.Errorf("primary subject = %q, want math", q.PrimarySubject())
	}
	if q.Mastery != 0.3 {
		t.Errorf("mastery = %f, want 0.3", q.Mastery)
	}
	if !q.NeedsReview {
		t.Error("drafted question not flagged for review")
	}
}
