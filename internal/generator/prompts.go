package generator

import "fmt"

// SystemPrompt frames the model as a question author and pins the output
// contract to a single JSON document.
func SystemPrompt() string {
	return `You are an experienced exam author writing multiple-choice practice questions for a student self-study app.

Rules:
- Each question has exactly 4 answer options and exactly one correct option.
- The "answer" field is the 0-based index of the correct option.
- Explanations teach: state the governing rule or principle, then apply it.
- Difficulty is one of "easy", "medium", "hard"; mix difficulties across the batch.
- Respond with a single JSON object and nothing else. No markdown fences, no commentary.

Output format:
{"questions":[{"stem":"...","options":["...","...","...","..."],"answer":0,"explanation":"...","difficulty":"medium","tags":["topic"],"estimated_time":60}]}`
}

// BuildUserPrompt asks for count questions on subject, pitched at studyLevel.
func BuildUserPrompt(subject, studyLevel string, count int) string {
	return fmt.Sprintf(`Write %d practice questions on the subject %q for a %s-level student.

Vary the topics within the subject and avoid near-duplicate stems. Keep "estimated_time" between 30 and 180 seconds depending on difficulty. Tag each question with 1-3 short topic tags.`,
		count, subject, studyLevel)
}
