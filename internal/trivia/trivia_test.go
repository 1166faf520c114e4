package trivia

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/triviarpg/internal/random"
	"github.com/roach88/triviarpg/internal/testutil"
)

func TestDefaultBank_Loads(t *testing.T) {
	b, err := DefaultBank(random.New(1))
	require.NoError(t, err)
	assert.Greater(t, b.Len(), 20)
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		assert.NotEmpty(t, b.byDiff[d], "no %s questions", d)
	}
}

func TestDifficultyFor(t *testing.T) {
	tests := []struct {
		zone int
		roll float64
		want Difficulty
	}{
		{1, 0.99, Easy},
		{10, 0.99, Easy},
		{11, 0.69, Easy},
		{11, 0.7, Medium},
		{25, 0.99, Medium},
		{26, 0.39, Easy},
		{26, 0.4, Medium},
		{26, 0.79, Medium},
		{26, 0.8, Hard},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DifficultyFor(tt.zone, tt.roll), "zone %d roll %v", tt.zone, tt.roll)
	}
}

func TestQuestionForZone_LowZonesSkipDifficultyRoll(t *testing.T) {
	src := testutil.NewScriptedSource(0.95).WithInts(0)
	b, err := DefaultBank(src)
	require.NoError(t, err)

	q := b.QuestionForZone(3)
	assert.Equal(t, Easy, q.Difficulty)
	assert.Equal(t, 1, src.Remaining(), "zone 3 must not consume a float")
}

func TestQuestionForZone_HighZone(t *testing.T) {
	src := testutil.NewScriptedSource(0.85)
	b, err := DefaultBank(src)
	require.NoError(t, err)

	q := b.QuestionForZone(40)
	assert.Equal(t, Hard, q.Difficulty)
}

func TestQuestionForZone_EmptyPoolFallsBack(t *testing.T) {
	qs := []Question{{ID: "only", Text: "?", Type: TypeAnswer, Answer: "x", Difficulty: Easy}}
	b, err := NewBank(qs, testutil.NewScriptedSource(0.99))
	require.NoError(t, err)

	assert.Equal(t, "only", b.QuestionForZone(30).ID)
}

func TestCheck(t *testing.T) {
	mc := Question{Type: MultipleChoice, Options: []string{"Berlin", "Paris"}, Answer: "1"}
	color := Question{Type: ColorPicker, Colors: []string{"#FFFF00"}, Answer: "#FFFF00"}
	num := Question{Type: NumberSlider, Answer: "60"}
	blanks := Question{Type: FillBlanks, Blanks: []string{"Tokyo", "Ottawa"}}
	typed := Question{Type: TypeAnswer, Answer: "Reykjavík"}

	tests := []struct {
		name   string
		q      Question
		answer string
		want   bool
	}{
		{"mc index", mc, "1", true},
		{"mc wrong index", mc, "0", false},
		{"mc option text", mc, " paris ", true},
		{"color case-insensitive", color, "#ffff00", true},
		{"color wrong", color, "#FF0000", false},
		{"number", num, "60", true},
		{"number as float", num, "60.0", true},
		{"number wrong", num, "61", false},
		{"number garbage", num, "sixty", false},
		{"blanks", blanks, "tokyo, OTTAWA", true},
		{"blanks wrong count", blanks, "tokyo", false},
		{"blanks wrong order", blanks, "ottawa,tokyo", false},
		{"typed composed", typed, "reykjavík", true},
		{"typed decomposed", typed, "Reykjavi\u0301k", true},
		{"typed wrong", typed, "reykjavik", false},
		{"unknown type", Question{Type: "riddle", Answer: "x"}, "x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Check(tt.q, tt.answer))
		})
	}
}

func TestNewBank_Validation(t *testing.T) {
	tests := []struct {
		name string
		qs   []Question
	}{
		{"empty", nil},
		{"missing id", []Question{{Text: "?", Type: TypeAnswer, Answer: "a", Difficulty: Easy}}},
		{"bad type", []Question{{ID: "a", Text: "?", Type: "riddle", Answer: "a", Difficulty: Easy}}},
		{"bad difficulty", []Question{{ID: "a", Text: "?", Type: TypeAnswer, Answer: "a", Difficulty: "brutal"}}},
		{"mc index out of range", []Question{{ID: "a", Text: "?", Type: MultipleChoice, Options: []string{"x"}, Answer: "3", Difficulty: Easy}}},
		{"color not offered", []Question{{ID: "a", Text: "?", Type: ColorPicker, Colors: []string{"#000000"}, Answer: "#FFFFFF", Difficulty: Easy}}},
		{"slider not numeric", []Question{{ID: "a", Text: "?", Type: NumberSlider, Answer: "lots", Difficulty: Easy}}},
		{"no blanks", []Question{{ID: "a", Text: "?", Type: FillBlanks, Difficulty: Easy}}},
		{"duplicate id", []Question{
			{ID: "a", Text: "?", Type: TypeAnswer, Answer: "a", Difficulty: Easy},
			{ID: "a", Text: "?", Type: TypeAnswer, Answer: "b", Difficulty: Easy},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBank(tt.qs, random.New(1))
			assert.Error(t, err)
		})
	}
}

func TestLoadBank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	data := []byte(`
- id: q1
  question: What is 1 + 1?
  type: number-slider
  answer: "2"
  category: Math
  difficulty: easy
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	b, err := LoadBank(path, random.New(1))
	require.NoError(t, err)
	q := b.QuestionForZone(1)
	assert.Equal(t, "q1", q.ID)
	assert.True(t, b.CheckAnswer(q, "2"))

	_, err = LoadBank(filepath.Join(t.TempDir(), "missing.yaml"), random.New(1))
	assert.Error(t, err)

	_, err = ParseBank([]byte("{not: [a list"), random.New(1))
	assert.Error(t, err)
}
