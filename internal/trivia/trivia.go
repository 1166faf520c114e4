// Package trivia supplies the questions that drive combat.
//
// A Provider picks a question suited to the player's zone and judges
// answers. Bank is the YAML-backed implementation; the default bank is
// embedded in the binary.
package trivia

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/roach88/triviarpg/internal/random"
)

//go:embed questions.yaml
var defaultBank []byte

// Provider is the question collaborator consumed by the engine.
type Provider interface {
	QuestionForZone(zone int) Question
	CheckAnswer(q Question, answer string) bool
}

// Type is how a question is presented and answered.
type Type string

const (
	MultipleChoice Type = "multiple-choice"
	TypeAnswer     Type = "type-answer"
	ColorPicker    Type = "color-picker"
	NumberSlider   Type = "number-slider"
	FillBlanks     Type = "fill-blanks"
)

func (t Type) Valid() bool {
	switch t {
	case MultipleChoice, TypeAnswer, ColorPicker, NumberSlider, FillBlanks:
		return true
	}
	return false
}

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	return d == Easy || d == Medium || d == Hard
}

// Question is one trivia question. Answer is the correct answer for every
// type except FillBlanks, whose answers are in Blanks. A multiple-choice
// Answer is the zero-based index of the correct option.
type Question struct {
	ID         string     `yaml:"id" json:"id"`
	Text       string     `yaml:"question" json:"question"`
	Type       Type       `yaml:"type" json:"type"`
	Options    []string   `yaml:"options,omitempty" json:"options,omitempty"`
	Colors     []string   `yaml:"colors,omitempty" json:"colors,omitempty"`
	SliderMin  int        `yaml:"slider_min,omitempty" json:"sliderMin,omitempty"`
	SliderMax  int        `yaml:"slider_max,omitempty" json:"sliderMax,omitempty"`
	Answer     string     `yaml:"answer,omitempty" json:"-"`
	Blanks     []string   `yaml:"blanks,omitempty" json:"-"`
	Category   string     `yaml:"category" json:"category"`
	Difficulty Difficulty `yaml:"difficulty" json:"difficulty"`
}

// BlankCount is the number of answers a fill-blanks question expects.
func (q Question) BlankCount() int { return len(q.Blanks) }

// Bank serves questions from a fixed list. Not safe for concurrent use;
// the engine calls it under its own lock.
type Bank struct {
	src    random.Source
	all    []Question
	byDiff map[Difficulty][]Question
}

// NewBank validates questions and indexes them by difficulty.
func NewBank(questions []Question, src random.Source) (*Bank, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("question bank is empty")
	}
	seen := make(map[string]bool, len(questions))
	b := &Bank{src: src, byDiff: map[Difficulty][]Question{}}
	for i, q := range questions {
		if err := validate(q); err != nil {
			return nil, fmt.Errorf("question %d (%s): %w", i, q.ID, err)
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("question %d: duplicate id %q", i, q.ID)
		}
		seen[q.ID] = true
		b.all = append(b.all, q)
		b.byDiff[q.Difficulty] = append(b.byDiff[q.Difficulty], q)
	}
	return b, nil
}

// ParseBank decodes a YAML list of questions.
func ParseBank(data []byte, src random.Source) (*Bank, error) {
	var qs []Question
	if err := yaml.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	return NewBank(qs, src)
}

// LoadBank reads a YAML question file.
func LoadBank(path string, src random.Source) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	return ParseBank(data, src)
}

// DefaultBank returns the embedded question bank.
func DefaultBank(src random.Source) (*Bank, error) {
	return ParseBank(defaultBank, src)
}

// Len reports how many questions the bank holds.
func (b *Bank) Len() int { return len(b.all) }

// DifficultyFor picks the difficulty for zone given a uniform roll in [0,1).
// Zones up to 10 are easy; up to 25, 70% easy and 30% medium; beyond that
// 40% easy, 40% medium and 20% hard.
func DifficultyFor(zone int, roll float64) Difficulty {
	switch {
	case zone <= 10:
		return Easy
	case zone <= 25:
		if roll < 0.7 {
			return Easy
		}
		return Medium
	default:
		switch {
		case roll < 0.4:
			return Easy
		case roll < 0.8:
			return Medium
		}
		return Hard
	}
}

// QuestionForZone draws a question of the zone's difficulty. A difficulty
// with no questions falls back to the whole bank.
func (b *Bank) QuestionForZone(zone int) Question {
	var roll float64
	if zone > 10 {
		roll = b.src.Float64()
	}
	pool := b.byDiff[DifficultyFor(zone, roll)]
	if len(pool) == 0 {
		pool = b.all
	}
	return pool[b.src.IntN(len(pool))]
}

// CheckAnswer judges answer against q. Fill-blanks answers are comma
// separated, one per blank.
func (b *Bank) CheckAnswer(q Question, answer string) bool {
	return Check(q, answer)
}

// Check is the answer rule shared by every provider.
func Check(q Question, answer string) bool {
	answer = strings.TrimSpace(answer)
	switch q.Type {
	case MultipleChoice:
		want, err := strconv.Atoi(q.Answer)
		if err != nil || want < 0 || want >= len(q.Options) {
			return false
		}
		if got, err := strconv.Atoi(answer); err == nil {
			return got == want
		}
		return normalize(answer) == normalize(q.Options[want])
	case ColorPicker:
		return strings.EqualFold(answer, strings.TrimSpace(q.Answer))
	case NumberSlider:
		got, err1 := strconv.ParseFloat(answer, 64)
		want, err2 := strconv.ParseFloat(q.Answer, 64)
		return err1 == nil && err2 == nil && got == want
	case FillBlanks:
		parts := strings.Split(answer, ",")
		if len(parts) != len(q.Blanks) {
			return false
		}
		for i, p := range parts {
			if normalize(p) != normalize(q.Blanks[i]) {
				return false
			}
		}
		return true
	case TypeAnswer:
		return normalize(answer) == normalize(q.Answer)
	default:
		return false
	}
}

var folder = cases.Fold()

// normalize puts free text in a comparable form: composed, case folded
// and trimmed.
func normalize(s string) string {
	return folder.String(norm.NFC.String(strings.TrimSpace(s)))
}

func validate(q Question) error {
	if q.ID == "" {
		return fmt.Errorf("missing id")
	}
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("missing question text")
	}
	if !q.Type.Valid() {
		return fmt.Errorf("unknown type %q", q.Type)
	}
	if !q.Difficulty.Valid() {
		return fmt.Errorf("unknown difficulty %q", q.Difficulty)
	}
	switch q.Type {
	case MultipleChoice:
		i, err := strconv.Atoi(q.Answer)
		if err != nil || i < 0 || i >= len(q.Options) {
			return fmt.Errorf("answer %q is not an option index (have %d options)", q.Answer, len(q.Options))
		}
	case ColorPicker:
		for _, c := range q.Colors {
			if strings.EqualFold(c, q.Answer) {
				return nil
			}
		}
		return fmt.Errorf("answer %q is not among the colors", q.Answer)
	case NumberSlider:
		if _, err := strconv.ParseFloat(q.Answer, 64); err != nil {
			return fmt.Errorf("answer %q is not a number", q.Answer)
		}
	case FillBlanks:
		if len(q.Blanks) == 0 {
			return fmt.Errorf("fill-blanks question has no blanks")
		}
	case TypeAnswer:
		if strings.TrimSpace(q.Answer) == "" {
			return fmt.Errorf("missing answer")
		}
	}
	return nil
}

var _ Provider = (*Bank)(nil)
