// Package questionbank serves the multiple-choice questionnaires.
package questionbank

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/mindscope/internal/assessment"
)

//go:embed bank.yaml
var builtinBank []byte

// DefaultCount is the number of questions in an assessment when the caller
// does not ask for a specific count.
const DefaultCount = 5

// ErrUnknownOption is returned by Question.Answer for an option id the
// question does not have.
var ErrUnknownOption = errors.New("unknown option")

// Option is one selectable answer. Value is its score.
type Option struct {
	ID    string `yaml:"id" json:"id"`
	Text  string `yaml:"text" json:"text"`
	Value int    `yaml:"value" json:"value"`
}

// Question is a single multiple-choice item.
type Question struct {
	ID      int      `yaml:"id" json:"id"`
	Text    string   `yaml:"text" json:"text"`
	Options []Option `yaml:"options" json:"options"`
}

// Option returns the option with the given id.
func (q Question) Option(id string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// Answer builds the Response for choosing optionID.
func (q Question) Answer(optionID string) (assessment.Response, error) {
	o, ok := q.Option(optionID)
	if !ok {
		return assessment.Response{}, fmt.Errorf("question %d: %w %q", q.ID, ErrUnknownOption, optionID)
	}
	return assessment.Response{
		QuestionID:         q.ID,
		QuestionText:       q.Text,
		SelectedOptionID:   o.ID,
		SelectedOptionText: o.Text,
		Score:              o.Value,
	}, nil
}

// Topic is a named questionnaire.
type Topic struct {
	Title       string     `yaml:"title" json:"title"`
	Label       string     `yaml:"label" json:"label"`
	Description string     `yaml:"description" json:"description"`
	Questions   []Question `yaml:"questions" json:"-"`
}

// Assessment is a drawn questionnaire ready to be administered.
type Assessment struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// File is the serialized form of a Bank.
type File struct {
	Topics   []Topic    `yaml:"topics"`
	Fallback []Question `yaml:"fallback"`
}

// Bank holds the questionnaires. Safe for concurrent use.
type Bank struct {
	topics   []Topic
	index    map[string]int
	fallback []Question

	mu  sync.Mutex
	rng *rand.Rand
}

// BankOption configures a Bank.
type BankOption func(*Bank)

// WithRand makes the Bank shuffle with r.
func WithRand(r *rand.Rand) BankOption {
	return func(b *Bank) { b.rng = r }
}

// New validates f and builds a Bank.
func New(f File, opts ...BankOption) (*Bank, error) {
	if len(f.Fallback) == 0 {
		return nil, fmt.Errorf("fallback question set is empty")
	}
	if err := validateQuestions("fallback", f.Fallback); err != nil {
		return nil, err
	}

	b := &Bank{
		topics:   f.Topics,
		index:    make(map[string]int, len(f.Topics)),
		fallback: f.Fallback,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for i, t := range f.Topics {
		if t.Title == "" {
			return nil, fmt.Errorf("topic %d has no title", i)
		}
		if _, dup := b.index[t.Title]; dup {
			return nil, fmt.Errorf("duplicate topic %q", t.Title)
		}
		if len(t.Questions) == 0 {
			return nil, fmt.Errorf("topic %q has no questions", t.Title)
		}
		if err := validateQuestions(t.Title, t.Questions); err != nil {
			return nil, err
		}
		b.index[t.Title] = i
	}

	for _, o := range opts {
		o(b)
	}
	return b, nil
}

func validateQuestions(set string, qs []Question) error {
	ids := make(map[int]bool, len(qs))
	for _, q := range qs {
		if ids[q.ID] {
			return fmt.Errorf("%s: duplicate question id %d", set, q.ID)
		}
		ids[q.ID] = true
		if q.Text == "" {
			return fmt.Errorf("%s: question %d has no text", set, q.ID)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("%s: question %d needs at least two options", set, q.ID)
		}
		opts := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			if o.ID == "" || opts[o.ID] {
				return fmt.Errorf("%s: question %d has a missing or duplicate option id %q", set, q.ID, o.ID)
			}
			opts[o.ID] = true
			if o.Value < assessment.MinOptionScore || o.Value > assessment.MaxOptionScore {
				return fmt.Errorf("%s: question %d option %s: value %d outside [%d, %d]",
					set, q.ID, o.ID, o.Value, assessment.MinOptionScore, assessment.MaxOptionScore)
			}
		}
	}
	return nil
}

// Load decodes a YAML bank from r.
func Load(r io.Reader, opts ...BankOption) (*Bank, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}
	return New(f, opts...)
}

// LoadFile reads a YAML bank from path.
func LoadFile(path string, opts ...BankOption) (*Bank, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open question bank: %w", err)
	}
	defer fh.Close()
	return Load(fh, opts...)
}

var defaultBank = sync.OnceValue(func() *Bank {
	b, err := Load(bytes.NewReader(builtinBank))
	if err != nil {
		panic(fmt.Sprintf("builtin question bank: %v", err))
	}
	return b
})

// Default returns the bank embedded in the binary.
func Default() *Bank {
	return defaultBank()
}

// Topics lists the bank's topics in order, without their questions.
func (b *Bank) Topics() []Topic {
	out := make([]Topic, len(b.topics))
	for i, t := range b.topics {
		t.Questions = nil
		out[i] = t
	}
	return out
}

// Has reports whether title names a topic in the bank.
func (b *Bank) Has(title string) bool {
	_, ok := b.index[title]
	return ok
}

// Pick draws n questions for topic in uniformly random order. Unknown
// topics draw from the fallback set. n <= 0 means DefaultCount; n larger
// than the pool yields the whole pool.
func (b *Bank) Pick(topic string, n int) Assessment {
	if n <= 0 {
		n = DefaultCount
	}
	pool := b.fallback
	if i, ok := b.index[topic]; ok {
		pool = b.topics[i].Questions
	}

	b.mu.Lock()
	questions := assessment.Sample(b.rng, pool, n)
	b.mu.Unlock()

	return Assessment{
		Title:       topic,
		Description: fmt.Sprintf("这是关于 %s 的标准测评问卷。", topic),
		Questions:   questions,
	}
}
