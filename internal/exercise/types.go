package exercise

// Skill is the language skill a section exercises.
type Skill string

const (
	SkillVocabulary Skill = "vocabulary"
	SkillGrammar    Skill = "grammar"
	SkillReading    Skill = "reading"
	SkillWriting    Skill = "writing"
	SkillListening  Skill = "listening"
)

// AllSkills returns every known skill in display order.
func AllSkills() []Skill {
	return []Skill{SkillVocabulary, SkillGrammar, SkillReading, SkillWriting, SkillListening}
}

// Valid reports whether s is a known skill.
func (s Skill) Valid() bool {
	for _, k := range AllSkills() {
		if k == s {
			return true
		}
	}
	return false
}

// CognitiveLevel is one of the six ordered taxonomy tiers, recall to create.
type CognitiveLevel string

const (
	LevelRemember   CognitiveLevel = "remember"
	LevelUnderstand CognitiveLevel = "understand"
	LevelApply      CognitiveLevel = "apply"
	LevelAnalyze    CognitiveLevel = "analyze"
	LevelEvaluate   CognitiveLevel = "evaluate"
	LevelCreate     CognitiveLevel = "create"
)

// AllCognitiveLevels returns the levels from lowest to highest.
func AllCognitiveLevels() []CognitiveLevel {
	return []CognitiveLevel{
		LevelRemember, LevelUnderstand, LevelApply,
		LevelAnalyze, LevelEvaluate, LevelCreate,
	}
}

// Rank returns the 1-based position of the level, or 0 if unknown.
func (l CognitiveLevel) Rank() int {
	for i, k := range AllCognitiveLevels() {
		if k == l {
			return i + 1
		}
	}
	return 0
}

// Valid reports whether l is a known cognitive level.
func (l CognitiveLevel) Valid() bool {
	return l.Rank() > 0
}

// QuestionType identifies how a question is presented and answered.
type QuestionType string

const (
	TypeMultipleChoice     QuestionType = "multiple_choice"
	TypeFillBlank          QuestionType = "fill_blank"
	TypeTrueFalse          QuestionType = "true_false"
	TypeMatching           QuestionType = "matching"
	TypeShortAnswer        QuestionType = "short_answer"
	TypeEssay              QuestionType = "essay"
	TypeErrorCorrection    QuestionType = "error_correction"
	TypeWordFormation      QuestionType = "word_formation"
	TypeSentenceCompletion QuestionType = "sentence_completion"
)

// AllQuestionTypes returns every supported question type.
func AllQuestionTypes() []QuestionType {
	return []QuestionType{
		TypeMultipleChoice, TypeFillBlank, TypeTrueFalse, TypeMatching,
		TypeShortAnswer, TypeEssay, TypeErrorCorrection, TypeWordFormation,
		TypeSentenceCompletion,
	}
}

// Valid reports whether t is a supported question type.
func (t QuestionType) Valid() bool {
	for _, k := range AllQuestionTypes() {
		if k == t {
			return true
		}
	}
	return false
}

// AcceptsKind reports whether an answer of the given kind fits this question type.
// Multi-blank fill-ins take indexed blanks, matching takes indexed pairs; a
// plain text answer is always accepted.
func (t QuestionType) AcceptsKind(k AnswerKind) bool {
	switch k {
	case KindText:
		return true
	case KindBlanks:
		return t == TypeFillBlank
	case KindMatching:
		return t == TypeMatching
	}
	return false
}

// Question is a single gradable item.
type Question struct {
	ID              string       `json:"id"`
	Type            QuestionType `json:"type"`
	Prompt          string       `json:"prompt"`
	Options         []string     `json:"options,omitempty"`
	Points          int          `json:"points"`
	CorrectAnswer   string       `json:"correctAnswer"`
	AcceptedAnswers []string     `json:"acceptedAnswers,omitempty"`
	TargetWords     []string     `json:"targetWords,omitempty"`
	Hints           []string     `json:"hints,omitempty"`
	Explanation     string       `json:"explanation,omitempty"`
}

// Accepted returns the strings that count as a correct answer. Falls back
// to CorrectAnswer when no explicit set was given.
func (q Question) Accepted() []string {
	if len(q.AcceptedAnswers) > 0 {
		return q.AcceptedAnswers
	}
	return []string{q.CorrectAnswer}
}

// Section is a themed group of questions sharing one skill and one cognitive level.
type Section struct {
	Title          string         `json:"title"`
	Skill          Skill          `json:"skill"`
	CognitiveLevel CognitiveLevel `json:"cognitiveLevel"`
	Instructions   string         `json:"instructions,omitempty"`
	Content        string         `json:"content,omitempty"`
	Questions      []Question     `json:"questions"`
}

// Exercise is a complete generated exercise. It is treated as immutable
// once accepted by Prepare.
type Exercise struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Level       string    `json:"level,omitempty"`
	MaxScore    int       `json:"maxScore,omitempty"`
	Sections    []Section `json:"sections"`
}

// Located is a question together with the section that owns it.
type Located struct {
	Question Question
	Section  *Section
}

// Flatten returns every question across all sections in order, each paired
// with its owning section.
func (e *Exercise) Flatten() []Located {
	var out []Located
	for i := range e.Sections {
		s := &e.Sections[i]
		for _, q := range s.Questions {
			out = append(out, Located{Question: q, Section: s})
		}
	}
	return out
}

// Lookup finds a question by id.
func (e *Exercise) Lookup(id string) (Located, bool) {
	for i := range e.Sections {
		s := &e.Sections[i]
		for _, q := range s.Questions {
			if q.ID == id {
				return Located{Question: q, Section: s}, true
			}
		}
	}
	return Located{}, false
}

// QuestionCount returns the total number of questions.
func (e *Exercise) QuestionCount() int {
	n := 0
	for _, s := range e.Sections {
		n += len(s.Questions)
	}
	return n
}

// TotalPoints sums the points of every question.
func (e *Exercise) TotalPoints() int {
	total := 0
	for _, s := range e.Sections {
		for _, q := range s.Questions {
			total += q.Points
		}
	}
	return total
}

// Clone returns a deep copy of the exercise.
func (e *Exercise) Clone() *Exercise {
	c := *e
	c.Sections = make([]Section, len(e.Sections))
	for i, s := range e.Sections {
		cs := s
		cs.Questions = make([]Question, len(s.Questions))
		for j, q := range s.Questions {
			cq := q
			cq.Options = cloneStrings(q.Options)
			cq.AcceptedAnswers = cloneStrings(q.AcceptedAnswers)
			cq.TargetWords = cloneStrings(q.TargetWords)
			cq.Hints = cloneStrings(q.Hints)
			cs.Questions[j] = cq
		}
		c.Sections[i] = cs
	}
	return &c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
