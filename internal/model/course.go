package model

import "time"

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyExpert       Difficulty = "expert"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyExpert:
		return true
	}
	return false
}

// Course 规范化后的课程，modules 顺序即展示顺序
type Course struct {
	ID                string      `json:"id"`
	ContentID         string      `json:"contentId,omitempty"`
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	Difficulty        Difficulty  `json:"difficulty"`
	EstimatedDuration string      `json:"estimatedDuration"`
	LearningPace      string      `json:"learningPace,omitempty"`
	DepthLevel        string      `json:"depthLevel,omitempty"`
	TargetAudience    string      `json:"targetAudience,omitempty"`
	LearningOutcomes  []string    `json:"learningOutcomes,omitempty"`
	Prerequisites     []string    `json:"prerequisites,omitempty"`
	Modules           []Module    `json:"modules"`
	Flashcards        []Flashcard `json:"flashcards"`
	ModulesCount      int         `json:"modulesCount"`
	FlashcardsCount   int         `json:"flashcardsCount"`
	Source            string      `json:"source,omitempty"`
	CreatedAt         *time.Time  `json:"createdAt,omitempty"`
}

// ModuleByNumber 按 module number 查找，而不是数组下标
func (c *Course) ModuleByNumber(number int) (*Module, bool) {
	for i := range c.Modules {
		if c.Modules[i].Number == number {
			return &c.Modules[i], true
		}
	}
	return nil, false
}

type Module struct {
	Number             int                 `json:"number"`
	Title              string              `json:"title"`
	DurationEstimate   string              `json:"durationEstimate"`
	Description        string              `json:"description"`
	LearningObjectives []string            `json:"learningObjectives"`
	KeyConcepts        []string            `json:"keyConcepts,omitempty"`
	Content            ModuleContent       `json:"content"`
	PracticalExercises []PracticalExercise `json:"practicalExercises"`
	Quiz               *Quiz               `json:"quiz,omitempty"`
}

type ModuleContent struct {
	Introduction string    `json:"introduction"`
	Sections     []Section `json:"sections"`
	Summary      string    `json:"summary"`
}

type Section struct {
	Heading              string          `json:"heading"`
	Content              string          `json:"content"`
	NotesHierarchy       *NotesHierarchy `json:"notes_hierarchy,omitempty"`
	KeyPoints            []string        `json:"key_points,omitempty"`
	RealWorldApplication string          `json:"real_world_application,omitempty"`
	CommonMistakes       string          `json:"common_mistakes,omitempty"`
	BestPractices        []string        `json:"best_practices,omitempty"`
}

// NotesHierarchy 只用于展示，不做任何处理
type NotesHierarchy struct {
	MainTopic    string     `json:"main_topic"`
	Subtopics    []Subtopic `json:"subtopics"`
	KeyTakeaways []string   `json:"key_takeaways,omitempty"`
}

type Subtopic struct {
	Subtopic          string     `json:"subtopic"`
	Points            []string   `json:"points,omitempty"`
	SubPoints         []string   `json:"sub_points,omitempty"`
	ImportantConcepts []string   `json:"important_concepts,omitempty"`
	Subtopics         []Subtopic `json:"subtopics,omitempty"`
}

type PracticalExercise struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Steps           []string `json:"steps,omitempty"`
	ExpectedOutcome string   `json:"expectedOutcome,omitempty"`
}
