package model

type Importance string

const (
	ImportanceLow    Importance = "low"
	ImportanceMedium Importance = "medium"
	ImportanceHigh   Importance = "high"
)

type Flashcard struct {
	ID              string             `json:"id"`
	Front           string             `json:"front"`
	Back            string             `json:"back"`
	Mnemonic        string             `json:"mnemonic,omitempty"`
	Category        string             `json:"category"`
	Importance      Importance         `json:"importance"`
	VisualCue       string             `json:"visualCue,omitempty"`
	RelatedConcepts []string           `json:"relatedConcepts"`
	Difficulty      QuestionDifficulty `json:"difficulty"`
}
