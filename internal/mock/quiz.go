package mock

import (
	"fmt"

	"brainforge/internal/model"
)

const (
	ModuleQuizTimeLimit = 600
	CourseQuizTimeLimit = 1200
)

func options(a, b, c, d string) []model.Option {
	return []model.Option{
		{Letter: "A", Text: a},
		{Letter: "B", Text: b},
		{Letter: "C", Text: c},
		{Letter: "D", Text: d},
	}
}

// FallbackQuiz 真实测验不可用时的示例题
func FallbackQuiz(moduleTitle string) model.Quiz {
	if moduleTitle == "" {
		moduleTitle = "Module"
	}

	questions := []model.Question{
		{
			ID:            "1",
			Text:          "What is the primary purpose of the concepts covered in " + moduleTitle + "?",
			Options:       options("To build a foundation for later topics", "To replace practical work", "To memorize terminology only", "None of the above"),
			CorrectAnswer: "A",
			Explanation:   "The module introduces foundational ideas that later modules build on.",
			Difficulty:    model.QuestionEasy,
			KnowledgeArea: moduleTitle,
			CommonMistake: "Treating the module as isolated vocabulary instead of connected concepts.",
			Points:        5,
		},
		{
			ID:            "2",
			Text:          "Which approach best helps retain what you learned?",
			Options:       options("Reading once quickly", "Active recall and spaced review", "Skipping the summary", "Avoiding practice exercises"),
			CorrectAnswer: "B",
			Explanation:   "Active recall combined with spaced repetition strengthens long-term memory.",
			Difficulty:    model.QuestionEasy,
			KnowledgeArea: "Study Skills",
			CommonMistake: "Relying on re-reading, which feels productive but retains less.",
			Points:        5,
		},
		{
			ID:            "3",
			Text:          "When applying a new concept to a real problem, what should come first?",
			Options:       options("Writing the final solution", "Ignoring constraints", "Understanding the problem and its constraints", "Choosing a tool at random"),
			CorrectAnswer: "C",
			Explanation:   "Clarifying the problem and its constraints guides every later decision.",
			Difficulty:    model.QuestionMedium,
			KnowledgeArea: moduleTitle,
			CommonMistake: "Jumping to implementation before understanding requirements.",
			Points:        10,
		},
		{
			ID:            "4",
			Text:          "What is the best way to verify your understanding of " + moduleTitle + "?",
			Options:       options("Assume it is understood", "Only re-read the introduction", "Ask someone else to remember it", "Explain it in your own words and test it on examples"),
			CorrectAnswer: "D",
			Explanation:   "Explaining and applying a concept exposes gaps that passive review hides.",
			Difficulty:    model.QuestionMedium,
			KnowledgeArea: "Study Skills",
			CommonMistake: "Confusing familiarity with understanding.",
			Points:        10,
		},
		{
			ID:            "5",
			Text:          "Which statement about common mistakes is most accurate?",
			Options:       options("Reviewing mistakes accelerates learning", "Mistakes should be ignored", "Only experts make mistakes", "Mistakes mean the topic is too hard"),
			CorrectAnswer: "A",
			Explanation:   "Analysing errors shows exactly which ideas need more work.",
			Difficulty:    model.QuestionHard,
			KnowledgeArea: moduleTitle,
			CommonMistake: "Moving on without understanding why an answer was wrong.",
			Points:        15,
		},
	}

	return model.Quiz{
		TotalQuestions:   len(questions),
		ModuleTitle:      fmt.Sprintf("%s Quiz", moduleTitle),
		TimeLimitSeconds: ModuleQuizTimeLimit,
		Questions:        questions,
	}
}
