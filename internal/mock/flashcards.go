package mock

import "brainforge/internal/model"

// SampleFlashcards 后端没有返回卡片数组时使用的固定卡组，与课程无关
func SampleFlashcards() []model.Flashcard {
	return []model.Flashcard{
		{
			ID:              "1",
			Front:           "What is machine learning?",
			Back:            "A field of AI where systems learn patterns from data instead of following explicitly programmed rules.",
			Mnemonic:        "Machines Learn from Examples",
			Category:        "Fundamentals",
			Importance:      model.ImportanceHigh,
			VisualCue:       "A robot reading a stack of books",
			RelatedConcepts: []string{"Artificial Intelligence", "Data", "Models"},
			Difficulty:      model.QuestionEasy,
		},
		{
			ID:              "2",
			Front:           "Supervised vs. unsupervised learning",
			Back:            "Supervised learning trains on labeled examples; unsupervised learning finds structure in unlabeled data.",
			Mnemonic:        "Supervised has a teacher, unsupervised explores alone",
			Category:        "Learning Types",
			Importance:      model.ImportanceHigh,
			VisualCue:       "A teacher grading papers next to an explorer with a map",
			RelatedConcepts: []string{"Labels", "Clustering", "Classification"},
			Difficulty:      model.QuestionMedium,
		},
		{
			ID:              "3",
			Front:           "What is overfitting?",
			Back:            "When a model memorizes training data, including noise, and performs poorly on new data.",
			Mnemonic:        "Too tight a fit tears on new shapes",
			Category:        "Model Evaluation",
			Importance:      model.ImportanceHigh,
			VisualCue:       "A suit tailored so tightly it only fits one mannequin",
			RelatedConcepts: []string{"Regularization", "Validation", "Generalization"},
			Difficulty:      model.QuestionMedium,
		},
		{
			ID:              "4",
			Front:           "What does a loss function measure?",
			Back:            "How far a model's predictions are from the expected outputs; training minimizes it.",
			Mnemonic:        "Loss is the distance to the target",
			Category:        "Optimization",
			Importance:      model.ImportanceMedium,
			VisualCue:       "An arrow landing away from the bullseye",
			RelatedConcepts: []string{"Gradient Descent", "Error", "Optimization"},
			Difficulty:      model.QuestionMedium,
		},
		{
			ID:              "5",
			Front:           "What is a training/test split?",
			Back:            "Partitioning data so a model is fit on one part and evaluated on unseen data from the other.",
			Mnemonic:        "Practice on one set, exam on another",
			Category:        "Model Evaluation",
			Importance:      model.ImportanceMedium,
			VisualCue:       "A deck of cards cut into two piles",
			RelatedConcepts: []string{"Cross-validation", "Evaluation", "Overfitting"},
			Difficulty:      model.QuestionEasy,
		},
	}
}
