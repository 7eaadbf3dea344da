package mock

import (
	"strings"

	"brainforge/internal/model"
)

// DefaultPrefix 带此前缀的课程 id 直接返回 mock 数据，不访问后端
const DefaultPrefix = "mock-"

const CourseID = DefaultPrefix + "course-1"

// Courses 列表加载失败时使用的单课程演示数据
func Courses() []model.Course {
	return []model.Course{Course(CourseID)}
}

// Course 按指定 id 返回演示课程
func Course(id string) model.Course {
	if strings.TrimSpace(id) == "" {
		id = CourseID
	}

	modules := []model.Module{
		{
			Number:           1,
			Title:            "Introduction to Machine Learning",
			DurationEstimate: "45-60 minutes",
			Description:      "What machine learning is, where it is used, and how models learn from data.",
			LearningObjectives: []string{
				"Define machine learning and distinguish it from traditional programming",
				"Identify common real-world applications",
			},
			KeyConcepts: []string{"Data", "Model", "Training"},
			Content: model.ModuleContent{
				Introduction: "📍 **Machine Learning**: systems that improve through experience rather than explicit rules.",
				Sections: []model.Section{
					{
						Heading: "How Models Learn",
						Content: "📍 **Training**: a model adjusts its parameters to reduce error on examples.\n🔹 **Inference**: the trained model makes predictions on new inputs.",
						KeyPoints: []string{
							"📍 Models learn patterns from examples",
							"🔹 Quality of data limits quality of the model",
						},
						NotesHierarchy: &model.NotesHierarchy{
							MainTopic: "Learning from data",
							Subtopics: []model.Subtopic{
								{
									Subtopic: "Training",
									Points:   []string{"📍 **Parameters** are adjusted to minimize loss"},
								},
							},
							KeyTakeaways: []string{"📍 **Data drives behaviour**"},
						},
					},
				},
				Summary: "📍 **Machine learning** turns data into predictive models.",
			},
			PracticalExercises: []model.PracticalExercise{
				{
					Title:           "Spot the ML",
					Description:     "List three apps you use daily and identify which features rely on machine learning.",
					Steps:           []string{"1. Pick three apps", "2. Identify predictive features"},
					ExpectedOutcome: "A short list of ML-powered features and the data they likely use.",
				},
			},
		},
		{
			Number:           2,
			Title:            "Supervised Learning",
			DurationEstimate: "60-90 minutes",
			Description:      "Learning from labeled examples: regression and classification.",
			LearningObjectives: []string{
				"Explain the role of labels in supervised learning",
				"Differentiate regression from classification",
			},
			KeyConcepts: []string{"Labels", "Regression", "Classification"},
			Content: model.ModuleContent{
				Introduction: "📍 **Supervised learning** maps inputs to known outputs.",
				Sections: []model.Section{
					{
						Heading: "Regression and Classification",
						Content: "📍 **Regression** predicts continuous values.\n🔹 **Classification** predicts categories.",
					},
				},
				Summary: "📍 **Labels** guide the model toward correct predictions.",
			},
			PracticalExercises: []model.PracticalExercise{},
		},
	}

	for i := range modules {
		q := FallbackQuiz(modules[i].Title)
		modules[i].Quiz = &q
	}

	flashcards := SampleFlashcards()

	return model.Course{
		ID:                id,
		Title:             "Machine Learning Fundamentals (Demo)",
		Description:       "A demo course shown while the BrainForge backend is unavailable.",
		Difficulty:        model.DifficultyBeginner,
		EstimatedDuration: "2-3 hours",
		LearningPace:      "medium",
		DepthLevel:        "comprehensive",
		LearningOutcomes:  []string{"Understand core ML vocabulary", "Recognize supervised learning problems"},
		Modules:           modules,
		Flashcards:        flashcards,
		ModulesCount:      len(modules),
		FlashcardsCount:   len(flashcards),
		Source:            "mock",
	}
}

// IsMockID 判断课程 id 是否使用 mock 前缀
func IsMockID(id, prefix string) bool {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return strings.HasPrefix(id, prefix)
}
