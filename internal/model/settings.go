package model

import "strconv"

// CourseSettings 上传时提交的生成参数
type CourseSettings struct {
	Difficulty         string `json:"difficulty" form:"difficulty"`
	LearningPace       string `json:"learning_pace" form:"learning_pace"`
	DepthLevel         string `json:"depth_level" form:"depth_level"`
	Modules            int    `json:"modules" form:"modules"`
	Flashcards         int    `json:"flashcards" form:"flashcards"`
	QuestionsPerModule int    `json:"questions_per_module" form:"questions_per_module"`
	IncludePractical   bool   `json:"include_practical" form:"include_practical"`
	IncludeCaseStudies bool   `json:"include_case_studies" form:"include_case_studies"`
	IncludeExamPrep    bool   `json:"include_exam_prep" form:"include_exam_prep"`
}

func DefaultCourseSettings() CourseSettings {
	return CourseSettings{
		Difficulty:         string(DifficultyIntermediate),
		LearningPace:       "medium",
		DepthLevel:         "comprehensive",
		Modules:            4,
		Flashcards:         10,
		QuestionsPerModule: 3,
		IncludePractical:   true,
		IncludeCaseStudies: true,
		IncludeExamPrep:    true,
	}
}

// FormFields multipart 表单字段，字段名与后端一致
func (s CourseSettings) FormFields() map[string]string {
	return map[string]string{
		"difficulty":           s.Difficulty,
		"learning_pace":        s.LearningPace,
		"depth_level":          s.DepthLevel,
		"modules":              strconv.Itoa(s.Modules),
		"flashcards":           strconv.Itoa(s.Flashcards),
		"questions_per_module": strconv.Itoa(s.QuestionsPerModule),
		"include_practical":    strconv.FormatBool(s.IncludePractical),
		"include_case_studies": strconv.FormatBool(s.IncludeCaseStudies),
		"include_exam_prep":    strconv.FormatBool(s.IncludeExamPrep),
	}
}

// UploadResult /upload 的结果
type UploadResult struct {
	CourseID      string  `json:"courseId"`
	ContentID     string  `json:"contentId"`
	Filename      string  `json:"filename"`
	ContentLength int     `json:"contentLength"`
	ArchivedURL   string  `json:"archivedUrl,omitempty"`
	Course        *Course `json:"course,omitempty"`
}

type GenerateCourseRequest struct {
	ContentID string         `json:"content_id"`
	Settings  CourseSettings `json:"settings"`
}

// 可选值与后端 /course-settings/options 保持一致
var (
	LearningPaces = []string{"slow", "medium", "fast"}
	DepthLevels   = []string{"basic", "intermediate", "comprehensive", "expert"}
)

type SettingsOption struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type SettingsDefaults struct {
	Modules            int `json:"modules"`
	Flashcards         int `json:"flashcards"`
	QuestionsPerModule int `json:"questions_per_module"`
}

// SettingsOptions 设置页的选项，后端不可用时使用本地副本
type SettingsOptions struct {
	DifficultyLevels []SettingsOption `json:"difficulty_levels"`
	LearningPaces    []SettingsOption `json:"learning_paces"`
	DepthLevels      []SettingsOption `json:"depth_levels"`
	EnhancedFeatures []SettingsOption `json:"enhanced_features"`
	Defaults         SettingsDefaults `json:"defaults"`
}

func DefaultSettingsOptions() SettingsOptions {
	return SettingsOptions{
		DifficultyLevels: []SettingsOption{
			{Value: "beginner", Label: "Beginner", Description: "No prior knowledge required"},
			{Value: "intermediate", Label: "Intermediate", Description: "Basic understanding assumed"},
			{Value: "advanced", Label: "Advanced", Description: "For experienced learners"},
			{Value: "expert", Label: "Expert", Description: "Professional level insights"},
		},
		LearningPaces: []SettingsOption{
			{Value: "slow", Label: "Slow & Detailed", Description: "Comprehensive explanations with multiple examples"},
			{Value: "medium", Label: "Balanced Pace", Description: "Balance between depth and conciseness"},
			{Value: "fast", Label: "Fast & Focused", Description: "Key concepts and summaries only"},
		},
		DepthLevels: []SettingsOption{
			{Value: "basic", Label: "Basic Overview", Description: "Fundamental concepts only"},
			{Value: "intermediate", Label: "Practical Focus", Description: "Includes practical applications"},
			{Value: "comprehensive", Label: "Comprehensive", Description: "In-depth analysis with advanced topics"},
			{Value: "expert", Label: "Expert Level", Description: "Research-level insights and case studies"},
		},
		EnhancedFeatures: []SettingsOption{
			{Value: "include_practical", Label: "Practical Exercises", Description: "Hands-on coding exercises and real-world projects"},
			{Value: "include_case_studies", Label: "Case Studies", Description: "Real industry examples and success stories"},
			{Value: "include_exam_prep", Label: "Exam Preparation", Description: "Previous year questions and important topics"},
		},
		Defaults: SettingsDefaults{Modules: 4, Flashcards: 10, QuestionsPerModule: 3},
	}
}
