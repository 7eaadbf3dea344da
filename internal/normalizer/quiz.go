package normalizer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"brainforge/internal/model"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

const (
	DefaultExplanation   = "Explanation not available"
	DefaultKnowledgeArea = "General Knowledge"
	DefaultCommonMistake = "No common mistake information available"
	DefaultPoints        = 5
)

var optionPrefix = regexp.MustCompile(`^\s*\(?([A-Da-d])[\)\.:]\s*`)

// NormalizeQuiz title 为模块标题，用于题目的 knowledgeArea 和测验标题的默认值
func NormalizeQuiz(raw gjson.Result, title string, defaultTimeLimit int) model.Quiz {
	f := fields{raw}

	questions := raw
	if raw.IsObject() {
		questions = f.get("questions")
	}

	quiz := model.Quiz{Questions: []model.Question{}}
	if questions.IsArray() {
		for i, q := range questions.Array() {
			if !q.IsObject() {
				continue
			}
			quiz.Questions = append(quiz.Questions, normalizeQuestion(i, q, title))
		}
	}

	// 上游给出的总数优先，允许与题目数不一致
	if n, ok := f.count("totalQuestions", "total_questions"); ok {
		quiz.TotalQuestions = n
	} else {
		quiz.TotalQuestions = len(quiz.Questions)
	}

	defaultTitle := "Quiz"
	if title != "" {
		defaultTitle = title + " Quiz"
	}
	quiz.ModuleTitle = f.str(defaultTitle, "moduleTitle", "module_title", "title")

	if n, ok := f.count("timeLimit", "time_limit", "timeLimitSeconds"); ok && n > 0 {
		quiz.TimeLimitSeconds = n
	} else {
		quiz.TimeLimitSeconds = defaultTimeLimit
	}

	return quiz
}

// NormalizeQuizResponse 处理测验接口的 {quiz, module_title, module_number, course_title} 包装，
// ok 表示是否拿到了至少一道题
func NormalizeQuizResponse(raw []byte, defaultTimeLimit int) (model.Quiz, bool) {
	root := gjson.ParseBytes(raw)
	body := unwrap(root, "quiz")

	title := stringOr(root.Get("module_title"), "")
	quiz := NormalizeQuiz(body, title, defaultTimeLimit)

	if n, ok := (fields{root}).count("module_number"); ok {
		quiz.ModuleNumber = n
	}
	quiz.CourseTitle = stringOr(root.Get("course_title"), "")

	return quiz, len(quiz.Questions) > 0
}

func normalizeQuestion(idx int, q gjson.Result, moduleTitle string) model.Question {
	f := fields{q}

	id := idString(f.get("id", "question_id", "questionId"))
	if id == "" {
		id = strconv.Itoa(idx + 1)
	}

	knowledgeArea := moduleTitle
	if knowledgeArea == "" {
		knowledgeArea = DefaultKnowledgeArea
	}

	options := normalizeOptions(f.get("options", "choices"))

	points, ok := f.count("points")
	if !ok || points <= 0 {
		points = DefaultPoints
	}

	question := model.Question{
		ID:            id,
		Text:          f.str(fmt.Sprintf("Question %d", idx+1), "question", "text", "questionText"),
		Options:       options,
		CorrectAnswer: CorrectAnswer(f.str("", "correct_answer", "correctAnswer"), options),
		Explanation:   f.str(DefaultExplanation, "explanation"),
		Difficulty:    questionDifficulty(f.str("", "difficulty")),
		KnowledgeArea: f.str(knowledgeArea, "knowledgeArea", "knowledge_area"),
		CommonMistake: f.str(DefaultCommonMistake, "commonMistake", "common_mistake"),
		Points:        points,
		ModuleTitle:   f.str("", "module_title", "moduleTitle"),
	}
	if n, ok := f.count("module", "module_number", "moduleNumber"); ok {
		question.ModuleNumber = n
	}

	return question
}

// normalizeOptions 输出恰好 A-D 四个选项，接受数组或 {A: .., B: ..} 形式
func normalizeOptions(v gjson.Result) []model.Option {
	var texts []string

	switch {
	case v.IsArray():
		for _, item := range v.Array() {
			if item.IsObject() {
				texts = append(texts, stringOr(item.Get("text"), stringOr(item.Get("option"), "")))
				continue
			}
			texts = append(texts, optionPrefix.ReplaceAllString(strings.TrimSpace(item.String()), ""))
		}
	case v.IsObject():
		byLetter := map[string]string{}
		v.ForEach(func(key, value gjson.Result) bool {
			byLetter[strings.ToUpper(strings.TrimSpace(key.String()))] = strings.TrimSpace(value.String())
			return true
		})
		for _, letter := range model.AnswerLetters {
			texts = append(texts, byLetter[letter])
		}
	}

	options := make([]model.Option, len(model.AnswerLetters))
	for i, letter := range model.AnswerLetters {
		text := ""
		if i < len(texts) {
			text = texts[i]
		}
		if text == "" {
			text = "Option " + letter
		}
		options[i] = model.Option{Letter: letter, Text: text}
	}
	return options
}

// CorrectAnswer 规范化为 A-D 中的单个大写字母，无法识别时为 A
func CorrectAnswer(raw string, options []model.Option) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return model.AnswerLetters[0]
	}

	if m := optionPrefix.FindStringSubmatch(s); m != nil {
		return strings.ToUpper(m[1])
	}
	if len(s) == 1 && lo.Contains(model.AnswerLetters, s) {
		return s
	}

	for _, opt := range options {
		if strings.EqualFold(strings.TrimSpace(opt.Text), strings.TrimSpace(raw)) {
			return opt.Letter
		}
	}
	return model.AnswerLetters[0]
}

func questionDifficulty(s string) model.QuestionDifficulty {
	switch d := model.QuestionDifficulty(strings.ToLower(s)); d {
	case model.QuestionEasy, model.QuestionMedium, model.QuestionHard:
		return d
	}
	return model.QuestionMedium
}
