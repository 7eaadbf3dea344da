// Package normalizer 把后端各版本的课程/测验/卡片 JSON 统一转换成 model 中的类型。
// 所有函数都是纯函数，输入再不规整也不会返回错误。
package normalizer

import (
	"fmt"
	"strings"
	"time"

	"brainforge/internal/mock"
	"brainforge/internal/model"

	"github.com/samber/lo"
	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

const (
	DefaultTitle             = "Untitled Course"
	DefaultDescription       = "No description available"
	DefaultEstimatedDuration = "Unknown"
	DefaultModuleDuration    = "45-60 minutes"
)

// Normalize 解析原始课程 JSON
func Normalize(raw []byte) model.Course {
	return NormalizeValue(gjson.ParseBytes(raw))
}

// NormalizeCourseResponse 处理 /course/{id} 的 {success, course} 包装
func NormalizeCourseResponse(raw []byte) model.Course {
	return NormalizeValue(unwrap(gjson.ParseBytes(raw), "course"))
}

// NormalizeList 处理 /recent-courses 的 {success, courses} 包装，也接受裸数组
func NormalizeList(raw []byte) []model.Course {
	root := gjson.ParseBytes(raw)
	list := root
	if !root.IsArray() {
		list = root.Get("courses")
	}
	if !list.IsArray() {
		return []model.Course{}
	}

	return lo.FilterMap(list.Array(), func(item gjson.Result, _ int) (model.Course, bool) {
		if !item.IsObject() {
			return model.Course{}, false
		}
		return NormalizeValue(item), true
	})
}

func unwrap(root gjson.Result, key string) gjson.Result {
	if inner := root.Get(key); inner.IsObject() {
		return inner
	}
	return root
}

// locatePayload 依次尝试 course_structure.course、actualCourse、course_structure，最后退回原始对象
func locatePayload(raw gjson.Result) gjson.Result {
	if p := raw.Get("course_structure.course"); p.IsObject() {
		return p
	}
	if p := raw.Get("actualCourse"); p.IsObject() {
		return p
	}
	if p := raw.Get("course_structure"); p.IsObject() && (p.Get("modules").Exists() || p.Get("title").Exists()) {
		return p
	}
	return raw
}

func NormalizeValue(raw gjson.Result) model.Course {
	f := fields{locatePayload(raw), raw}

	course := model.Course{
		ID:                idString(f.get("_id", "id", "course_id", "content_id")),
		ContentID:         idString(f.get("content_id", "contentId")),
		Title:             f.str(DefaultTitle, "title", "course_title"),
		Description:       f.str(DefaultDescription, "description"),
		Difficulty:        difficulty(f.str("", "difficulty")),
		EstimatedDuration: f.str(DefaultEstimatedDuration, "estimated_duration", "estimatedDuration"),
		LearningPace:      f.str("", "learning_pace", "learningPace"),
		DepthLevel:        f.str("", "depth_level", "depthLevel"),
		TargetAudience:    text(f.get("target_audience", "targetAudience")),
		LearningOutcomes:  f.list("learning_outcomes", "learningOutcomes"),
		Prerequisites:     f.list("prerequisites"),
		Source:            f.str("", "source"),
		CreatedAt:         timestamp(f.get("created_at", "createdAt")),
	}

	items := lo.Filter(f.array("modules").Array(), func(m gjson.Result, _ int) bool {
		return m.IsObject()
	})
	numbers := moduleNumbers(items)
	course.Modules = make([]model.Module, 0, len(items))
	for i, m := range items {
		course.Modules = append(course.Modules, normalizeModule(numbers[i], m))
	}

	course.Flashcards = NormalizeFlashcards(f.array("flashcards"))

	if n, ok := f.count("modules_count", "modulesCount", "total_modules"); ok {
		course.ModulesCount = n
	} else {
		course.ModulesCount = len(course.Modules)
	}
	if n, ok := f.count("flashcards_count", "flashcardsCount"); ok {
		course.FlashcardsCount = n
	} else {
		course.FlashcardsCount = len(course.Flashcards)
	}

	return course
}

func difficulty(s string) model.Difficulty {
	d := model.Difficulty(strings.ToLower(s))
	if d.Valid() {
		return d
	}
	return model.DifficultyIntermediate
}

func timestamp(v gjson.Result) *time.Time {
	if !v.Exists() || v.IsObject() || v.IsArray() {
		return nil
	}
	t, err := cast.ToTimeE(v.Value())
	if err != nil || t.IsZero() {
		return nil
	}
	return &t
}

// moduleNumbers 显式编号先占位，缺失或重复的编号优先取位置序号，被占用时取当前最大值+1
func moduleNumbers(items []gjson.Result) []int {
	numbers := make([]int, len(items))
	used := map[int]bool{}
	top := 0
	for i, m := range items {
		n, ok := fields{m}.count("module_number", "number", "moduleNumber")
		if !ok || n == 0 || used[n] {
			continue
		}
		numbers[i] = n
		used[n] = true
		top = max(top, n)
	}

	for i := range numbers {
		if numbers[i] != 0 {
			continue
		}
		n := i + 1
		if used[n] {
			n = top + 1
		}
		numbers[i] = n
		used[n] = true
		top = max(top, n)
	}
	return numbers
}

func normalizeModule(number int, m gjson.Result) model.Module {
	f := fields{m}

	title := f.str(fmt.Sprintf("Module %d", number), "title", "module_title")

	module := model.Module{
		Number:             number,
		Title:              title,
		DurationEstimate:   f.str(DefaultModuleDuration, "duration_estimate", "durationEstimate", "duration"),
		Description:        f.str("", "description"),
		LearningObjectives: f.list("learning_objectives", "learningObjectives"),
		KeyConcepts:        f.list("key_concepts", "keyConcepts"),
		Content:            normalizeContent(f.get("content")),
		PracticalExercises: normalizeExercises(f.get("practical_exercises", "practicalExercises")),
	}

	if len(module.LearningObjectives) == 0 {
		module.LearningObjectives = []string{
			fmt.Sprintf("Understand the key concepts of %s", title),
			fmt.Sprintf("Apply %s in practical scenarios", title),
		}
	}

	if q := f.get("quiz"); q.IsObject() || q.IsArray() {
		quiz := NormalizeQuiz(q, title, mock.ModuleQuizTimeLimit)
		module.Quiz = &quiz
	}

	return module
}

// normalizeContent content 可能是对象，也可能只是一段文本
func normalizeContent(v gjson.Result) model.ModuleContent {
	content := model.ModuleContent{Sections: []model.Section{}}
	if !v.IsObject() {
		content.Introduction = text(v)
		return content
	}

	f := fields{v}
	content.Introduction = text(f.get("introduction"))
	content.Summary = text(f.get("summary"))

	if sections := f.get("sections"); sections.IsArray() {
		for _, s := range sections.Array() {
			if !s.IsObject() {
				continue
			}
			content.Sections = append(content.Sections, normalizeSection(s))
		}
	}
	return content
}

func normalizeSection(s gjson.Result) model.Section {
	f := fields{s}
	section := model.Section{
		Heading:              f.str("", "heading", "title"),
		Content:              text(f.get("content")),
		KeyPoints:            f.list("key_points", "keyPoints"),
		RealWorldApplication: text(f.get("real_world_application", "realWorldApplication")),
		CommonMistakes:       text(f.get("common_mistakes", "commonMistakes")),
		BestPractices:        f.list("best_practices", "bestPractices"),
	}

	if nh := f.get("notes_hierarchy", "notesHierarchy"); nh.IsObject() {
		section.NotesHierarchy = &model.NotesHierarchy{
			MainTopic:    stringOr(nh.Get("main_topic"), ""),
			Subtopics:    normalizeSubtopics(nh.Get("subtopics")),
			KeyTakeaways: stringList(nh.Get("key_takeaways")),
		}
	}
	return section
}

func normalizeSubtopics(v gjson.Result) []model.Subtopic {
	if !v.IsArray() {
		return []model.Subtopic{}
	}

	return lo.FilterMap(v.Array(), func(item gjson.Result, _ int) (model.Subtopic, bool) {
		if !item.IsObject() {
			return model.Subtopic{}, false
		}
		sub := model.Subtopic{
			Subtopic:          stringOr(item.Get("subtopic"), ""),
			Points:            stringList(item.Get("points")),
			SubPoints:         stringList(item.Get("sub_points")),
			ImportantConcepts: stringList(item.Get("important_concepts")),
		}
		if nested := item.Get("subtopics"); nested.IsArray() {
			sub.Subtopics = normalizeSubtopics(nested)
		}
		return sub, true
	})
}

func normalizeExercises(v gjson.Result) []model.PracticalExercise {
	if !v.IsArray() {
		return []model.PracticalExercise{}
	}

	return lo.FilterMap(v.Array(), func(item gjson.Result, _ int) (model.PracticalExercise, bool) {
		if !item.IsObject() {
			return model.PracticalExercise{}, false
		}
		f := fields{item}
		return model.PracticalExercise{
			Title:           f.str("Practical Exercise", "title"),
			Description:     f.str("", "description"),
			Steps:           f.list("steps"),
			ExpectedOutcome: text(f.get("expected_outcome", "expectedOutcome")),
		}, true
	})
}
