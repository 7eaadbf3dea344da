package normalizer

import (
	"testing"

	"brainforge/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNestedCourseStructure(t *testing.T) {
	raw := `{"course_structure":{"course":{"title":"Nets 101","modules":[{"module_number":1,"quiz":{"questions":[{"question":"Q1","options":["A) x","B) y","C) z","D) w"],"correct_answer":"b","points":10}]}}]}}}`

	course := Normalize([]byte(raw))

	assert.Equal(t, "Nets 101", course.Title)
	require.Len(t, course.Modules, 1)
	require.NotNil(t, course.Modules[0].Quiz)
	require.Len(t, course.Modules[0].Quiz.Questions, 1)

	q := course.Modules[0].Quiz.Questions[0]
	assert.Equal(t, "Q1", q.Text)
	assert.Equal(t, "B", q.CorrectAnswer)
	assert.Equal(t, 10, q.Points)
	assert.Equal(t, "x", q.Options[0].Text)
	assert.Equal(t, "D) w", q.Options[3].String())
}

func TestNormalizeDefaults(t *testing.T) {
	course := Normalize([]byte(`{}`))

	assert.Equal(t, DefaultTitle, course.Title)
	assert.Equal(t, DefaultDescription, course.Description)
	assert.Equal(t, model.DifficultyIntermediate, course.Difficulty)
	assert.Equal(t, DefaultEstimatedDuration, course.EstimatedDuration)
	assert.NotNil(t, course.Modules)
	assert.Empty(t, course.Modules)
	assert.Equal(t, 0, course.ModulesCount)
}

func TestNormalizeNeverFailsOnGarbage(t *testing.T) {
	for _, raw := range []string{``, `null`, `[]`, `"text"`, `{"modules":"nope"}`, `{"course_structure":42}`, `{broken`} {
		course := Normalize([]byte(raw))
		assert.Empty(t, course.Modules, raw)
		assert.Equal(t, 0, course.ModulesCount, raw)
		assert.Equal(t, DefaultTitle, course.Title, raw)
	}
}

func TestNormalizeActualCourseShape(t *testing.T) {
	raw := `{"_id":"abc","title":"outer","actualCourse":{"title":"Inner","difficulty":"ADVANCED","modules":[{"title":"Intro"}]}}`

	course := Normalize([]byte(raw))

	assert.Equal(t, "abc", course.ID)
	assert.Equal(t, "Inner", course.Title)
	assert.Equal(t, model.DifficultyAdvanced, course.Difficulty)
	require.Len(t, course.Modules, 1)
	assert.Equal(t, 1, course.Modules[0].Number)
	assert.Equal(t, "Intro", course.Modules[0].Title)
	assert.Equal(t, DefaultModuleDuration, course.Modules[0].DurationEstimate)
	assert.Len(t, course.Modules[0].LearningObjectives, 2)
}

func TestNormalizeFlatCourseStructure(t *testing.T) {
	raw := `{"course_structure":{"title":"Flat","modules":[{},{}]},"description":"top level"}`

	course := Normalize([]byte(raw))

	assert.Equal(t, "Flat", course.Title)
	assert.Equal(t, "top level", course.Description)
	require.Len(t, course.Modules, 2)
	assert.Equal(t, "Module 2", course.Modules[1].Title)
	assert.Equal(t, 2, course.ModulesCount)
}

func TestSuppliedCountsWin(t *testing.T) {
	raw := `{"title":"Big","total_modules":8,"flashcards_count":"30","modules":[{"title":"only one"}],"flashcards":[]}`

	course := Normalize([]byte(raw))

	assert.Len(t, course.Modules, 1)
	assert.Equal(t, 8, course.ModulesCount)
	assert.Empty(t, course.Flashcards)
	assert.Equal(t, 30, course.FlashcardsCount)
}

func TestModuleNumberIsStableKey(t *testing.T) {
	raw := `{"modules":[{"module_number":3,"title":"Three"},{"module_number":1,"title":"One"}]}`

	course := Normalize([]byte(raw))

	m, ok := course.ModuleByNumber(1)
	require.True(t, ok)
	assert.Equal(t, "One", m.Title)
	_, ok = course.ModuleByNumber(2)
	assert.False(t, ok)
}

func TestModuleContentAndSections(t *testing.T) {
	raw := `{"modules":[{"title":"M","content":{"introduction":"intro","summary":"sum","sections":[
		{"heading":"H1","content":"body","key_points":["k1",""],"common_mistakes":["a","b"],
		 "notes_hierarchy":{"main_topic":"T","subtopics":[{"subtopic":"S","points":["p"],"sub_points":["sp"],"important_concepts":["ic"]}],"key_takeaways":["kt"]}}
	]},"practical_exercises":[{"title":"Ex","description":"do","steps":["1","2"],"expected_outcome":"done"}]}]}`

	course := Normalize([]byte(raw))
	require.Len(t, course.Modules, 1)
	m := course.Modules[0]

	assert.Equal(t, "intro", m.Content.Introduction)
	assert.Equal(t, "sum", m.Content.Summary)
	require.Len(t, m.Content.Sections, 1)

	s := m.Content.Sections[0]
	assert.Equal(t, "H1", s.Heading)
	assert.Equal(t, []string{"k1"}, s.KeyPoints)
	assert.Equal(t, "a\nb", s.CommonMistakes)
	require.NotNil(t, s.NotesHierarchy)
	assert.Equal(t, "T", s.NotesHierarchy.MainTopic)
	require.Len(t, s.NotesHierarchy.Subtopics, 1)
	assert.Equal(t, []string{"ic"}, s.NotesHierarchy.Subtopics[0].ImportantConcepts)

	require.Len(t, m.PracticalExercises, 1)
	assert.Equal(t, "done", m.PracticalExercises[0].ExpectedOutcome)
	assert.Nil(t, m.Quiz)
}

func TestModuleContentAsString(t *testing.T) {
	course := Normalize([]byte(`{"modules":[{"content":"just text"}]}`))
	require.Len(t, course.Modules, 1)
	assert.Equal(t, "just text", course.Modules[0].Content.Introduction)
	assert.Empty(t, course.Modules[0].Content.Sections)
}

func TestNormalizeCourseResponse(t *testing.T) {
	raw := `{"success":true,"course":{"_id":"c1","content_id":"ct1","course_structure":{"course":{"title":"Wrapped","estimated_duration":"3 hours"}}}}`

	course := NormalizeCourseResponse([]byte(raw))

	assert.Equal(t, "c1", course.ID)
	assert.Equal(t, "ct1", course.ContentID)
	assert.Equal(t, "Wrapped", course.Title)
	assert.Equal(t, "3 hours", course.EstimatedDuration)
}

func TestNormalizeList(t *testing.T) {
	raw := `{"success":true,"courses":[{"_id":"1","title":"A","total_modules":4},"junk",{"_id":"2"}]}`

	courses := NormalizeList([]byte(raw))

	require.Len(t, courses, 2)
	assert.Equal(t, "A", courses[0].Title)
	assert.Equal(t, 4, courses[0].ModulesCount)
	assert.Equal(t, "2", courses[1].ID)

	assert.Empty(t, NormalizeList([]byte(`{"success":false}`)))
}

func TestModuleNumbersStayUnique(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		numbers []int
		titles  []string
	}{
		{
			name:    "missing number after explicit one",
			raw:     `{"modules":[{"module_number":2,"title":"Two"},{"title":"NoNumber"}]}`,
			numbers: []int{2, 3},
			titles:  []string{"Two", "NoNumber"},
		},
		{
			name:    "duplicate explicit number",
			raw:     `{"modules":[{"module_number":1,"title":"A"},{"module_number":1,"title":"B"},{"module_number":2}]}`,
			numbers: []int{1, 3, 2},
			titles:  []string{"A", "B", "Module 2"},
		},
		{
			name:    "no numbers at all",
			raw:     `{"modules":[{},"junk",{},{}]}`,
			numbers: []int{1, 2, 3},
			titles:  []string{"Module 1", "Module 2", "Module 3"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			course := Normalize([]byte(tc.raw))
			require.Len(t, course.Modules, len(tc.numbers))
			for i, m := range course.Modules {
				assert.Equal(t, tc.numbers[i], m.Number)
				assert.Equal(t, tc.titles[i], m.Title)

				found, ok := course.ModuleByNumber(m.Number)
				require.True(t, ok)
				assert.Equal(t, m.Title, found.Title)
			}
		})
	}
}

func TestCollectionsSkipNonArrayNestedValues(t *testing.T) {
	raw := `{"course_structure":{"course":{"title":"Nested","modules":"pending","flashcards":"later"}},
		"modules":[{"title":"Real"}],"flashcards":[{"id":"f1","front":"q"}]}`

	course := Normalize([]byte(raw))

	assert.Equal(t, "Nested", course.Title)
	require.Len(t, course.Modules, 1)
	assert.Equal(t, "Real", course.Modules[0].Title)
	assert.Equal(t, 1, course.ModulesCount)
	require.Len(t, course.Flashcards, 1)
	assert.Equal(t, "f1", course.Flashcards[0].ID)
}
