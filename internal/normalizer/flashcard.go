package normalizer

import (
	"fmt"
	"strconv"
	"strings"

	"brainforge/internal/mock"
	"brainforge/internal/model"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

// NormalizeFlashcards 非数组时使用固定的示例卡组
func NormalizeFlashcards(v gjson.Result) []model.Flashcard {
	if !v.IsArray() {
		return mock.SampleFlashcards()
	}

	items := lo.Filter(v.Array(), func(item gjson.Result, _ int) bool {
		return item.IsObject()
	})
	ids := flashcardIDs(items)

	cards := make([]model.Flashcard, 0, len(items))
	for i, item := range items {
		cards = append(cards, normalizeFlashcard(ids[i], item))
	}
	return cards
}

// flashcardIDs 已学/难卡集合按 id 记录，id 在卡组内必须唯一。
// 显式 id 先占位，缺失或重复时取位置序号，被占用时改用 card-<序号>
func flashcardIDs(items []gjson.Result) []string {
	ids := make([]string, len(items))
	used := map[string]bool{}
	for i, item := range items {
		id := idString(fields{item}.get("id", "_id"))
		if id == "" || used[id] {
			continue
		}
		ids[i] = id
		used[id] = true
	}

	for i := range ids {
		if ids[i] != "" {
			continue
		}
		id := strconv.Itoa(i + 1)
		for n := i + 1; used[id]; n++ {
			id = fmt.Sprintf("card-%d", n)
		}
		ids[i] = id
		used[id] = true
	}
	return ids
}

func normalizeFlashcard(id string, item gjson.Result) model.Flashcard {
	f := fields{item}

	return model.Flashcard{
		ID:              id,
		Front:           f.str("", "front", "question", "term"),
		Back:            f.str("", "back", "answer", "definition"),
		Mnemonic:        f.str("", "mnemonic"),
		Category:        f.str("General", "category"),
		Importance:      importance(f.str("", "importance")),
		VisualCue:       f.str("", "visual_cue", "visualCue"),
		RelatedConcepts: lo.Uniq(f.list("related_concepts", "relatedConcepts")),
		Difficulty:      questionDifficulty(f.str("", "difficulty")),
	}
}

// importance 兼容 "high - core concept" 这类带说明的写法
func importance(s string) model.Importance {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, " -:("); i >= 0 {
		s = s[:i]
	}

	switch imp := model.Importance(s); imp {
	case model.ImportanceLow, model.ImportanceMedium, model.ImportanceHigh:
		return imp
	case "critical":
		return model.ImportanceHigh
	}
	return model.ImportanceMedium
}
