// Package flashcard 卡片复习状态：当前位置、翻面、筛选模式，以及持久化的已学/难点标记。
package flashcard

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"brainforge/internal/model"

	"github.com/samber/lo"
)

type Mode string

const (
	ModeAll       Mode = "all"
	ModeUnstudied Mode = "unstudied"
	ModeDifficult Mode = "difficult"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeAll, ModeUnstudied, ModeDifficult:
		return true
	}
	return false
}

var (
	ErrInvalidMode = errors.New("mode must be one of all, unstudied, difficult")
	ErrNoCard      = errors.New("no flashcard in the current view")
)

// StudyStore 每门课程的已学/难点集合
type StudyStore interface {
	Studied(ctx context.Context, courseID string) ([]string, error)
	Difficult(ctx context.Context, courseID string) ([]string, error)
	Add(ctx context.Context, kind model.StateKind, courseID, cardID string) error
	Reset(ctx context.Context, courseID string) error
}

type Review struct {
	mu sync.Mutex

	courseID string
	cards    []model.Flashcard
	order    []int
	index    int
	flipped  bool
	mode     Mode

	store StudyStore
	rng   *rand.Rand
}

// NewReview rng 为 nil 时使用基于时间的随机源
func NewReview(courseID string, cards []model.Flashcard, store StudyStore, rng *rand.Rand) *Review {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	deck := make([]model.Flashcard, len(cards))
	copy(deck, cards)

	order := make([]int, len(deck))
	for i := range order {
		order[i] = i
	}

	return &Review{
		courseID: courseID,
		cards:    deck,
		order:    order,
		mode:     ModeAll,
		store:    store,
		rng:      rng,
	}
}

func (r *Review) CourseID() string {
	return r.courseID
}

// filteredPositions 当前模式下可见卡片在 order 中的位置，每次从持久化集合重新计算
func (r *Review) filteredPositions(ctx context.Context) ([]int, error) {
	var set map[string]struct{}
	switch r.mode {
	case ModeUnstudied:
		ids, err := r.store.Studied(ctx, r.courseID)
		if err != nil {
			return nil, fmt.Errorf("failed to load studied cards: %w", err)
		}
		set = toSet(ids)
	case ModeDifficult:
		ids, err := r.store.Difficult(ctx, r.courseID)
		if err != nil {
			return nil, fmt.Errorf("failed to load difficult cards: %w", err)
		}
		set = toSet(ids)
	}

	positions := make([]int, 0, len(r.order))
	for pos, idx := range r.order {
		id := r.cards[idx].ID
		switch r.mode {
		case ModeUnstudied:
			if _, ok := set[id]; ok {
				continue
			}
		case ModeDifficult:
			if _, ok := set[id]; !ok {
				continue
			}
		}
		positions = append(positions, pos)
	}

	// 筛选结果变小时指针归零
	if r.index >= len(positions) || r.index < 0 {
		r.index = 0
	}
	return positions, nil
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (r *Review) cardsAt(positions []int) []model.Flashcard {
	return lo.Map(positions, func(pos int, _ int) model.Flashcard {
		return r.cards[r.order[pos]]
	})
}

func (r *Review) Filtered(ctx context.Context) ([]model.Flashcard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	positions, err := r.filteredPositions(ctx)
	if err != nil {
		return nil, err
	}
	return r.cardsAt(positions), nil
}

func (r *Review) Current(ctx context.Context) (model.Flashcard, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentLocked(ctx)
}

func (r *Review) currentLocked(ctx context.Context) (model.Flashcard, bool, error) {
	positions, err := r.filteredPositions(ctx)
	if err != nil {
		return model.Flashcard{}, false, err
	}
	if len(positions) == 0 {
		return model.Flashcard{}, false, nil
	}
	return r.cards[r.order[positions[r.index]]], true, nil
}

// Next 循环前进，模为筛选后的卡片数
func (r *Review) Next(ctx context.Context) error {
	return r.step(ctx, 1)
}

func (r *Review) Prev(ctx context.Context) error {
	return r.step(ctx, -1)
}

func (r *Review) step(ctx context.Context, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	positions, err := r.filteredPositions(ctx)
	if err != nil {
		return err
	}
	r.flipped = false
	n := len(positions)
	if n == 0 {
		r.index = 0
		return nil
	}
	r.index = ((r.index+delta)%n + n) % n
	return nil
}

// Flip 返回翻面后的状态，true 为背面
func (r *Review) Flip() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flipped = !r.flipped
	return r.flipped
}

// Shuffle 只打乱当前筛选结果内的顺序，其余卡片位置不变
func (r *Review) Shuffle(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	positions, err := r.filteredPositions(ctx)
	if err != nil {
		return err
	}

	values := lo.Map(positions, func(pos int, _ int) int { return r.order[pos] })
	r.rng.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
	for i, pos := range positions {
		r.order[pos] = values[i]
	}

	r.index = 0
	r.flipped = false
	return nil
}

// SetMode 指针超出新筛选结果时归零
func (r *Review) SetMode(ctx context.Context, mode Mode) error {
	if !mode.Valid() {
		return ErrInvalidMode
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mode = mode
	r.flipped = false
	_, err := r.filteredPositions(ctx)
	return err
}

func (r *Review) MarkStudied(ctx context.Context) error {
	return r.mark(ctx, model.KindStudied)
}

func (r *Review) MarkDifficult(ctx context.Context) error {
	return r.mark(ctx, model.KindDifficult)
}

func (r *Review) mark(ctx context.Context, kind model.StateKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	card, ok, err := r.currentLocked(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoCard
	}
	if err := r.store.Add(ctx, kind, r.courseID, card.ID); err != nil {
		return fmt.Errorf("failed to mark card %s as %s: %w", card.ID, kind, err)
	}
	// 未学模式下刚标记的卡片会从视图中消失
	_, err = r.filteredPositions(ctx)
	return err
}

// ResetProgress 清空该课程的两个持久化集合
func (r *Review) ResetProgress(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.store.Reset(ctx, r.courseID); err != nil {
		return fmt.Errorf("failed to reset study progress: %w", err)
	}
	_, err := r.filteredPositions(ctx)
	return err
}

func (r *Review) StudiedCount(ctx context.Context) (int, error) {
	ids, err := r.store.Studied(ctx, r.courseID)
	return len(ids), err
}

func (r *Review) DifficultCount(ctx context.Context) (int, error) {
	ids, err := r.store.Difficult(ctx, r.courseID)
	return len(ids), err
}

type Snapshot struct {
	CourseID       string           `json:"courseId"`
	Mode           Mode             `json:"mode"`
	Index          int              `json:"index"`
	FilteredCount  int              `json:"filteredCount"`
	TotalCount     int              `json:"totalCount"`
	Flipped        bool             `json:"flipped"`
	Card           *model.Flashcard `json:"card,omitempty"`
	Studied        bool             `json:"studied"`
	Difficult      bool             `json:"difficult"`
	StudiedCount   int              `json:"studiedCount"`
	DifficultCount int              `json:"difficultCount"`
}

func (r *Review) Snapshot(ctx context.Context) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	positions, err := r.filteredPositions(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	studied, err := r.store.Studied(ctx, r.courseID)
	if err != nil {
		return Snapshot{}, err
	}
	difficult, err := r.store.Difficult(ctx, r.courseID)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		CourseID:       r.courseID,
		Mode:           r.mode,
		Index:          r.index,
		FilteredCount:  len(positions),
		TotalCount:     len(r.cards),
		Flipped:        r.flipped,
		StudiedCount:   len(studied),
		DifficultCount: len(difficult),
	}
	if len(positions) > 0 {
		card := r.cards[r.order[positions[r.index]]]
		snap.Card = &card
		snap.Studied = lo.Contains(studied, card.ID)
		snap.Difficult = lo.Contains(difficult, card.ID)
	}
	return snap, nil
}
