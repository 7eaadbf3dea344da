package service

import (
	"context"
	"math/rand"
	"time"

	"brainforge/internal/flashcard"
	"brainforge/internal/util"
	"brainforge/pkg/logger"

	"go.uber.org/zap"
)

// ReviewView 复习会话快照
type ReviewView struct {
	ID     string `json:"id"`
	Notice string `json:"notice,omitempty"`
	flashcard.Snapshot
}

type reviewEntry struct {
	notice string
	review *flashcard.Review
}

type FlashcardService struct {
	store   *CourseStore
	study   flashcard.StudyStore
	reviews *registry[*reviewEntry]

	// newRand 测试中可替换为固定种子
	newRand func() *rand.Rand
}

func NewFlashcardService(store *CourseStore, study flashcard.StudyStore, ttl time.Duration) *FlashcardService {
	return &FlashcardService{
		store:   store,
		study:   study,
		reviews: newRegistry[*reviewEntry](ttl),
		newRand: func() *rand.Rand { return rand.New(rand.NewSource(time.Now().UnixNano())) },
	}
}

// Start 卡片来自课程详情，课程不可用时使用演示课程的卡片
func (s *FlashcardService) Start(ctx context.Context, courseID string) (ReviewView, error) {
	lookup := s.store.GetByID(ctx, courseID)
	review := flashcard.NewReview(courseID, lookup.Course.Flashcards, s.study, s.newRand())

	entry := &reviewEntry{notice: lookup.Notice, review: review}
	id := s.reviews.add(entry)

	logger.Log.Info("Flashcard review started",
		zap.String("review_id", id),
		zap.String("course_id", courseID),
		zap.Int("cards", len(lookup.Course.Flashcards)))

	return s.view(ctx, id, entry)
}

func (s *FlashcardService) view(ctx context.Context, id string, e *reviewEntry) (ReviewView, error) {
	snap, err := e.review.Snapshot(ctx)
	if err != nil {
		return ReviewView{}, err
	}
	return ReviewView{ID: id, Notice: e.notice, Snapshot: snap}, nil
}

// apply 对会话执行一个操作后返回新的快照
func (s *FlashcardService) apply(ctx context.Context, id string, op func(*flashcard.Review) error) (ReviewView, error) {
	e, ok := s.reviews.get(id)
	if !ok {
		return ReviewView{}, util.ErrReviewNotFound
	}
	if op != nil {
		if err := op(e.review); err != nil {
			return ReviewView{}, err
		}
	}
	return s.view(ctx, id, e)
}

func (s *FlashcardService) Get(ctx context.Context, id string) (ReviewView, error) {
	return s.apply(ctx, id, nil)
}

func (s *FlashcardService) Next(ctx context.Context, id string) (ReviewView, error) {
	return s.apply(ctx, id, func(r *flashcard.Review) error { return r.Next(ctx) })
}

func (s *FlashcardService) Prev(ctx context.Context, id string) (ReviewView, error) {
	return s.apply(ctx, id, func(r *flashcard.Review) error { return r.Prev(ctx) })
}

func (s *FlashcardService) Flip(ctx context.Context, id string) (ReviewView, error) {
	return s.apply(ctx, id, func(r *flashcard.Review) error {
		r.Flip()
		return nil
	})
}

func (s *FlashcardService) Shuffle(ctx context.Context, id string) (ReviewView, error) {
	return s.apply(ctx, id, func(r *flashcard.Review) error { return r.Shuffle(ctx) })
}

func (s *FlashcardService) SetMode(ctx context.Context, id string, mode flashcard.Mode) (ReviewView, error) {
	return s.apply(ctx, id, func(r *flashcard.Review) error { return r.SetMode(ctx, mode) })
}

func (s *FlashcardService) MarkStudied(ctx context.Context, id string) (ReviewView, error) {
	return s.apply(ctx, id, func(r *flashcard.Review) error { return r.MarkStudied(ctx) })
}

func (s *FlashcardService) MarkDifficult(ctx context.Context, id string) (ReviewView, error) {
	return s.apply(ctx, id, func(r *flashcard.Review) error { return r.MarkDifficult(ctx) })
}

func (s *FlashcardService) ResetProgress(ctx context.Context, id string) (ReviewView, error) {
	return s.apply(ctx, id, func(r *flashcard.Review) error { return r.ResetProgress(ctx) })
}

func (s *FlashcardService) SweepIdle() int {
	n := len(s.reviews.sweep())
	if n > 0 {
		logger.Log.Info("Swept idle flashcard reviews", zap.Int("count", n))
	}
	return n
}

func (s *FlashcardService) ActiveReviews() int {
	return s.reviews.len()
}
