package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"brainforge/internal/client"
	"brainforge/internal/model"
	"brainforge/internal/normalizer"
	"brainforge/internal/util"
	"brainforge/pkg/logger"

	"github.com/samber/lo"
	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// 生成参数的取值范围
const (
	MinModules            = 1
	MaxModules            = 12
	MinFlashcards         = 1
	MaxFlashcards         = 50
	MinQuestionsPerModule = 1
	MaxQuestionsPerModule = 10
)

type UploadService struct {
	api     *client.API
	store   *CourseStore
	storage *StorageService
	now     func() time.Time
}

func NewUploadService(api *client.API, store *CourseStore, storage *StorageService) *UploadService {
	return &UploadService{
		api:     api,
		store:   store,
		storage: storage,
		now:     time.Now,
	}
}

// ApplyDefaults 零值字段用默认设置补齐，布尔开关保持调用方的值
func ApplyDefaults(s model.CourseSettings) model.CourseSettings {
	d := model.DefaultCourseSettings()
	if s.Difficulty == "" {
		s.Difficulty = d.Difficulty
	}
	if s.LearningPace == "" {
		s.LearningPace = d.LearningPace
	}
	if s.DepthLevel == "" {
		s.DepthLevel = d.DepthLevel
	}
	if s.Modules == 0 {
		s.Modules = d.Modules
	}
	if s.Flashcards == 0 {
		s.Flashcards = d.Flashcards
	}
	if s.QuestionsPerModule == 0 {
		s.QuestionsPerModule = d.QuestionsPerModule
	}
	return s
}

func ValidateSettings(s model.CourseSettings) error {
	if !model.Difficulty(s.Difficulty).Valid() {
		return fmt.Errorf("%w: unknown difficulty %q", util.ErrInvalidSettings, s.Difficulty)
	}
	if !lo.Contains(model.LearningPaces, s.LearningPace) {
		return fmt.Errorf("%w: unknown learning pace %q", util.ErrInvalidSettings, s.LearningPace)
	}
	if !lo.Contains(model.DepthLevels, s.DepthLevel) {
		return fmt.Errorf("%w: unknown depth level %q", util.ErrInvalidSettings, s.DepthLevel)
	}
	if s.Modules < MinModules || s.Modules > MaxModules {
		return fmt.Errorf("%w: modules must be between %d and %d", util.ErrInvalidSettings, MinModules, MaxModules)
	}
	if s.Flashcards < MinFlashcards || s.Flashcards > MaxFlashcards {
		return fmt.Errorf("%w: flashcards must be between %d and %d", util.ErrInvalidSettings, MinFlashcards, MaxFlashcards)
	}
	if s.QuestionsPerModule < MinQuestionsPerModule || s.QuestionsPerModule > MaxQuestionsPerModule {
		return fmt.Errorf("%w: questions_per_module must be between %d and %d", util.ErrInvalidSettings, MinQuestionsPerModule, MaxQuestionsPerModule)
	}
	return nil
}

// Upload 归档文档后提交给后端生成课程。这是唯一把失败直接返回给调用方的流程，
// 失败时 Result.Success 为 false 且 UploadResult 为 nil
func (s *UploadService) Upload(ctx context.Context, filename string, r io.Reader, settings model.CourseSettings) (*model.UploadResult, client.Result) {
	settings = ApplyDefaults(settings)
	if err := ValidateSettings(settings); err != nil {
		return nil, client.Result{Error: err.Error(), Kind: client.KindClient}
	}
	if filename == "" {
		return nil, client.Result{Error: "No file selected", Kind: client.KindClient}
	}

	data, err := io.ReadAll(io.LimitReader(r, util.MaxUploadSize+1))
	if err != nil {
		return nil, client.Result{Error: fmt.Sprintf("failed to read upload: %v", err), Kind: client.KindClient}
	}
	if len(data) > util.MaxUploadSize {
		return nil, client.Result{Error: fmt.Sprintf("%v: file exceeds %d bytes", util.ErrInvalidUpload, util.MaxUploadSize), Kind: client.KindClient}
	}
	mimeType, err := util.ValidateMimeType(bytes.NewReader(data), util.AllowedUploadTypes)
	if err != nil {
		return nil, client.Result{Error: err.Error(), Kind: client.KindClient}
	}

	key, archived := s.archive(ctx, filename, data, mimeType)

	res := s.api.Upload(ctx, filename, bytes.NewReader(data), settings)
	if !res.Success {
		logger.Log.Warn("Upload failed",
			zap.String("filename", filename),
			zap.String("kind", string(res.Kind)),
			zap.String("error", res.Error))
		s.discard(ctx, key)
		return nil, res
	}

	result := s.parseUpload(res.Data)
	result.ArchivedURL = archived
	if result.Filename == "" {
		result.Filename = filename
	}
	if result.Course != nil {
		s.store.Upsert(*result.Course)
	}

	logger.Log.Info("Course generated from upload",
		zap.String("filename", result.Filename),
		zap.String("course_id", result.CourseID),
		zap.String("content_id", result.ContentID),
		zap.Int("content_length", result.ContentLength))
	return result, res
}

// archive 归档失败不影响上传，返回空 key
func (s *UploadService) archive(ctx context.Context, filename string, data []byte, mimeType string) (string, string) {
	if s.storage == nil {
		return "", ""
	}
	key := ArchiveKey(filename, s.now())
	url, err := s.storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), mimeType)
	if err != nil {
		logger.Log.Warn("Failed to archive upload", zap.String("key", key), zap.Error(err))
		return "", ""
	}
	return key, url
}

// discard 后端没有接收的文档不保留归档
func (s *UploadService) discard(ctx context.Context, key string) {
	if s.storage == nil || key == "" {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		logger.Log.Warn("Failed to remove archived upload", zap.String("key", key), zap.Error(err))
	}
}

func (s *UploadService) parseUpload(raw []byte) *model.UploadResult {
	root := gjson.ParseBytes(raw)
	result := &model.UploadResult{
		CourseID:      root.Get("course_id").String(),
		ContentID:     root.Get("content_id").String(),
		Filename:      root.Get("filename").String(),
		ContentLength: cast.ToInt(root.Get("content_length").Value()),
	}

	data := root.Get("course_data")
	if !data.IsObject() {
		return result
	}
	if inner := data.Get("course"); inner.IsObject() {
		data = inner
	}
	course := normalizer.NormalizeValue(data)
	if result.CourseID != "" {
		course.ID = result.CourseID
	}
	if course.ContentID == "" {
		course.ContentID = result.ContentID
	}
	result.Course = &course
	return result
}

// GenerateCourse 对已上传内容重新生成课程
func (s *UploadService) GenerateCourse(ctx context.Context, contentID string, settings model.CourseSettings) (*model.UploadResult, client.Result) {
	if contentID == "" {
		return nil, client.Result{Error: "Content ID required", Kind: client.KindClient}
	}
	settings = ApplyDefaults(settings)
	if err := ValidateSettings(settings); err != nil {
		return nil, client.Result{Error: err.Error(), Kind: client.KindClient}
	}

	res := s.api.GenerateCourse(ctx, model.GenerateCourseRequest{ContentID: contentID, Settings: settings})
	if !res.Success {
		return nil, res
	}
	result := s.parseUpload(res.Data)
	if result.Course != nil {
		s.store.Upsert(*result.Course)
	}
	return result, res
}

// SettingsOptions 后端不可用或返回无法解析时使用本地选项
func (s *UploadService) SettingsOptions(ctx context.Context) (model.SettingsOptions, bool) {
	res := s.api.SettingsOptions(ctx)
	if res.Success {
		var opts model.SettingsOptions
		if err := json.Unmarshal(res.Data, &opts); err == nil && len(opts.DifficultyLevels) > 0 {
			return opts, false
		}
	}
	logger.Log.Info("Using local course settings options", zap.String("error", res.Error))
	return model.DefaultSettingsOptions(), true
}
