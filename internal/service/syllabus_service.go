package service

import (
	"context"
	"errors"
	"fmt"

	"study_keep/internal/cache"
	"study_keep/internal/config"
	"study_keep/internal/middleware"
	"study_keep/internal/model"
	"study_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SyllabusService interface {
	GetSyllabus(ctx context.Context, userID, courseID string) (*model.Syllabus, error)
	SaveSyllabus(ctx context.Context, userID, courseID string, req *model.SaveSyllabusRequest) (*model.Syllabus, error)
	UpdateSubtopic(ctx context.Context, userID, courseID, subtopicID string, patch *model.SubtopicPatch) error
}

// syllabusLoader はシラバス木をキャッシュ経由で読みます。復習キューの結合にも使う。
type syllabusLoader struct {
	db    *gorm.DB
	repo  repository.SyllabusRepository
	cache *cache.Cache
}

func syllabusKey(loc model.Location) cache.Key {
	return cache.Key{Kind: cache.KindSyllabus, UserID: loc.UserID, Scope: loc.Scope}
}

// load は戻り値を書き換えないこと。データがなければ空の木を返す。
func (l *syllabusLoader) load(ctx context.Context, loc model.Location) (*model.Syllabus, error) {
	return cache.Load(l.cache, syllabusKey(loc), func() (*model.Syllabus, error) {
		subjects, err := l.repo.Load(ctx, l.db, loc)
		if err != nil {
			return nil, err
		}
		if subjects == nil {
			subjects = []*model.SyllabusSubject{}
		}
		return &model.Syllabus{CourseID: loc.CourseID(), Subjects: subjects}, nil
	})
}

type syllabusService struct {
	syllabi  *syllabusLoader
	profiles *profileLoader
}

func NewSyllabusService(db *gorm.DB, syllabusRepo repository.SyllabusRepository, profileRepo repository.ProfileRepository, c *cache.Cache, cfg *config.Config) SyllabusService {
	return &syllabusService{
		syllabi:  &syllabusLoader{db: db, repo: syllabusRepo, cache: c},
		profiles: &profileLoader{db: db, repo: profileRepo, cache: c, cfg: cfg},
	}
}

func (s *syllabusService) GetSyllabus(ctx context.Context, userID, courseID string) (*model.Syllabus, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	loc, err := s.profiles.resolve(ctx, userID, courseID)
	if err != nil {
		logger.Error("Failed to resolve storage location", "error", err)
		return nil, model.NewInternalError("保存先の解決に失敗しました。", err)
	}
	syllabus, err := s.syllabi.load(ctx, loc)
	if err != nil {
		logger.Error("Failed to load syllabus", "scope", loc.Scope, "error", err)
		return nil, model.NewInternalError("シラバスの取得に失敗しました。", err)
	}
	return syllabus, nil
}

// SaveSyllabus はシラバスを丸ごと置き換えます。書き込みにはコースが必要 (legacy には書かない)。
func (s *syllabusService) SaveSyllabus(ctx context.Context, userID, courseID string, req *model.SaveSyllabusRequest) (*model.Syllabus, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	loc, err := s.profiles.resolve(ctx, userID, courseID)
	if err != nil {
		logger.Error("Failed to resolve storage location", "error", err)
		return nil, model.NewInternalError("保存先の解決に失敗しました。", err)
	}
	if loc.IsLegacy() {
		logger.Warn("Syllabus save without a course")
		return nil, model.NewAppError("NO_COURSE", "no course selected for syllabus save", "course_id", model.ErrNoCourse)
	}

	subjects, err := buildSyllabusTree(loc, req)
	if err != nil {
		return nil, err
	}

	err = s.syllabi.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.syllabi.repo.ReplaceAll(ctx, tx, loc, subjects); err != nil {
			logger.Error("Error replacing syllabus", "scope", loc.Scope, "error", err)
			return model.NewInternalError("シラバスの保存に失敗しました。", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.syllabi.cache.Invalidate(syllabusKey(loc))

	logger.Info("Syllabus saved", "scope", loc.Scope, "subjects", len(subjects))
	return &model.Syllabus{CourseID: loc.CourseID(), Subjects: subjects}, nil
}

func (s *syllabusService) UpdateSubtopic(ctx context.Context, userID, courseID, subtopicID string, patch *model.SubtopicPatch) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "subtopic_id", subtopicID)

	updates := patch.Updates()
	if len(updates) == 0 {
		return model.NewInvalidInputError("更新する項目がありません。", "")
	}

	loc, err := s.profiles.resolve(ctx, userID, courseID)
	if err != nil {
		logger.Error("Failed to resolve storage location", "error", err)
		return model.NewInternalError("保存先の解決に失敗しました。", err)
	}

	if err := s.syllabi.repo.UpdateSubtopic(ctx, s.syllabi.db, loc, subtopicID, updates); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Subtopic not found for update", "scope", loc.Scope)
			return model.NewNotFoundError("サブトピックが見つかりません。")
		}
		logger.Error("Error updating subtopic", "scope", loc.Scope, "error", err)
		return model.NewInternalError("サブトピックの更新に失敗しました。", err)
	}
	s.syllabi.cache.Invalidate(syllabusKey(loc))

	logger.Info("Subtopic updated", "scope", loc.Scope)
	return nil
}

// buildSyllabusTree はリクエストから保存用の木を作ります。IDがなければ採番、並び順は配列の順。
func buildSyllabusTree(loc model.Location, req *model.SaveSyllabusRequest) ([]*model.SyllabusSubject, error) {
	seen := make(map[string]struct{})
	claim := func(kind, id string) (string, error) {
		if id == "" {
			id = uuid.NewString()
		}
		key := kind + "/" + id
		if _, dup := seen[key]; dup {
			return "", model.NewInvalidInputError(fmt.Sprintf("IDが重複しています: %s", id), kind+"_id")
		}
		seen[key] = struct{}{}
		return id, nil
	}

	subjects := make([]*model.SyllabusSubject, 0, len(req.Subjects))
	for i, in := range req.Subjects {
		subjectID, err := claim("subject", in.SubjectID)
		if err != nil {
			return nil, err
		}
		subject := &model.SyllabusSubject{
			UserID: loc.UserID, Scope: loc.Scope, SubjectID: subjectID,
			Name: in.Name, Tier: in.Tier, Position: i,
			Topics: make([]*model.SyllabusTopic, 0, len(in.Topics)),
		}
		for j, tin := range in.Topics {
			topicID, err := claim("topic", tin.TopicID)
			if err != nil {
				return nil, err
			}
			topic := &model.SyllabusTopic{
				UserID: loc.UserID, Scope: loc.Scope, TopicID: topicID, SubjectID: subjectID,
				Name: tin.Name, EstimatedHours: tin.EstimatedHours, Position: j,
				Subtopics: make([]*model.SyllabusSubtopic, 0, len(tin.Subtopics)),
			}
			for k, stin := range tin.Subtopics {
				subtopicID, err := claim("subtopic", stin.SubtopicID)
				if err != nil {
					return nil, err
				}
				topic.Subtopics = append(topic.Subtopics, &model.SyllabusSubtopic{
					UserID: loc.UserID, Scope: loc.Scope, SubtopicID: subtopicID, TopicID: topicID,
					Name: stin.Name, Position: k, Status: model.StatusNotStarted,
				})
			}
			subject.Topics = append(subject.Topics, topic)
		}
		subjects = append(subjects, subject)
	}
	return subjects, nil
}
