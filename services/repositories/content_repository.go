package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cadetforge/arena_api/model"
)

type ContentRepository struct {
	BaseRepository
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func newID() string {
	id, _ := uuid.NewV7()
	return id.String()
}

// ==================== QUESTIONS ====================

func (ds *ContentRepository) CreateQuestion(ctx context.Context, question *model.Question) error {
	if question.ID == "" {
		question.ID = newID()
	}
	return ds.conn(ctx).Create(question).Error
}

func (ds *ContentRepository) GetQuestion(ctx context.Context, id string) (*model.Question, error) {
	var question model.Question
	if err := ds.conn(ctx).Where("id = ?", id).First(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (ds *ContentRepository) GetQuestionsByIDs(ctx context.Context, ids []string) (map[string]model.Question, error) {
	byID := make(map[string]model.Question, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	var questions []model.Question
	if err := ds.conn(ctx).Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}
	for _, q := range questions {
		byID[q.ID] = q
	}
	return byID, nil
}

// ListQuestions returns up to limit questions of a category in random order.
// An empty category matches every question.
func (ds *ContentRepository) ListQuestions(ctx context.Context, category string, limit int) ([]model.Question, error) {
	query := ds.conn(ctx).Model(&model.Question{})
	if category != "" {
		query = query.Where("type = ?", category)
	}

	var questions []model.Question
	if err := query.Order("RANDOM()").Limit(limit).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (ds *ContentRepository) CountQuestions(ctx context.Context) (int64, error) {
	var count int64
	err := ds.conn(ctx).Model(&model.Question{}).Count(&count).Error
	return count, err
}

// ==================== FLASHCARDS ====================

func (ds *ContentRepository) CreateFlashcard(ctx context.Context, card *model.Flashcard) error {
	if card.ID == "" {
		card.ID = newID()
	}
	return ds.conn(ctx).Create(card).Error
}

func (ds *ContentRepository) ListFlashcards(ctx context.Context, topic string) ([]model.Flashcard, error) {
	query := ds.conn(ctx).Model(&model.Flashcard{})
	if topic != "" {
		query = query.Where("topic = ?", topic)
	}

	var cards []model.Flashcard
	if err := query.Order("created_at ASC").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// ==================== MOCK QUIZZES ====================

func (ds *ContentRepository) CreateQuiz(ctx context.Context, quiz *model.MockQuiz) error {
	if quiz.ID == "" {
		quiz.ID = newID()
	}
	return ds.conn(ctx).Create(quiz).Error
}

func (ds *ContentRepository) GetQuiz(ctx context.Context, id string) (*model.MockQuiz, error) {
	var quiz model.MockQuiz
	if err := ds.conn(ctx).Where("id = ?", id).First(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (ds *ContentRepository) ListQuizzes(ctx context.Context, quizType, company string) ([]model.MockQuiz, error) {
	query := ds.conn(ctx).Model(&model.MockQuiz{})
	if quizType != "" {
		query = query.Where("type = ?", quizType)
	}
	if company != "" {
		query = query.Where("LOWER(company) = LOWER(?)", company)
	}

	var quizzes []model.MockQuiz
	if err := query.Order("created_at DESC").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

// ==================== SUBMISSIONS ====================

func (ds *ContentRepository) CreateQuestionSubmission(ctx context.Context, sub *model.QuestionSubmission) error {
	if sub.ID == "" {
		sub.ID = newID()
	}
	sub.Status = model.SubmissionStatusPending
	return ds.conn(ctx).Create(sub).Error
}

func (ds *ContentRepository) ListQuestionSubmissions(ctx context.Context) ([]model.QuestionSubmission, error) {
	var subs []model.QuestionSubmission
	if err := ds.conn(ctx).Where("status = ?", model.SubmissionStatusPending).Order("created_at ASC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (ds *ContentRepository) GetQuestionSubmission(ctx context.Context, id string) (*model.QuestionSubmission, error) {
	var sub model.QuestionSubmission
	if err := ds.conn(ctx).Where("id = ?", id).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (ds *ContentRepository) DeleteQuestionSubmission(ctx context.Context, id string) error {
	res := ds.conn(ctx).Where("id = ?", id).Delete(&model.QuestionSubmission{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ApproveQuestionSubmission publishes the question and drops the submission
// in one transaction.
func (ds *ContentRepository) ApproveQuestionSubmission(ctx context.Context, submissionID string, question *model.Question) error {
	if question.ID == "" {
		question.ID = newID()
	}
	question.CreatedAt = time.Now()

	return ds.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(question).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", submissionID).Delete(&model.QuestionSubmission{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (ds *ContentRepository) CreateQuizSubmission(ctx context.Context, sub *model.QuizSubmission) error {
	if sub.ID == "" {
		sub.ID = newID()
	}
	sub.Status = model.SubmissionStatusPending
	return ds.conn(ctx).Create(sub).Error
}

func (ds *ContentRepository) ListQuizSubmissions(ctx context.Context) ([]model.QuizSubmission, error) {
	var subs []model.QuizSubmission
	if err := ds.conn(ctx).Where("status = ?", model.SubmissionStatusPending).Order("created_at ASC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (ds *ContentRepository) GetQuizSubmission(ctx context.Context, id string) (*model.QuizSubmission, error) {
	var sub model.QuizSubmission
	if err := ds.conn(ctx).Where("id = ?", id).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (ds *ContentRepository) DeleteQuizSubmission(ctx context.Context, id string) error {
	res := ds.conn(ctx).Where("id = ?", id).Delete(&model.QuizSubmission{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (ds *ContentRepository) ApproveQuizSubmission(ctx context.Context, submissionID string, quiz *model.MockQuiz) error {
	if quiz.ID == "" {
		quiz.ID = newID()
	}
	quiz.CreatedAt = time.Now()

	return ds.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", submissionID).Delete(&model.QuizSubmission{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
