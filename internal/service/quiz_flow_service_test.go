package service

import (
	"fmt"
	"testing"
	"time"

	"hirehub_backend/internal/model"
	"hirehub_backend/internal/repository"
	"hirehub_backend/internal/util"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// 内存库必须固定在单个连接上，否则每个连接各有一份空库
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Recruiter{},
		&model.Candidate{},
		&model.Track{},
		&model.Vacancy{},
		&model.CandidatePool{},
		&model.InterviewFeedback{},
		&model.TaskType{},
		&model.RecruiterTask{},
		&model.QuizBlock{},
		&model.QuizQuestion{},
		&model.TrackQuizBlock{},
		&model.QuizSession{},
		&model.QuizAnswer{},
	))
	return db
}

func newQuizFlowService(db *gorm.DB, duration time.Duration) *QuizFlowService {
	return NewQuizFlowService(
		repository.NewQuizSessionRepository(db),
		repository.NewQuizAnswerRepository(db),
		repository.NewQuizQuestionRepository(db),
		repository.NewQuizBlockRepository(db),
		repository.NewTrackQuizBlockRepository(db),
		repository.NewTrackRepository(db),
		db,
		duration,
	)
}

// blockSpec 描述一个题目块:题库里有多少题、测评中抽多少题
type blockSpec struct {
	name      string
	questions int
	perQuiz   int
}

// seedQuizTrack 创建赛道与题目块，所有题目正确答案均为 A，方便断言对错
func seedQuizTrack(t *testing.T, db *gorm.DB, trackName string, specs ...blockSpec) model.Track {
	t.Helper()

	track := model.Track{Name: trackName, Description: "seeded", IsActive: true}
	require.NoError(t, db.Create(&track).Error)

	for _, spec := range specs {
		block := model.QuizBlock{Name: spec.name, IsActive: true}
		require.NoError(t, db.Create(&block).Error)

		for i := 0; i < spec.questions; i++ {
			q := model.QuizQuestion{
				BlockID:       block.ID,
				QuestionText:  fmt.Sprintf("%s question %d", spec.name, i+1),
				OptionA:       "Answer A",
				OptionB:       "Answer B",
				OptionC:       "Answer C",
				OptionD:       "Answer D",
				CorrectAnswer: "A",
				Difficulty:    model.DifficultyEasy,
				IsActive:      true,
			}
			require.NoError(t, db.Create(&q).Error)
		}

		require.NoError(t, db.Create(&model.TrackQuizBlock{
			TrackID:        track.ID,
			BlockID:        block.ID,
			QuestionsCount: spec.perQuiz,
		}).Error)
	}
	return track
}

func createCandidate(t *testing.T, db *gorm.DB, telegramID int64) model.Candidate {
	t.Helper()
	candidate := model.Candidate{
		TelegramID: telegramID,
		Username:   fmt.Sprintf("user%d", telegramID),
		Surname:    "Ivanov",
		Name:       "Ivan",
	}
	require.NoError(t, db.Create(&candidate).Error)
	return candidate
}

func TestStartQuizReturnsFirstQuestion(t *testing.T) {
	db := openTestDB(t)
	svc := newQuizFlowService(db, 15*time.Minute)
	track := seedQuizTrack(t, db, "Backend", blockSpec{name: "Algorithms", questions: 3, perQuiz: 2})
	candidate := createCandidate(t, db, 100)

	resp, err := svc.StartQuiz(QuizStartRequest{CandidateID: candidate.ID, TrackID: track.ID})
	require.NoError(t, err)
	require.NotEmpty(t, resp.SessionID)

	assert.Equal(t, "Algorithms", resp.Question.BlockName)
	assert.Equal(t, 1, resp.Question.QuestionNumber)
	assert.Len(t, resp.Question.Options, 4)
	assert.Equal(t, "A", resp.Question.Options[0].Key)

	var session model.QuizSession
	require.NoError(t, db.First(&session, "id = ?", resp.SessionID).Error)
	assert.Equal(t, model.SessionInProgress, session.Status)
	assert.Equal(t, candidate.ID, session.CandidateID)
	assert.True(t, session.ExpiresAt.After(session.StartedAt))
}

func TestStartQuizRejectsSecondActiveSession(t *testing.T) {
	db := openTestDB(t)
	svc := newQuizFlowService(db, 15*time.Minute)
	track := seedQuizTrack(t, db, "Backend", blockSpec{name: "Algorithms", questions: 2, perQuiz: 1})
	other := seedQuizTrack(t, db, "Frontend", blockSpec{name: "JavaScript", questions: 2, perQuiz: 1})
	candidate := createCandidate(t, db, 101)

	_, err := svc.StartQuiz(QuizStartRequest{CandidateID: candidate.ID, TrackID: track.ID})
	require.NoError(t, err)

	_, err = svc.StartQuiz(QuizStartRequest{CandidateID: candidate.ID, TrackID: track.ID})
	assert.ErrorIs(t, err, util.ErrActiveSessionExists)

	// 其他赛道不受影响
	_, err = svc.StartQuiz(QuizStartRequest{CandidateID: candidate.ID, TrackID: other.ID})
	assert.NoError(t, err)
}

func TestStartQuizValidationErrors(t *testing.T) {
	db := openTestDB(t)
	svc := newQuizFlowService(db, 15*time.Minute)
	candidate := createCandidate(t, db, 102)

	_, err := svc.StartQuiz(QuizStartRequest{CandidateID: candidate.ID, TrackID: 999})
	assert.ErrorIs(t, err, util.ErrTrackNotFound)

	bare := model.Track{Name: "Bare", IsActive: true}
	require.NoError(t, db.Create(&bare).Error)
	_, err = svc.StartQuiz(QuizStartRequest{CandidateID: candidate.ID, TrackID: bare.ID})
	assert.ErrorIs(t, err, util.ErrTrackNotConfigured)

	empty := seedQuizTrack(t, db, "Empty", blockSpec{name: "Void", questions: 0, perQuiz: 1})
	_, err = svc.StartQuiz(QuizStartRequest{CandidateID: candidate.ID, TrackID: empty.ID})
	assert.ErrorIs(t, err, util.ErrNoQuestionsAvailable)
}

func TestQuizDrawsBlocksInConfiguredOrder(t *testing.T) {
	db := openTestDB(t)
	svc := newQuizFlowService(db, 15*time.Minute)
	track := seedQuizTrack(t, db, "Backend",
		blockSpec{name: "Algorithms", questions: 3, perQuiz: 2},
		blockSpec{name: "SQL", questions: 2, perQuiz: 1},
	)
	candidate := createCandidate(t, db, 103)

	resp, err := svc.StartQuiz(QuizStartRequest{CandidateID: candidate.ID, TrackID: track.ID})
	require.NoError(t, err)
	assert.Equal(t, "Algorithms", resp.Question.BlockName)

	// 第二题仍来自 Algorithms,该块要求两题
	result, err := svc.SubmitAnswer(QuizAnswerRequest{
		SessionID: resp.SessionID, QuestionID: resp.Question.ID, Answer: "A",
	})
	require.NoError(t, err)
	require.Equal(t, "continue", result.Type)
	assert.Equal(t, "Algorithms", result.Question.BlockName)
	assert.Equal(t, 2, result.Question.QuestionNumber)

	// 第三题切换到 SQL
	result, err = svc.SubmitAnswer(QuizAnswerRequest{
		SessionID: resp.SessionID, QuestionID: result.Question.ID, Answer: "A",
	})
	require.NoError(t, err)
	require.Equal(t, "continue", result.Type)
	assert.Equal(t, "SQL", result.Question.BlockName)
	assert.Equal(t, 3, result.Question.QuestionNumber)

	// 所有块满足要求后结束
	result, err = svc.SubmitAnswer(QuizAnswerRequest{
		SessionID: resp.SessionID, QuestionID: result.Question.ID, Answer: "A",
	})
	require.NoError(t, err)
	require.Equal(t, "end", result.Type)
	require.NotNil(t, result.Results)
	assert.Equal(t, 3, result.Results.TotalQuestions)
	assert.Equal(t, 3, result.Results.CorrectAnswers)
	assert.InDelta(t, 100.0, result.Results.Accuracy, 0.01)
}

func TestQuizContinuesPastExhaustedBlock(t *testing.T) {
	db := openTestDB(t)
	svc := newQuizFlowService(db, 15*time.Minute)
	// Algorithms 要求两题但只有一题,抽空后应继续抽下一个块
	track := seedQuizTrack(t, db, "Backend",
		blockSpec{name: "Algorithms", questions: 1, perQuiz: 2},
		blockSpec{name: "SQL", questions: 1, perQuiz: 1},
	)
	candidate := createCandidate(t, db, 104)

	resp, err := svc.StartQuiz(QuizStartRequest{CandidateID: candidate.ID, TrackID: track.ID})
	require.NoError(t, err)
	assert.Equal(t, "Algorithms", resp.Question.BlockName)

	result, err := svc.SubmitAnswer(QuizAnswerRequest{
		SessionID: resp.SessionID, QuestionID: resp.Question.ID, Answer: "A",
	})
	require.NoError(t, err)
	require.Equal(t, "continue", result.Type)
	assert.Equal(t, "SQL", result.Question.BlockName)

	result, err = svc.SubmitAnswer(QuizAnswerRequest{
		SessionID: resp.SessionID, QuestionID: result.Question.ID, Answer: "A",
	})
	require.NoError(t, err)
	require.Equal(t, "end", result.Type)
	assert.Equal(t, 2, result.Results.TotalQuestions)
}

func TestSubmitAnswerTallies(t *testing.T) {
	db := openTestDB(t)
	svc := newQuizFlowService(db, 15*time.Minute)
	track := seedQuizTrack(t, db, "Backend", blockSpec{name: "Basics", questions: 2, perQuiz: 2})
	candidate := createCandidate(t, db, 105)

	resp, err := svc.StartQuiz(QuizStartRequest{CandidateID: candidate.ID, TrackID: track.ID})
	require.NoError(t, err)

	// 第一题答对
	result, err := svc.SubmitAnswer(QuizAnswerRequest{
		SessionID: resp.SessionID, QuestionID: resp.Question.ID, Answer: "A",
	})
	require.NoError(t, err)
	require.Equal(t, "continue", result.Type)

	var session model.QuizSession
	require.NoError(t, db.First(&session, "id = ?", resp.SessionID).Error)
	assert.Equal(t, 1, session.TotalQuestions)
	assert.Equal(t, 1, session.CorrectAnswers)
	assert.Equal(t, 0, session.WrongAnswers)

	// 第二题答错,测评结束
	result, err = svc.SubmitAnswer(QuizAnswerRequest{
		SessionID: resp.SessionID, QuestionID: result.Question.ID, Answer: "B",
	})
	require.NoError(t, err)
	require.Equal(t, "end", result.Type)

	results := result.Results
	assert.Equal(t, 2, results.TotalQuestions)
	assert.Equal(t, 1, results.CorrectAnswers)
	assert.Equal(t, 1, results.WrongAnswers)
	assert.InDelta(t, 50.0, results.Accuracy, 0.01)
	require.Len(t, results.BlocksPerformance, 1)
	assert.Equal(t, "Basics", results.BlocksPerformance[0].BlockName)
	assert.Equal(t, 1, results.BlocksPerformance[0].Correct)
	assert.Equal(t, 2, results.BlocksPerformance[0].Total)
	assert.InDelta(t, 50.0, results.BlocksPerformance[0].Accuracy, 0.01)

	require.NoError(t, db.First(&session, "id = ?", resp.SessionID).Error)
	assert.Equal(t, model.SessionCompleted, session.Status)
	require.NotNil(t, session.Score)
	assert.InDelta(t, 50.0, *session.Score, 0.01)
	assert.NotNil(t, session.EndedAt)
}

func TestSubmitAnswerRejectsDuplicate(t *testing.T) {
	db := openTestDB(t)
	svc := newQuizFlowService(db, 15*time.Minute)
	track := seedQuizTrack(t, db, "Backend", blockSpec{name: "Basics", questions: 3, perQuiz: 3})
	candidate := createCandidate(t, db, 106)

	resp, err := svc.StartQuiz(QuizStartRequest{CandidateID: candidate.ID, TrackID: track.ID})
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(QuizAnswerRequest{
		SessionID: resp.SessionID, QuestionID: resp.Question.ID, Answer: "A",
	})
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(QuizAnswerRequest{
		SessionID: resp.SessionID, QuestionID: resp.Question.ID, Answer: "B",
	})
	assert.ErrorIs(t, err, util.ErrDuplicateAnswer)

	// 重复提交不改变计数
	var session model.QuizSession
	require.NoError(t, db.First(&session, "id = ?", resp.SessionID).Error)
	assert.Equal(t, 1, session.TotalQuestions)
	assert.Equal(t, 1, session.CorrectAnswers)
	assert.Equal(t, 0, session.WrongAnswers)
}

func TestSubmitAnswerErrors(t *testing.T) {
	db := openTestDB(t)
	svc := newQuizFlowService(db, 15*time.Minute)
	track := seedQuizTrack(t, db, "Backend", blockSpec{name: "Basics", questions: 2, perQuiz: 1})
	candidate := createCandidate(t, db, 107)

	_, err := svc.SubmitAnswer(QuizAnswerRequest{
		SessionID: model.GenerateUUID(), QuestionID: model.GenerateUUID(), Answer: "A",
	})
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	resp, err := svc.StartQuiz(QuizStartRequest{CandidateID: candidate.ID, TrackID: track.ID})
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(QuizAnswerRequest{
		SessionID: resp.SessionID, QuestionID: model.GenerateUUID(), Answer: "A",
	})
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)

	// 结束会话后再提交
	result, err := svc.SubmitAnswer(QuizAnswerRequest{
		SessionID: resp.SessionID, QuestionID: resp.Question.ID, Answer: "A",
	})
	require.NoError(t, err)
	require.Equal(t, "end", result.Type)

	var question model.QuizQuestion
	require.NoError(t, db.Where("question_text = ?", "Basics question 2").First(&question).Error)
	_, err = svc.SubmitAnswer(QuizAnswerRequest{
		SessionID: resp.SessionID, QuestionID: question.ID, Answer: "A",
	})
	assert.ErrorIs(t, err, util.ErrSessionNotActive)
}

func TestExpiredSessionEndsOnSubmit(t *testing.T) {
	db := openTestDB(t)
	// 会话时长为零,提交时必然已超时
	svc := newQuizFlowService(db, 0)
	track := seedQuizTrack(t, db, "Backend", blockSpec{name: "Basics", questions: 3, perQuiz: 3})
	candidate := createCandidate(t, db, 108)

	resp, err := svc.StartQuiz(QuizStartRequest{CandidateID: candidate.ID, TrackID: track.ID})
	require.NoError(t, err)

	// 超时会话的最后一次作答仍被计入,然后立即收尾
	result, err := svc.SubmitAnswer(QuizAnswerRequest{
		SessionID: resp.SessionID, QuestionID: resp.Question.ID, Answer: "A",
	})
	require.NoError(t, err)
	require.Equal(t, "end", result.Type)
	assert.Equal(t, 1, result.Results.TotalQuestions)
	assert.Equal(t, 1, result.Results.CorrectAnswers)

	var session model.QuizSession
	require.NoError(t, db.First(&session, "id = ?", resp.SessionID).Error)
	assert.Equal(t, model.SessionCompleted, session.Status)
}

func TestGetResultsForFreshSession(t *testing.T) {
	db := openTestDB(t)
	svc := newQuizFlowService(db, 15*time.Minute)
	track := seedQuizTrack(t, db, "Backend", blockSpec{name: "Basics", questions: 2, perQuiz: 2})
	candidate := createCandidate(t, db, 109)

	_, err := svc.GetResults(model.GenerateUUID())
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	resp, err := svc.StartQuiz(QuizStartRequest{CandidateID: candidate.ID, TrackID: track.ID})
	require.NoError(t, err)

	// 未作答的进行中会话,所有统计为零
	results, err := svc.GetResults(resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, results.TotalQuestions)
	assert.InDelta(t, 0.0, results.Accuracy, 0.01)
	assert.Equal(t, 0, results.CompletionTimeSeconds)
	assert.Empty(t, results.BlocksPerformance)
}

func TestGetAttempts(t *testing.T) {
	db := openTestDB(t)
	svc := newQuizFlowService(db, 15*time.Minute)
	backend := seedQuizTrack(t, db, "Backend", blockSpec{name: "Basics", questions: 2, perQuiz: 1})
	frontend := seedQuizTrack(t, db, "Frontend", blockSpec{name: "JavaScript", questions: 2, perQuiz: 1})
	candidate := createCandidate(t, db, 110)

	first, err := svc.StartQuiz(QuizStartRequest{CandidateID: candidate.ID, TrackID: backend.ID})
	require.NoError(t, err)
	_, err = svc.StartQuiz(QuizStartRequest{CandidateID: candidate.ID, TrackID: frontend.ID})
	require.NoError(t, err)

	// 把第一场的开始时间拨到一小时前,保证倒序
	require.NoError(t, db.Model(&model.QuizSession{}).
		Where("id = ?", first.SessionID).
		Update("started_at", time.Now().Add(-time.Hour)).Error)

	attempts, err := svc.GetAttempts(candidate.ID, nil)
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, "Frontend", attempts[0].TrackName)
	assert.Equal(t, "Backend", attempts[1].TrackName)

	attempts, err = svc.GetAttempts(candidate.ID, &backend.ID)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, first.SessionID, attempts[0].SessionID)

	attempts, err = svc.GetAttempts(model.GenerateUUID(), nil)
	require.NoError(t, err)
	assert.Empty(t, attempts)
}

func TestSweepExpiredSessions(t *testing.T) {
	db := openTestDB(t)
	// 负时长让会话一创建就处于超时状态
	svc := newQuizFlowService(db, -time.Minute)
	track := seedQuizTrack(t, db, "Backend", blockSpec{name: "Basics", questions: 2, perQuiz: 2})
	candidate := createCandidate(t, db, 111)

	resp, err := svc.StartQuiz(QuizStartRequest{CandidateID: candidate.ID, TrackID: track.ID})
	require.NoError(t, err)

	swept, err := svc.SweepExpiredSessions(10)
	require.NoError(t, err)
	assert.Equal(t, 1, swept)

	var session model.QuizSession
	require.NoError(t, db.First(&session, "id = ?", resp.SessionID).Error)
	assert.Equal(t, model.SessionCompleted, session.Status)
	require.NotNil(t, session.Score)
	assert.InDelta(t, 0.0, *session.Score, 0.01)

	// 再次清扫没有目标
	swept, err = svc.SweepExpiredSessions(10)
	require.NoError(t, err)
	assert.Equal(t, 0, swept)
}
