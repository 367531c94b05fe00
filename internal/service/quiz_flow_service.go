package service

import (
	"errors"
	"math"
	"math/rand"
	"strconv"
	"time"

	"hirehub_backend/internal/model"
	"hirehub_backend/internal/repository"
	"hirehub_backend/internal/util"
	"hirehub_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type QuizFlowService struct {
	SessionRepo     *repository.QuizSessionRepository
	AnswerRepo      *repository.QuizAnswerRepository
	QuestionRepo    *repository.QuizQuestionRepository
	BlockRepo       *repository.QuizBlockRepository
	TrackBlockRepo  *repository.TrackQuizBlockRepository
	TrackRepo       *repository.TrackRepository
	DB              *gorm.DB
	SessionDuration time.Duration
}

func NewQuizFlowService(
	sessionRepo *repository.QuizSessionRepository,
	answerRepo *repository.QuizAnswerRepository,
	questionRepo *repository.QuizQuestionRepository,
	blockRepo *repository.QuizBlockRepository,
	trackBlockRepo *repository.TrackQuizBlockRepository,
	trackRepo *repository.TrackRepository,
	db *gorm.DB,
	sessionDuration time.Duration,
) *QuizFlowService {
	return &QuizFlowService{
		SessionRepo:     sessionRepo,
		AnswerRepo:      answerRepo,
		QuestionRepo:    questionRepo,
		BlockRepo:       blockRepo,
		TrackBlockRepo:  trackBlockRepo,
		TrackRepo:       trackRepo,
		DB:              db,
		SessionDuration: sessionDuration,
	}
}

type QuizStartRequest struct {
	CandidateID string `json:"candidateId" binding:"required"`
	TrackID     uint   `json:"trackId" binding:"required"`
}

type QuizAnswerRequest struct {
	SessionID  string `json:"sessionId" binding:"required"`
	QuestionID string `json:"questionId" binding:"required"`
	Answer     string `json:"answer" binding:"required,oneof=A B C D"`
}

type QuestionOption struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// QuestionPayload 下发给候选人的题目，不包含正确答案
type QuestionPayload struct {
	ID             string           `json:"id"`
	Text           string           `json:"text"`
	BlockName      string           `json:"blockName"`
	Options        []QuestionOption `json:"options"`
	QuestionNumber int              `json:"questionNumber"`
}

type QuizStartResponse struct {
	SessionID string          `json:"sessionId"`
	Question  QuestionPayload `json:"question"`
}

// QuizAnswerResult type 为 continue 时携带下一题，为 end 时携带最终结果
type QuizAnswerResult struct {
	Type     string           `json:"type"`
	Question *QuestionPayload `json:"question,omitempty"`
	Results  *QuizResults     `json:"results,omitempty"`
}

type BlockPerformance struct {
	BlockName string  `json:"blockName"`
	Correct   int     `json:"correct"`
	Total     int     `json:"total"`
	Accuracy  float64 `json:"accuracy"`
}

type QuizResults struct {
	SessionID             string             `json:"sessionId"`
	TotalQuestions        int                `json:"totalQuestions"`
	CorrectAnswers        int                `json:"correctAnswers"`
	WrongAnswers          int                `json:"wrongAnswers"`
	Accuracy              float64            `json:"accuracy"`
	CompletionTimeSeconds int                `json:"completionTimeSeconds"`
	BlocksPerformance     []BlockPerformance `json:"blocksPerformance"`
}

type QuizAttemptSummary struct {
	SessionID      string                  `json:"sessionId"`
	TrackName      string                  `json:"trackName"`
	StartedAt      time.Time               `json:"startedAt"`
	EndedAt        *time.Time              `json:"endedAt,omitempty"`
	Status         model.QuizSessionStatus `json:"status"`
	Score          *float64                `json:"score,omitempty"`
	TotalQuestions int                     `json:"totalQuestions"`
	CorrectAnswers int                     `json:"correctAnswers"`
}

// StartQuiz 开始一次测评会话并返回第一道题
// 同一候选人在同一赛道上最多只能有一个进行中的会话
func (s *QuizFlowService) StartQuiz(req QuizStartRequest) (*QuizStartResponse, error) {
	var resp *QuizStartResponse
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.QuizSession
		err := tx.Where("candidate_id = ? AND track_id = ? AND status = ?",
			req.CandidateID, req.TrackID, model.SessionInProgress).First(&existing).Error
		if err == nil {
			return util.ErrActiveSessionExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var track model.Track
		if err := tx.First(&track, req.TrackID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrTrackNotFound
			}
			return err
		}

		var trackBlocks []model.TrackQuizBlock
		if err := tx.Preload("Block").
			Where("track_id = ?", req.TrackID).
			Order("created_at ASC, block_id ASC").
			Find(&trackBlocks).Error; err != nil {
			return err
		}
		if len(trackBlocks) == 0 {
			return util.ErrTrackNotConfigured
		}

		now := time.Now()
		session := &model.QuizSession{
			CandidateID: req.CandidateID,
			TrackID:     req.TrackID,
			Status:      model.SessionInProgress,
			StartedAt:   now,
			ExpiresAt:   now.Add(s.SessionDuration),
		}
		if err := tx.Create(session).Error; err != nil {
			return err
		}

		// 第一题从配置顺序中的第一个块抽取
		first := trackBlocks[0]
		var questions []model.QuizQuestion
		if err := tx.Where("block_id = ? AND is_active = ?", first.BlockID, true).
			Find(&questions).Error; err != nil {
			return err
		}
		if len(questions) == 0 {
			return util.ErrNoQuestionsAvailable
		}
		question := questions[rand.Intn(len(questions))]

		resp = &QuizStartResponse{
			SessionID: session.ID,
			Question:  buildQuestionPayload(&question, first.Block.Name, 1),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	monitoring.QuizSessionsStarted.Inc()
	return resp, nil
}

// SubmitAnswer 记录答案并推进会话，返回下一题或最终结果
// 答案写入与计数更新在同一事务内，重复作答同一题会失败
func (s *QuizFlowService) SubmitAnswer(req QuizAnswerRequest) (*QuizAnswerResult, error) {
	session, err := s.SessionRepo.FindByID(req.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	if session.Status != model.SessionInProgress {
		return nil, util.ErrSessionNotActive
	}

	question, err := s.QuestionRepo.FindByID(req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	now := time.Now()
	expired := !now.Before(session.ExpiresAt)
	isCorrect := req.Answer == question.CorrectAnswer

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		answer := &model.QuizAnswer{
			SessionID:       session.ID,
			QuestionID:      question.ID,
			CandidateAnswer: req.Answer,
			IsCorrect:       isCorrect,
			AnsweredAt:      now,
		}
		if err := tx.Create(answer).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return util.ErrDuplicateAnswer
			}
			return err
		}

		updates := map[string]interface{}{
			"total_questions": gorm.Expr("total_questions + 1"),
		}
		if isCorrect {
			updates["correct_answers"] = gorm.Expr("correct_answers + 1")
		} else {
			updates["wrong_answers"] = gorm.Expr("wrong_answers + 1")
		}
		return tx.Model(&model.QuizSession{}).
			Where("id = ?", session.ID).
			Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	monitoring.QuizAnswersSubmitted.WithLabelValues(strconv.FormatBool(isCorrect)).Inc()

	// 重新加载以拿到最新计数
	session, err = s.SessionRepo.FindByID(session.ID)
	if err != nil {
		return nil, err
	}

	// 超时的会话仍会记录本次答案，然后直接结束
	if expired {
		if _, err := s.finalizeSession(session, "expired"); err != nil {
			return nil, err
		}
		results, err := s.GetResults(session.ID)
		if err != nil {
			return nil, err
		}
		return &QuizAnswerResult{Type: "end", Results: results}, nil
	}

	next, err := s.nextQuestion(session)
	if err != nil {
		return nil, err
	}
	if next == nil {
		if _, err := s.finalizeSession(session, "exhausted"); err != nil {
			return nil, err
		}
		results, err := s.GetResults(session.ID)
		if err != nil {
			return nil, err
		}
		return &QuizAnswerResult{Type: "end", Results: results}, nil
	}

	blockName := "Unknown"
	if block, err := s.BlockRepo.FindByID(next.BlockID); err == nil {
		blockName = block.Name
	}
	payload := buildQuestionPayload(next, blockName, session.TotalQuestions+1)
	return &QuizAnswerResult{Type: "continue", Question: &payload}, nil
}

// nextQuestion 按赛道配置顺序找到第一个未满足要求的块，在其中随机抽取一道未作答的激活题
// 所有块都已满足要求或已抽空时返回 nil，表示测评结束
func (s *QuizFlowService) nextQuestion(session *model.QuizSession) (*model.QuizQuestion, error) {
	trackBlocks, err := s.TrackBlockRepo.ListByTrack(session.TrackID)
	if err != nil {
		return nil, err
	}

	answeredIDs, err := s.AnswerRepo.AnsweredQuestionIDs(session.ID)
	if err != nil {
		return nil, err
	}

	for _, tb := range trackBlocks {
		answered, err := s.AnswerRepo.CountByBlock(session.ID, tb.BlockID)
		if err != nil {
			return nil, err
		}
		if int(answered) >= tb.QuestionsCount {
			continue
		}

		eligible, err := s.QuestionRepo.ListEligible(tb.BlockID, answeredIDs)
		if err != nil {
			return nil, err
		}
		if len(eligible) == 0 {
			continue
		}
		question := eligible[rand.Intn(len(eligible))]
		return &question, nil
	}

	return nil, nil
}

// finalizeSession 将会话置为 completed 并计算得分
// 条件更新保证并发下只有一次终结生效，之后的调用返回 ErrSessionFinalized
func (s *QuizFlowService) finalizeSession(session *model.QuizSession, reason string) (*model.QuizSession, error) {
	now := time.Now()
	score := 0.0
	if session.TotalQuestions > 0 {
		score = float64(session.CorrectAnswers) / float64(session.TotalQuestions) * 100
	}

	result := s.DB.Model(&model.QuizSession{}).
		Where("id = ? AND status = ?", session.ID, model.SessionInProgress).
		Updates(map[string]interface{}{
			"status":   model.SessionCompleted,
			"ended_at": now,
			"score":    score,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, util.ErrSessionFinalized
	}

	session.Status = model.SessionCompleted
	session.EndedAt = &now
	session.Score = &score
	monitoring.QuizSessionsFinalized.WithLabelValues(reason).Inc()
	return session, nil
}

// GetResults 汇总会话结果，包含按块统计
func (s *QuizFlowService) GetResults(sessionID string) (*QuizResults, error) {
	session, err := s.SessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	rows, err := s.AnswerRepo.BlockPerformance(sessionID)
	if err != nil {
		return nil, err
	}

	blocks := make([]BlockPerformance, 0, len(rows))
	for _, row := range rows {
		accuracy := 0.0
		if row.TotalQuestions > 0 {
			accuracy = float64(row.CorrectAnswers) / float64(row.TotalQuestions) * 100
		}
		blocks = append(blocks, BlockPerformance{
			BlockName: row.BlockName,
			Correct:   row.CorrectAnswers,
			Total:     row.TotalQuestions,
			Accuracy:  math.Round(accuracy*100) / 100,
		})
	}

	completionSeconds := 0
	if session.EndedAt != nil {
		completionSeconds = int(session.EndedAt.Sub(session.StartedAt).Seconds())
	}
	accuracy := 0.0
	if session.Score != nil {
		accuracy = *session.Score
	}

	return &QuizResults{
		SessionID:             session.ID,
		TotalQuestions:        session.TotalQuestions,
		CorrectAnswers:        session.CorrectAnswers,
		WrongAnswers:          session.WrongAnswers,
		Accuracy:              accuracy,
		CompletionTimeSeconds: completionSeconds,
		BlocksPerformance:     blocks,
	}, nil
}

// GetAttempts 返回候选人的历史测评记录，按开始时间倒序
func (s *QuizFlowService) GetAttempts(candidateID string, trackID *uint) ([]QuizAttemptSummary, error) {
	sessions, err := s.SessionRepo.ListByCandidate(candidateID, trackID)
	if err != nil {
		return nil, err
	}

	trackNames := make(map[uint]string)
	attempts := make([]QuizAttemptSummary, 0, len(sessions))
	for _, session := range sessions {
		name, ok := trackNames[session.TrackID]
		if !ok {
			name = "Unknown"
			if track, err := s.TrackRepo.FindByID(session.TrackID); err == nil {
				name = track.Name
			}
			trackNames[session.TrackID] = name
		}
		attempts = append(attempts, QuizAttemptSummary{
			SessionID:      session.ID,
			TrackName:      name,
			StartedAt:      session.StartedAt,
			EndedAt:        session.EndedAt,
			Status:         session.Status,
			Score:          session.Score,
			TotalQuestions: session.TotalQuestions,
			CorrectAnswers: session.CorrectAnswers,
		})
	}
	return attempts, nil
}

// SweepExpiredSessions 结束所有已超时但仍在进行中的会话，由后台定时任务调用
func (s *QuizFlowService) SweepExpiredSessions(limit int) (int, error) {
	sessions, err := s.SessionRepo.ListExpired(time.Now(), limit)
	if err != nil {
		return 0, err
	}

	swept := 0
	for i := range sessions {
		if _, err := s.finalizeSession(&sessions[i], "sweep"); err != nil {
			if errors.Is(err, util.ErrSessionFinalized) {
				continue
			}
			return swept, err
		}
		swept++
	}
	return swept, nil
}

func buildQuestionPayload(question *model.QuizQuestion, blockName string, number int) QuestionPayload {
	return QuestionPayload{
		ID:        question.ID,
		Text:      question.QuestionText,
		BlockName: blockName,
		Options: []QuestionOption{
			{Key: "A", Text: question.OptionA},
			{Key: "B", Text: question.OptionB},
			{Key: "C", Text: question.OptionC},
			{Key: "D", Text: question.OptionD},
		},
		QuestionNumber: number,
	}
}
