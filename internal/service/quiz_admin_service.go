package service

import (
	"errors"
	"time"

	"hirehub_backend/internal/model"
	"hirehub_backend/internal/repository"
	"hirehub_backend/internal/util"

	"gorm.io/gorm"
)

// QuizAdminService 管理题库内容：块、题目、赛道与块的关联
type QuizAdminService struct {
	BlockRepo      *repository.QuizBlockRepository
	QuestionRepo   *repository.QuizQuestionRepository
	TrackBlockRepo *repository.TrackQuizBlockRepository
	DB             *gorm.DB
}

func NewQuizAdminService(
	blockRepo *repository.QuizBlockRepository,
	questionRepo *repository.QuizQuestionRepository,
	trackBlockRepo *repository.TrackQuizBlockRepository,
	db *gorm.DB,
) *QuizAdminService {
	return &QuizAdminService{
		BlockRepo:      blockRepo,
		QuestionRepo:   questionRepo,
		TrackBlockRepo: trackBlockRepo,
		DB:             db,
	}
}

type QuizBlockCreateRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

type QuizQuestionCreateRequest struct {
	BlockID       uint   `json:"blockId" binding:"required"`
	QuestionText  string `json:"questionText" binding:"required"`
	OptionA       string `json:"optionA" binding:"required"`
	OptionB       string `json:"optionB" binding:"required"`
	OptionC       string `json:"optionC" binding:"required"`
	OptionD       string `json:"optionD" binding:"required"`
	CorrectAnswer string `json:"correctAnswer" binding:"required,oneof=A B C D"`
	Difficulty    string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	IsActive      *bool  `json:"isActive"`
}

type TrackQuizBlockCreateRequest struct {
	TrackID        uint `json:"trackId" binding:"required"`
	BlockID        uint `json:"blockId" binding:"required"`
	QuestionsCount int  `json:"questionsCount" binding:"required,min=1"`
}

// QuizQuestionView 管理端视图，包含正确答案
type QuizQuestionView struct {
	ID            string    `json:"id"`
	BlockID       uint      `json:"blockId"`
	BlockName     string    `json:"blockName"`
	QuestionText  string    `json:"questionText"`
	OptionA       string    `json:"optionA"`
	OptionB       string    `json:"optionB"`
	OptionC       string    `json:"optionC"`
	OptionD       string    `json:"optionD"`
	CorrectAnswer string    `json:"correctAnswer"`
	Difficulty    string    `json:"difficulty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type TrackQuizBlockView struct {
	TrackID        uint   `json:"trackId"`
	BlockID        uint   `json:"blockId"`
	BlockName      string `json:"blockName"`
	QuestionsCount int    `json:"questionsCount"`
}

func (s *QuizAdminService) CreateBlock(req QuizBlockCreateRequest) (*model.QuizBlock, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	block := &model.QuizBlock{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    isActive,
	}
	if err := s.BlockRepo.Create(block); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New("block name already exists")
		}
		return nil, err
	}
	return block, nil
}

func (s *QuizAdminService) ListBlocks(isActive *bool) ([]model.QuizBlock, error) {
	return s.BlockRepo.List(isActive)
}

// SetBlockActive 停用的块不再参与新会话的抽题，历史数据不受影响
func (s *QuizAdminService) SetBlockActive(blockID uint, isActive bool) (*model.QuizBlock, error) {
	block, err := s.BlockRepo.FindByID(blockID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrBlockNotFound
		}
		return nil, err
	}
	block.IsActive = isActive
	if err := s.BlockRepo.Update(block); err != nil {
		return nil, err
	}
	return block, nil
}

func (s *QuizAdminService) CreateQuestion(req QuizQuestionCreateRequest) (*QuizQuestionView, error) {
	block, err := s.BlockRepo.FindByID(req.BlockID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrBlockNotFound
		}
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	difficulty := model.QuestionDifficulty(req.Difficulty)
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}

	question := &model.QuizQuestion{
		BlockID:       req.BlockID,
		QuestionText:  req.QuestionText,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectAnswer: req.CorrectAnswer,
		Difficulty:    difficulty,
		IsActive:      isActive,
	}
	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}

	view := buildQuestionView(question, block.Name)
	return &view, nil
}

func (s *QuizAdminService) ListQuestions(blockID uint) ([]QuizQuestionView, error) {
	block, err := s.BlockRepo.FindByID(blockID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrBlockNotFound
		}
		return nil, err
	}

	questions, err := s.QuestionRepo.ListByBlock(blockID)
	if err != nil {
		return nil, err
	}

	views := make([]QuizQuestionView, 0, len(questions))
	for i := range questions {
		views = append(views, buildQuestionView(&questions[i], block.Name))
	}
	return views, nil
}

// SetQuestionActive 题目创建后内容不可修改，只允许切换激活状态
func (s *QuizAdminService) SetQuestionActive(questionID string, isActive bool) (*model.QuizQuestion, error) {
	question, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	question.IsActive = isActive
	if err := s.QuestionRepo.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuizAdminService) LinkTrackBlock(req TrackQuizBlockCreateRequest) (*TrackQuizBlockView, error) {
	var track model.Track
	if err := s.DB.First(&track, req.TrackID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTrackNotFound
		}
		return nil, err
	}

	block, err := s.BlockRepo.FindByID(req.BlockID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrBlockNotFound
		}
		return nil, err
	}

	link := &model.TrackQuizBlock{
		TrackID:        req.TrackID,
		BlockID:        req.BlockID,
		QuestionsCount: req.QuestionsCount,
	}
	if err := s.TrackBlockRepo.Create(link); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New("track is already linked to this block")
		}
		return nil, err
	}

	return &TrackQuizBlockView{
		TrackID:        link.TrackID,
		BlockID:        link.BlockID,
		BlockName:      block.Name,
		QuestionsCount: link.QuestionsCount,
	}, nil
}

func (s *QuizAdminService) GetTrackBlocks(trackID uint) ([]TrackQuizBlockView, error) {
	var track model.Track
	if err := s.DB.First(&track, trackID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTrackNotFound
		}
		return nil, err
	}

	links, err := s.TrackBlockRepo.ListByTrack(trackID)
	if err != nil {
		return nil, err
	}

	views := make([]TrackQuizBlockView, 0, len(links))
	for _, link := range links {
		views = append(views, TrackQuizBlockView{
			TrackID:        link.TrackID,
			BlockID:        link.BlockID,
			BlockName:      link.Block.Name,
			QuestionsCount: link.QuestionsCount,
		})
	}
	return views, nil
}

func (s *QuizAdminService) UnlinkTrackBlock(trackID, blockID uint) error {
	if _, err := s.TrackBlockRepo.Find(trackID, blockID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("track is not linked to this block")
		}
		return err
	}
	return s.TrackBlockRepo.Delete(trackID, blockID)
}

func buildQuestionView(question *model.QuizQuestion, blockName string) QuizQuestionView {
	return QuizQuestionView{
		ID:            question.ID,
		BlockID:       question.BlockID,
		BlockName:     blockName,
		QuestionText:  question.QuestionText,
		OptionA:       question.OptionA,
		OptionB:       question.OptionB,
		OptionC:       question.OptionC,
		OptionD:       question.OptionD,
		CorrectAnswer: question.CorrectAnswer,
		Difficulty:    string(question.Difficulty),
		IsActive:      question.IsActive,
		CreatedAt:     question.CreatedAt,
		UpdatedAt:     question.UpdatedAt,
	}
}
