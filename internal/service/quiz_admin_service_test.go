package service

import (
	"testing"
	"time"

	"hirehub_backend/internal/model"
	"hirehub_backend/internal/repository"
	"hirehub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newQuizAdminService(db *gorm.DB) *QuizAdminService {
	return NewQuizAdminService(
		repository.NewQuizBlockRepository(db),
		repository.NewQuizQuestionRepository(db),
		repository.NewTrackQuizBlockRepository(db),
		db,
	)
}

func TestCreateBlockRejectsDuplicateName(t *testing.T) {
	db := openTestDB(t)
	svc := newQuizAdminService(db)

	block, err := svc.CreateBlock(QuizBlockCreateRequest{Name: "Algorithms", Description: "Алгоритмы и структуры данных"})
	require.NoError(t, err)
	assert.True(t, block.IsActive)

	_, err = svc.CreateBlock(QuizBlockCreateRequest{Name: "Algorithms"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	inactive := false
	_, err = svc.CreateBlock(QuizBlockCreateRequest{Name: "Legacy Block", IsActive: &inactive})
	require.NoError(t, err)

	active := true
	blocks, err := svc.ListBlocks(&active)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "Algorithms", blocks[0].Name)

	blocks, err = svc.ListBlocks(nil)
	require.NoError(t, err)
	assert.Len(t, blocks, 2)
}

func TestSetBlockActive(t *testing.T) {
	db := openTestDB(t)
	svc := newQuizAdminService(db)

	block, err := svc.CreateBlock(QuizBlockCreateRequest{Name: "SQL"})
	require.NoError(t, err)

	updated, err := svc.SetBlockActive(block.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	active := true
	blocks, err := svc.ListBlocks(&active)
	require.NoError(t, err)
	assert.Empty(t, blocks)

	_, err = svc.SetBlockActive(999, true)
	assert.ErrorIs(t, err, util.ErrBlockNotFound)
}

func TestCreateQuestionDefaults(t *testing.T) {
	db := openTestDB(t)
	svc := newQuizAdminService(db)

	block, err := svc.CreateBlock(QuizBlockCreateRequest{Name: "Python Basics"})
	require.NoError(t, err)

	view, err := svc.CreateQuestion(QuizQuestionCreateRequest{
		BlockID:       block.ID,
		QuestionText:  "Что выведет print(2 ** 3)?",
		OptionA:       "8",
		OptionB:       "6",
		OptionC:       "9",
		OptionD:       "23",
		CorrectAnswer: "A",
	})
	require.NoError(t, err)
	// 未指定难度时默认 medium
	assert.Equal(t, string(model.DifficultyMedium), view.Difficulty)
	assert.True(t, view.IsActive)
	assert.Equal(t, "Python Basics", view.BlockName)
	assert.NotEmpty(t, view.ID)

	_, err = svc.CreateQuestion(QuizQuestionCreateRequest{
		BlockID:       999,
		QuestionText:  "orphan",
		OptionA:       "a",
		OptionB:       "b",
		OptionC:       "c",
		OptionD:       "d",
		CorrectAnswer: "A",
	})
	assert.ErrorIs(t, err, util.ErrBlockNotFound)

	// 管理端列表带出正确答案
	questions, err := svc.ListQuestions(block.ID)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "A", questions[0].CorrectAnswer)

	_, err = svc.ListQuestions(999)
	assert.ErrorIs(t, err, util.ErrBlockNotFound)
}

func TestSetQuestionActive(t *testing.T) {
	db := openTestDB(t)
	svc := newQuizAdminService(db)

	block, err := svc.CreateBlock(QuizBlockCreateRequest{Name: "Logic"})
	require.NoError(t, err)
	view, err := svc.CreateQuestion(QuizQuestionCreateRequest{
		BlockID:       block.ID,
		QuestionText:  "Если все A суть B, а все B суть C, то...",
		OptionA:       "все A суть C",
		OptionB:       "все C суть A",
		OptionC:       "ни одно A не есть C",
		OptionD:       "нельзя определить",
		CorrectAnswer: "A",
		Difficulty:    "hard",
	})
	require.NoError(t, err)

	question, err := svc.SetQuestionActive(view.ID, false)
	require.NoError(t, err)
	assert.False(t, question.IsActive)

	_, err = svc.SetQuestionActive(model.GenerateUUID(), true)
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}

func TestTrackBlockLinks(t *testing.T) {
	db := openTestDB(t)
	svc := newQuizAdminService(db)

	track := model.Track{Name: "Data Analytics", IsActive: true}
	require.NoError(t, db.Create(&track).Error)

	first, err := svc.CreateBlock(QuizBlockCreateRequest{Name: "SQL"})
	require.NoError(t, err)
	second, err := svc.CreateBlock(QuizBlockCreateRequest{Name: "Statistics"})
	require.NoError(t, err)

	link, err := svc.LinkTrackBlock(TrackQuizBlockCreateRequest{TrackID: track.ID, BlockID: first.ID, QuestionsCount: 3})
	require.NoError(t, err)
	assert.Equal(t, "SQL", link.BlockName)
	assert.Equal(t, 3, link.QuestionsCount)

	_, err = svc.LinkTrackBlock(TrackQuizBlockCreateRequest{TrackID: track.ID, BlockID: second.ID, QuestionsCount: 2})
	require.NoError(t, err)

	// 同一赛道不能重复挂同一个块
	_, err = svc.LinkTrackBlock(TrackQuizBlockCreateRequest{TrackID: track.ID, BlockID: first.ID, QuestionsCount: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already linked")

	_, err = svc.LinkTrackBlock(TrackQuizBlockCreateRequest{TrackID: track.ID, BlockID: 999, QuestionsCount: 1})
	assert.ErrorIs(t, err, util.ErrBlockNotFound)

	_, err = svc.LinkTrackBlock(TrackQuizBlockCreateRequest{TrackID: 999, BlockID: first.ID, QuestionsCount: 1})
	assert.ErrorIs(t, err, util.ErrTrackNotFound)

	_, err = svc.GetTrackBlocks(999)
	assert.ErrorIs(t, err, util.ErrTrackNotFound)

	// 挂载顺序即测评出题顺序
	links, err := svc.GetTrackBlocks(track.ID)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "SQL", links[0].BlockName)
	assert.Equal(t, "Statistics", links[1].BlockName)

	require.NoError(t, svc.UnlinkTrackBlock(track.ID, first.ID))
	links, err = svc.GetTrackBlocks(track.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "Statistics", links[0].BlockName)

	err = svc.UnlinkTrackBlock(track.ID, first.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not linked")
}

func TestDeactivatedQuestionLeavesQuizPool(t *testing.T) {
	db := openTestDB(t)
	admin := newQuizAdminService(db)
	flow := newQuizFlowService(db, 15*time.Minute)

	track := seedQuizTrack(t, db, "Backend", blockSpec{name: "Algorithms", questions: 1, perQuiz: 1})
	candidate := createCandidate(t, db, 7001)

	var question model.QuizQuestion
	require.NoError(t, db.First(&question).Error)
	_, err := admin.SetQuestionActive(question.ID, false)
	require.NoError(t, err)

	// 块里唯一的题停用后，新测评无题可抽
	_, err = flow.StartQuiz(QuizStartRequest{CandidateID: candidate.ID, TrackID: track.ID})
	assert.ErrorIs(t, err, util.ErrNoQuestionsAvailable)
}
