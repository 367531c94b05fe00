package util

import "errors"

var (
	ErrRecruiterNotFound    = errors.New("用户不存在")
	ErrEmailRegistered      = errors.New("该邮箱已被注册")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrTrackNotFound        = errors.New("track not found")
	ErrTrackNotConfigured   = errors.New("no quiz blocks configured for track")
	ErrNoQuestionsAvailable = errors.New("no questions available for quiz")
	ErrActiveSessionExists  = errors.New("candidate already has an active quiz session for this track")
	ErrSessionNotFound      = errors.New("quiz session not found")
	ErrSessionNotActive     = errors.New("quiz session is not active")
	ErrSessionFinalized     = errors.New("quiz session already finalized")
	ErrDuplicateAnswer      = errors.New("question already answered in this session")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrCandidateNotFound    = errors.New("candidate not found")
	ErrVacancyNotFound      = errors.New("vacancy not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskTypeNotFound     = errors.New("task type not found")
	ErrBlockNotFound        = errors.New("quiz block not found")
	ErrPoolEntryNotFound    = errors.New("candidate pool entry not found")
	ErrNoMoreCandidates     = errors.New("no more candidates to review for this vacancy")
)
