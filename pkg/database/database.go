package database

import (
	"fmt"
	"hirehub_backend/internal/config"
	"hirehub_backend/internal/model"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
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
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认任务类型，看板依赖 vacancy_approval 类型存在
	var ttCount int64
	db.Model(&model.TaskType{}).Count(&ttCount)
	if ttCount == 0 {
		defaultTaskTypes := []model.TaskType{
			{Code: model.TaskTypeVacancyApproval, Name: "Утверждение вакансии", Description: "Проверить и утвердить новую вакансию", IsActive: true},
			{Code: model.TaskTypeSendOffer, Name: "Отправка оффера", Description: "Отправить оффер финалисту", IsActive: true},
			{Code: model.TaskTypeScheduleCall, Name: "Назначить звонок", Description: "Назначить звонок с кандидатом", IsActive: true},
		}
		for _, t := range defaultTaskTypes {
			db.Create(&t)
		}
	}

	return db, nil
}
