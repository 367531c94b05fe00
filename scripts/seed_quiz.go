// 测评题库种子脚本
//
// 初次部署时一键写入演示数据：三个招聘方向、五个题目分组、
// 每组示例题目，以及方向与分组之间的抽题配置。
// 若 tracks 表已有数据则直接退出，避免重复写入。
//
// 用法: go run scripts/seed_quiz.go

package main

import (
	"hirehub_backend/internal/config"
	"hirehub_backend/internal/model"
	"hirehub_backend/pkg/database"
	"hirehub_backend/pkg/logger"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	var trackCount int64
	db.Model(&model.Track{}).Count(&trackCount)
	if trackCount > 0 {
		log.Println("tracks 表已有数据，跳过种子写入")
		return
	}

	tracks := []model.Track{
		{Name: "Backend", Description: "Серверная разработка: Go, Python, базы данных", IsActive: true},
		{Name: "Frontend", Description: "Интерфейсы: JavaScript, TypeScript, React", IsActive: true},
		{Name: "Data Analytics", Description: "Аналитика данных: SQL, Python, статистика", IsActive: true},
	}
	for i := range tracks {
		if err := db.Create(&tracks[i]).Error; err != nil {
			log.Fatalf("写入方向失败: %v", err)
		}
	}

	blocks := []model.QuizBlock{
		{Name: "Algorithms", Description: "Сложность, структуры данных, базовые алгоритмы", IsActive: true},
		{Name: "Python Basics", Description: "Синтаксис и стандартная библиотека Python", IsActive: true},
		{Name: "SQL", Description: "Запросы, джойны, агрегации", IsActive: true},
		{Name: "JavaScript Basics", Description: "Типы, замыкания, асинхронность", IsActive: true},
		{Name: "Logic", Description: "Логические задачи на внимательность", IsActive: true},
	}
	for i := range blocks {
		if err := db.Create(&blocks[i]).Error; err != nil {
			log.Fatalf("写入题目分组失败: %v", err)
		}
	}
	blockByName := make(map[string]uint, len(blocks))
	for _, b := range blocks {
		blockByName[b.Name] = b.ID
	}

	questions := []model.QuizQuestion{
		{BlockID: blockByName["Algorithms"], QuestionText: "Какова сложность бинарного поиска в отсортированном массиве из n элементов?", OptionA: "O(n)", OptionB: "O(log n)", OptionC: "O(n log n)", OptionD: "O(1)", CorrectAnswer: "B", Difficulty: model.DifficultyEasy},
		{BlockID: blockByName["Algorithms"], QuestionText: "Какая структура данных работает по принципу FIFO?", OptionA: "Стек", OptionB: "Дерево", OptionC: "Очередь", OptionD: "Хеш-таблица", CorrectAnswer: "C", Difficulty: model.DifficultyEasy},
		{BlockID: blockByName["Algorithms"], QuestionText: "Какой алгоритм сортировки имеет худшую сложность O(n^2), но в среднем O(n log n)?", OptionA: "Быстрая сортировка", OptionB: "Сортировка слиянием", OptionC: "Пирамидальная сортировка", OptionD: "Сортировка подсчетом", CorrectAnswer: "A", Difficulty: model.DifficultyMedium},
		{BlockID: blockByName["Python Basics"], QuestionText: "Что вернет выражение len({1, 2, 2, 3}) в Python?", OptionA: "4", OptionB: "3", OptionC: "2", OptionD: "Ошибку", CorrectAnswer: "B", Difficulty: model.DifficultyEasy},
		{BlockID: blockByName["Python Basics"], QuestionText: "Какой тип данных в Python является неизменяемым?", OptionA: "list", OptionB: "dict", OptionC: "set", OptionD: "tuple", CorrectAnswer: "D", Difficulty: model.DifficultyEasy},
		{BlockID: blockByName["Python Basics"], QuestionText: "Что делает конструкция with open(path) as f?", OptionA: "Открывает файл и гарантирует его закрытие", OptionB: "Создает новый файл всегда", OptionC: "Читает файл целиком в память", OptionD: "Блокирует файл для других процессов", CorrectAnswer: "A", Difficulty: model.DifficultyMedium},
		{BlockID: blockByName["SQL"], QuestionText: "Какой JOIN вернет все строки левой таблицы, даже без совпадений справа?", OptionA: "INNER JOIN", OptionB: "LEFT JOIN", OptionC: "RIGHT JOIN", OptionD: "CROSS JOIN", CorrectAnswer: "B", Difficulty: model.DifficultyEasy},
		{BlockID: blockByName["SQL"], QuestionText: "Какое ключевое слово фильтрует результат после GROUP BY?", OptionA: "WHERE", OptionB: "FILTER", OptionC: "HAVING", OptionD: "LIMIT", CorrectAnswer: "C", Difficulty: model.DifficultyMedium},
		{BlockID: blockByName["SQL"], QuestionText: "Что делает COUNT(DISTINCT column)?", OptionA: "Считает все строки", OptionB: "Считает уникальные непустые значения", OptionC: "Считает NULL значения", OptionD: "Считает дубликаты", CorrectAnswer: "B", Difficulty: model.DifficultyEasy},
		{BlockID: blockByName["JavaScript Basics"], QuestionText: "Что выведет console.log(typeof null)?", OptionA: "null", OptionB: "undefined", OptionC: "object", OptionD: "number", CorrectAnswer: "C", Difficulty: model.DifficultyMedium},
		{BlockID: blockByName["JavaScript Basics"], QuestionText: "Какой метод массива создает новый массив из результатов функции?", OptionA: "forEach", OptionB: "map", OptionC: "filter", OptionD: "reduce", CorrectAnswer: "B", Difficulty: model.DifficultyEasy},
		{BlockID: blockByName["Logic"], QuestionText: "Продолжите последовательность: 2, 6, 12, 20, 30, ...", OptionA: "40", OptionB: "42", OptionC: "44", OptionD: "36", CorrectAnswer: "B", Difficulty: model.DifficultyMedium},
		{BlockID: blockByName["Logic"], QuestionText: "Если все A являются B, а некоторые B являются C, то:", OptionA: "Все A являются C", OptionB: "Некоторые A точно являются C", OptionC: "Нельзя утверждать, что какие-то A являются C", OptionD: "Ни одно A не является C", CorrectAnswer: "C", Difficulty: model.DifficultyHard},
	}
	for i := range questions {
		questions[i].IsActive = true
		if err := db.Create(&questions[i]).Error; err != nil {
			log.Fatalf("写入题目失败: %v", err)
		}
	}

	// 方向抽题配置，创建顺序即测评中的出题顺序
	links := []model.TrackQuizBlock{
		{TrackID: tracks[0].ID, BlockID: blockByName["Algorithms"], QuestionsCount: 2},
		{TrackID: tracks[0].ID, BlockID: blockByName["Python Basics"], QuestionsCount: 2},
		{TrackID: tracks[0].ID, BlockID: blockByName["SQL"], QuestionsCount: 1},
		{TrackID: tracks[1].ID, BlockID: blockByName["JavaScript Basics"], QuestionsCount: 2},
		{TrackID: tracks[1].ID, BlockID: blockByName["Algorithms"], QuestionsCount: 1},
		{TrackID: tracks[1].ID, BlockID: blockByName["Logic"], QuestionsCount: 1},
		{TrackID: tracks[2].ID, BlockID: blockByName["SQL"], QuestionsCount: 2},
		{TrackID: tracks[2].ID, BlockID: blockByName["Python Basics"], QuestionsCount: 1},
		{TrackID: tracks[2].ID, BlockID: blockByName["Logic"], QuestionsCount: 1},
	}
	for i := range links {
		if err := db.Create(&links[i]).Error; err != nil {
			log.Fatalf("写入抽题配置失败: %v", err)
		}
	}

	log.Printf("种子数据写入完成: %d 个方向, %d 个分组, %d 道题目", len(tracks), len(blocks), len(questions))
}
