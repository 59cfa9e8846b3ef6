package quiz

import "github.com/shopspring/decimal"

type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

func (s Score) Accuracy() float64 {
	return Accuracy(s.Correct, s.Total)
}

// Record returns the score after one more answered question.
func (s Score) Record(correct bool) Score {
	s.Total++
	if correct {
		s.Correct++
	}
	return s
}

func CheckTrueFalse(question TrueFalseQuestion, answer bool) bool {
	return answer == question.IsHoliday
}

func CheckGuess(question GuessQuestion, selectedIndex int) bool {
	return selectedIndex == question.CorrectIndex
}

// Accuracy returns the percentage of correct answers, 0 when nothing was
// answered yet.
func Accuracy(score, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(score) / float64(total) * 100
}

// FormatAccuracy renders a percentage with one decimal place, e.g. "77.8".
func FormatAccuracy(accuracy float64) string {
	return decimal.NewFromFloat(accuracy).StringFixed(1)
}

func ProcessGuessAnswer(question GuessQuestion, selectedIndex int, current Score) (bool, Score) {
	correct := CheckGuess(question, selectedIndex)
	return correct, current.Record(correct)
}

func ProcessTrueFalseAnswer(question TrueFalseQuestion, answer bool, current Score) (bool, Score) {
	correct := CheckTrueFalse(question, answer)
	return correct, current.Record(correct)
}
