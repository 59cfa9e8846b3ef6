package quiz

import (
	"math"
	"testing"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name    string
		correct int
		total   int
		want    float64
	}{
		{name: "nothing answered", correct: 0, total: 0, want: 0},
		{name: "all correct", correct: 9, total: 9, want: 100},
		{name: "partial", correct: 7, total: 9, want: 77.777},
		{name: "none correct", correct: 0, total: 4, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Accuracy(tc.correct, tc.total)
			if math.Abs(got-tc.want) > 0.01 {
				t.Fatalf("Accuracy(%d, %d) = %v, want %v", tc.correct, tc.total, got, tc.want)
			}
		})
	}
}

func TestFormatAccuracy(t *testing.T) {
	tests := map[float64]string{
		0:              "0.0",
		100:            "100.0",
		Accuracy(7, 9): "77.8",
		Accuracy(1, 3): "33.3",
		Accuracy(2, 3): "66.7",
	}
	for input, want := range tests {
		if got := FormatAccuracy(input); got != want {
			t.Fatalf("FormatAccuracy(%v) = %q, want %q", input, got, want)
		}
	}
}

func TestProcessGuessAnswer(t *testing.T) {
	question := GuessQuestion{
		HolidayName: "Constitution Day",
		Options: []GuessOption{
			{Date: "2024-05-03", CountryCode: "JP", IsCorrect: true},
			{Date: "2024-07-04", CountryCode: "US"},
			{Date: "2024-10-03", CountryCode: "DE"},
			{Date: "2024-07-14", CountryCode: "FR"},
		},
		CorrectIndex: 0,
	}

	correct, score := ProcessGuessAnswer(question, 0, Score{Correct: 2, Total: 5})
	if !correct || score != (Score{Correct: 3, Total: 6}) {
		t.Fatalf("unexpected result: correct=%v score=%+v", correct, score)
	}

	correct, score = ProcessGuessAnswer(question, 2, score)
	if correct || score != (Score{Correct: 3, Total: 7}) {
		t.Fatalf("unexpected result: correct=%v score=%+v", correct, score)
	}
}

func TestProcessTrueFalseAnswer(t *testing.T) {
	question := TrueFalseQuestion{CountryCode: "JP", Date: "2024-03-12", IsHoliday: false}

	correct, score := ProcessTrueFalseAnswer(question, false, Score{})
	if !correct || score != (Score{Correct: 1, Total: 1}) {
		t.Fatalf("unexpected result: correct=%v score=%+v", correct, score)
	}

	correct, score = ProcessTrueFalseAnswer(question, true, score)
	if correct || score != (Score{Correct: 1, Total: 2}) {
		t.Fatalf("unexpected result: correct=%v score=%+v", correct, score)
	}
	if got := FormatAccuracy(score.Accuracy()); got != "50.0" {
		t.Fatalf("unexpected accuracy %q", got)
	}
}

func TestTrueFalseQuestionConsistent(t *testing.T) {
	name := "New Year"
	tests := []struct {
		name     string
		question TrueFalseQuestion
		want     bool
	}{
		{name: "holiday with names", question: TrueFalseQuestion{IsHoliday: true, HolidayName: &name, LocalName: &name}, want: true},
		{name: "holiday missing names", question: TrueFalseQuestion{IsHoliday: true}, want: false},
		{name: "ordinary day", question: TrueFalseQuestion{}, want: true},
		{name: "ordinary day with name", question: TrueFalseQuestion{HolidayName: &name}, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.question.Consistent(); got != tc.want {
				t.Fatalf("Consistent() = %v, want %v", got, tc.want)
			}
		})
	}
}
