package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/thirdlf03/world-holidays/internal/quiz"
)

const (
	maxAttempts          = 3
	defaultQuestionCount = 10
)

type Config struct {
	Mode      quiz.Mode
	Questions int
}

// Run plays one offline round against the generator and prints the final
// score. Questions the generator cannot produce are skipped.
func Run(ctx context.Context, in io.Reader, out io.Writer, generator quiz.QuestionGenerator, cfg Config) error {
	mode := cfg.Mode
	if mode == "" {
		mode = quiz.ModeTrueFalse
	}
	if mode != quiz.ModeTrueFalse && mode != quiz.ModeGuess {
		return quiz.ErrInvalidMode
	}
	count := cfg.Questions
	if count <= 0 {
		count = defaultQuestionCount
	}

	reader := bufio.NewReader(in)
	var score quiz.Score

	for number := 1; number <= count; number++ {
		var (
			correct  bool
			answered bool
			err      error
		)
		if mode == quiz.ModeTrueFalse {
			correct, answered, err = playTrueFalse(ctx, reader, out, generator, number)
		} else {
			correct, answered, err = playGuess(ctx, reader, out, generator, number)
		}
		if err != nil {
			return err
		}
		if answered {
			score = score.Record(correct)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "\nFinal score: %d/%d (%s%%)\n", score.Correct, score.Total, quiz.FormatAccuracy(score.Accuracy()))
	return nil
}

func playTrueFalse(ctx context.Context, reader *bufio.Reader, out io.Writer, generator quiz.QuestionGenerator, number int) (bool, bool, error) {
	question, err := generator.TrueFalse(ctx)
	if err != nil {
		return false, false, err
	}
	if question == nil {
		fmt.Fprintf(out, "Q%d: no question available, skipping.\n", number)
		return false, false, nil
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Q%d: Is %s a public holiday in %s (%s)?\n\n", number, question.Date, question.CountryName, question.CountryCode)
	fmt.Fprintln(out, "A. Yes")
	fmt.Fprintln(out, "B. No")
	fmt.Fprintln(out)

	chosen, ok := getAnswer(reader, out, 2)
	fmt.Fprintln(out)
	answerText := describeTrueFalse(*question)
	if !ok {
		fmt.Fprintf(out, "Skipping. %s\n", answerText)
		return false, false, nil
	}

	correct := quiz.CheckTrueFalse(*question, chosen == 0)
	if correct {
		fmt.Fprintln(out, "Correct!")
	} else {
		fmt.Fprintln(out, "Wrong.")
	}
	fmt.Fprintln(out, answerText)
	return correct, true, nil
}

func playGuess(ctx context.Context, reader *bufio.Reader, out io.Writer, generator quiz.QuestionGenerator, number int) (bool, bool, error) {
	question, err := generator.Guess(ctx)
	if err != nil {
		return false, false, err
	}
	if question == nil {
		fmt.Fprintf(out, "Q%d: no question available, skipping.\n", number)
		return false, false, nil
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Q%d: Which date and country celebrate %s (%s)?\n\n", number, question.HolidayName, question.LocalName)
	for idx, option := range question.Options {
		fmt.Fprintf(out, "%c. %s %s (%s)\n", 'A'+idx, option.Date, option.CountryName, option.CountryCode)
	}
	fmt.Fprintln(out)

	chosen, ok := getAnswer(reader, out, len(question.Options))
	fmt.Fprintln(out)
	correctText := optionText(*question)
	if !ok {
		fmt.Fprintf(out, "Skipping. Correct answer was %s\n", correctText)
		return false, false, nil
	}

	if quiz.CheckGuess(*question, chosen) {
		fmt.Fprintln(out, "Correct!")
		return true, true, nil
	}
	fmt.Fprintf(out, "Wrong. Correct answer was %s\n", correctText)
	return false, true, nil
}

func getAnswer(reader *bufio.Reader, out io.Writer, optionCount int) (int, bool) {
	if optionCount < 1 {
		return -1, false
	}

	maxLetter := byte('A' + optionCount - 1)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		userAnswer, err := reader.ReadString('\n')
		if err != nil && strings.TrimSpace(userAnswer) == "" {
			return -1, false
		}

		userAnswer = strings.ToUpper(strings.TrimSpace(userAnswer))
		if len(userAnswer) == 1 {
			letter := userAnswer[0]
			if letter >= 'A' && letter <= maxLetter {
				return int(letter - 'A'), true
			}
		}

		if attempt < maxAttempts {
			fmt.Fprintf(out, "\nInvalid input. Please enter a letter A-%c.\n", maxLetter)
		}
	}

	return -1, false
}

func describeTrueFalse(question quiz.TrueFalseQuestion) string {
	if question.IsHoliday && question.HolidayName != nil {
		localName := ""
		if question.LocalName != nil {
			localName = *question.LocalName
		}
		return fmt.Sprintf("%s is %s (%s).", question.Date, *question.HolidayName, localName)
	}
	return fmt.Sprintf("%s is not a public holiday.", question.Date)
}

func optionText(question quiz.GuessQuestion) string {
	option, ok := question.CorrectOption()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%c. %s %s (%s)", 'A'+question.CorrectIndex, option.Date, option.CountryName, option.CountryCode)
}
