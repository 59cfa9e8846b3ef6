package userclient

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/thirdlf03/world-holidays/internal/catalog"
)

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  help")
	fmt.Fprintln(out, "  countries [filter]")
	fmt.Fprintln(out, "  search <year> <country_code>")
	fmt.Fprintln(out, "  upcoming <country_code>")
	fmt.Fprintln(out, "  fav <row> [row...]        add rows of the last search to favorites")
	fmt.Fprintln(out, "  favorites")
	fmt.Fprintln(out, "  grouped")
	fmt.Fprintln(out, "  remove <row> [row...]     remove rows of the last favorites listing")
	fmt.Fprintln(out, "  clear")
	fmt.Fprintln(out, "  tf | guess                switch quiz mode")
	fmt.Fprintln(out, "  answer <yes|no|1-4>")
	fmt.Fprintln(out, "  next")
	fmt.Fprintln(out, "  reset")
	fmt.Fprintln(out, "  score")
	fmt.Fprintln(out, "  exit")
}

// parseRowNumbers converts 1-based row arguments into 0-based indexes.
func parseRowNumbers(args []string, rowCount int) ([]int, error) {
	if len(args) == 0 {
		return nil, errors.New("at least one row number is required")
	}

	indexes := make([]int, 0, len(args))
	for _, arg := range args {
		value, err := strconv.Atoi(arg)
		if err != nil || value <= 0 {
			return nil, fmt.Errorf("row %q must be a positive integer", arg)
		}
		if value > rowCount {
			return nil, fmt.Errorf("row %d is out of range (1-%d)", value, rowCount)
		}
		indexes = append(indexes, value-1)
	}
	return indexes, nil
}

func parseYearArg(value string) (int, error) {
	year, err := strconv.Atoi(value)
	if err != nil || year < catalog.YearMin || year > catalog.YearMax {
		return 0, fmt.Errorf("year %q must be between %d and %d", value, catalog.YearMin, catalog.YearMax)
	}
	return year, nil
}

func parseTrueFalseAnswer(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "y", "yes", "true", "t":
		return true, nil
	case "n", "no", "false", "f":
		return false, nil
	default:
		return false, errors.New("answer must be yes or no")
	}
}

func parseGuessAnswer(value string, optionCount int) (int, error) {
	choice, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || choice < 1 || choice > optionCount {
		return 0, fmt.Errorf("answer must be a number between 1 and %d", optionCount)
	}
	return choice - 1, nil
}

func promptYesNo(reader *bufio.Reader, out io.Writer, prompt string) (bool, error) {
	for {
		fmt.Fprint(out, prompt)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false, err
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		switch answer {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprintln(out, "Please answer yes or no.")
		}
	}
}

func describeClientError(err error, serverURL string) error {
	if errors.Is(err, ErrServiceUnavailable) {
		return fmt.Errorf("holiday service unavailable at %s", serverURL)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		return errors.New("credentials required for this action (use --user/--password)")
	}
	return err
}

func formatNames(name, localName string) string {
	if localName == "" || localName == name {
		return name
	}
	return name + " / " + localName
}
