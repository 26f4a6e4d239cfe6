package plinko

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ColumnHint is shown to the player whenever a column is rejected.
const ColumnHint = "Choose 1 to 9!"

var (
	ErrColumnNotNumber = errors.New("plinko: column is not a number")
	ErrColumnRange     = errors.New("plinko: column out of range")
	ErrDropInProgress  = errors.New("plinko: drop already in progress")
)

// ParseColumn converts player input into a start column. Non-numeric text
// and numbers outside 1-9 are both rejected.
func ParseColumn(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrColumnNotNumber, text)
	}
	if !ValidStart(n) {
		return 0, fmt.Errorf("%w: %d", ErrColumnRange, n)
	}
	return n, nil
}
