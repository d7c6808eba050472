package store

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrBrandIDTaken is returned when a brand id already exists in the database.
	ErrBrandIDTaken = errors.New("brand id is already taken")

	// ErrAlreadySubscribed is returned when an email is already on the newsletter list.
	ErrAlreadySubscribed = errors.New("email is already subscribed")
)

var priceRangeNumRe = regexp.MustCompile(`[0-9][0-9,.]*`)

// PriceRangeMidpoint parses a display price range such as "$500 - $2,000" or
// "₦15,000 - ₦120,000" and returns the midpoint of the two amounts. A range
// with a single amount returns that amount. Returns 0 if no amount can be parsed.
func PriceRangeMidpoint(priceRange string) float64 {
	matches := priceRangeNumRe.FindAllString(priceRange, 2)
	if len(matches) == 0 {
		return 0
	}
	lo := parseAmount(matches[0])
	hi := lo
	if len(matches) > 1 {
		hi = parseAmount(matches[1])
	}
	return (lo + hi) / 2
}

func parseAmount(s string) float64 {
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// isUniqueConstraintError checks whether err indicates a unique constraint violation.
// Works across SQLite, PostgreSQL, and MySQL.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // SQLite & PostgreSQL
		strings.Contains(msg, "duplicate key") || // PostgreSQL
		strings.Contains(msg, "duplicate entry") // MySQL
}
