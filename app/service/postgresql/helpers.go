package service

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

var dniPattern = regexp.MustCompile(`^\d{8}$`)

// parseID reads a positive integer path parameter.
func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

func validDNI(dni string) bool {
	return dniPattern.MatchString(dni)
}

// parseDate turns an optional YYYY-MM-DD string into a time. Empty strings
// count as absent.
func parseDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(*value))
	if err != nil {
		return nil, errors.New("dates must use the YYYY-MM-DD format")
	}
	return &t, nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
