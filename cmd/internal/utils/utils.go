package utils

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const slotLabelLayout = "15:04"

func FormatEpoch(millis int64) string {
	return time.UnixMilli(millis).
		UTC().
		Format(time.RFC3339)
}

func NowUTC() int64 {
	return time.Now().
		UTC().
		UnixMilli()
}

func FromEpoch(rfc string) (int64, error) {
	t, err := time.Parse(time.RFC3339, rfc)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

// DayRange takes "YYYY-MM-DD" and returns the closed interval covering that
// whole date in UTC as epoch millis: [00:00:00.000, 23:59:59.999].
func DayRange(date string) (int64, int64, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, 0, errors.New("invalid date format, expected YYYY-MM-DD")
	}

	dayStart := t.UTC()
	dayEnd := dayStart.AddDate(0, 0, 1)
	return dayStart.UnixMilli(), dayEnd.UnixMilli() - 1, nil
}

// TimeOfDayLabel renders the time-of-day component of an instant as a slot
// label ("09:00"). Booked slots are matched against the catalog by this label.
func TimeOfDayLabel(millis int64) string {
	return time.UnixMilli(millis).
		UTC().
		Format(slotLabelLayout)
}

// ParseSlotLabel returns the hour of a slot label, or ok=false when the label
// is not a valid HH:MM string.
func ParseSlotLabel(label string) (int, bool) {
	t, err := time.Parse(slotLabelLayout, label)
	if err != nil {
		return 0, false
	}
	return t.Hour(), true
}

// BearerToken extracts the credential from the Authorization header.
func BearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		return "", errors.New("missing bearer token")
	}
	return strings.TrimSpace(token), nil
}

func Sanitize(o any) {
	v := reflect.ValueOf(o)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		panic("sanitize: expected pointer to struct")
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		panic("sanitize: expected struct")
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(sanitizeString(field.String()))

		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				for j := 0; j < field.Len(); j++ {
					field.Index(j).SetString(sanitizeString(field.Index(j).String()))
				}
			}
		}
	}
}

func sanitizeString(s string) string {
	return strings.TrimSpace(s)
}
