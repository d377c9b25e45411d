// Package pages holds the content components of each site section.
package pages

import (
	"fmt"
	"strconv"
	"time"

	"github.com/vangoframework/pellines/internal/domain"
)

var months = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var weekdays = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

// FormatDate renders a date the way residents write it, e.g. "lunes 9 de marzo".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s %d de %s", weekdays[t.Weekday()], t.Day(), months[t.Month()-1])
}

// MonthTitle renders "marzo 2026".
func MonthTitle(t time.Time) string {
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}

func eventWhen(e domain.Event) string {
	if e.AllDay || e.StartTime == "" {
		return FormatDate(e.StartDate) + " · todo el día"
	}
	if e.EndTime != "" {
		return fmt.Sprintf("%s · %s a %s", FormatDate(e.StartDate), e.StartTime, e.EndTime)
	}
	return FormatDate(e.StartDate) + " · " + e.StartTime
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
