package explain

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind selects which statistic an explanation describes.
type Kind string

const (
	KindEmployment  Kind = "employment"
	KindExpenditure Kind = "expenditure"
	KindWorks       Kind = "works"
)

// Metrics carries the figures an explanation is built from. Only the fields
// relevant to the requested kind are read.
type Metrics struct {
	PersonsDemanded int64
	PersonsEmployed int64
	EmploymentRate  float64

	TotalExpenditure    float64
	WagesPaid           float64
	MaterialExpenditure float64

	TotalWorks      int
	CompletedWorks  int
	InProgressWorks int
}

// Explain produces one fixed-template, plain-language sentence for the given
// kind. Deterministic, no I/O.
func Explain(kind Kind, m Metrics) string {
	switch kind {
	case KindEmployment:
		return explainEmployment(m)
	case KindExpenditure:
		return explainExpenditure(m)
	case KindWorks:
		return explainWorks(m)
	default:
		return "This chart shows important information about MGNREGA programs in your district."
	}
}

func explainEmployment(m Metrics) string {
	demanded := groupDigits(m.PersonsDemanded)
	employed := groupDigits(m.PersonsEmployed)
	rate := strconv.FormatFloat(m.EmploymentRate, 'f', -1, 64)

	switch {
	case m.EmploymentRate >= 80:
		return fmt.Sprintf("Great news! Out of %s people who asked for work, %s people got jobs. That's %s%% - which is very good! Your district is doing well in providing employment.",
			demanded, employed, rate)
	case m.EmploymentRate >= 60:
		return fmt.Sprintf("Out of %s people who asked for work, %s people got jobs. That's %s%%. There's room for improvement, but many people are getting work.",
			demanded, employed, rate)
	default:
		return fmt.Sprintf("Out of %s people who asked for work, %s people got jobs. That's %s%%. More work opportunities are needed in your district.",
			demanded, employed, rate)
	}
}

func explainExpenditure(m Metrics) string {
	totalCr := m.TotalExpenditure / 10000000
	wagesCr := m.WagesPaid / 10000000

	wagesPercent := "0"
	if m.TotalExpenditure > 0 {
		wagesPercent = fmt.Sprintf("%.1f", m.WagesPaid/m.TotalExpenditure*100)
	}

	return fmt.Sprintf("Your district spent ₹%.2f Crores this month. Out of this, ₹%.2f Crores (%s%%) went directly to workers as wages. The rest was used for buying materials and running the program.",
		totalCr, wagesCr, wagesPercent)
}

func explainWorks(m Metrics) string {
	return fmt.Sprintf("There are %d projects happening in your district. %d projects are finished, and %d projects are still being built. These projects create jobs and improve your area.",
		m.TotalWorks, m.CompletedWorks, m.InProgressWorks)
}

// groupDigits renders n with thousands separators ("12,345").
func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := strings.Join(parts, ",")
	if negative {
		out = "-" + out
	}
	return out
}
