package timeline

import (
	"strconv"
	"strings"

	"github.com/Zachkp/portfolio/internal/resume"
)

const (
	nbsp   = "\u00a0"
	enDash = "\u2013"
)

var monthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// FormatDate turns a partial ISO date into "Mar 2020", "2020" or "Present".
// A month that is not a number from 1 to 12 falls back to the year alone.
func FormatDate(date string) string {
	if date == "" {
		return "Present"
	}

	parts := strings.Split(date, "-")
	year := parts[0]
	if len(parts) > 1 && parts[1] != "" {
		if m, ok := leadingInt(parts[1]); ok && m >= 1 && m <= 12 {
			return monthNames[m-1] + " " + year
		}
	}
	return year
}

// leadingInt parses the run of decimal digits at the start of s.
func leadingInt(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// DateRange is the label shown above each job.
func DateRange(job resume.Job) string {
	return FormatDate(job.StartDate) + nbsp + enDash + nbsp + FormatDate(job.EndDate)
}

// Title is the job heading.
func Title(job resume.Job) string {
	if job.IsSelfEmployed() && job.Description != "" {
		return job.Position + ", " + job.Description
	}
	return job.Position
}

// Subtitle is the employer and location line.
func Subtitle(job resume.Job) string {
	if job.IsSelfEmployed() {
		return job.Location
	}
	parts := make([]string, 0, 2)
	for _, p := range []string{job.Name, job.Location} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
