// Package transcript derives a student's GPA and printable transcript from
// the rows of courses they have completed.
package transcript

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Columns lists, in tuple order, the columns ParseRow expects.
var Columns = []string{"title", "course_id", "semester", "year", "grade", "credits"}

// OrderClause sorts completed courses newest first: year descending, then
// Fall, Summer, Spring within a year.
const OrderClause = `ORDER BY "year" DESC, CASE "semester" WHEN 'Spring' THEN 1 WHEN 'Summer' THEN 2 WHEN 'Fall' THEN 3 END DESC`

// ErrMalformedRow is returned by ParseRow for tuples that do not carry every
// column or whose credit hours are not a non-negative integer.
var ErrMalformedRow = errors.New("transcript: malformed row")

// Row is one completed course.
type Row struct {
	Title    string
	CourseID string
	Semester string
	Year     string
	Grade    string
	Credits  int
}

// Transcript is the computed result for one student.
type Transcript struct {
	Lines         []string
	GPA           float64
	QualityPoints float64
	CreditHours   int
}

// Points maps a letter grade to quality points. Anything that is not an
// A, B, C or D grade (F, W, empty, ...) is worth nothing.
func Points(grade string) float64 {
	switch grade {
	case "A", "A+", "A-":
		return 4.0
	case "B", "B+", "B-":
		return 3.0
	case "C", "C+", "C-":
		return 2.0
	case "D", "D+", "D-":
		return 1.0
	default:
		return 0.0
	}
}

// Compute builds the transcript of name from rows. Rows are reported in the
// order given.
func Compute(name string, rows []Row) Transcript {
	var t Transcript
	courses := make([]string, 0, len(rows))
	for _, r := range rows {
		courses = append(courses, fmt.Sprintf("Took %s (%s) in %s of %s and received grade of '%s' | %d credits",
			r.Title, r.CourseID, r.Semester, r.Year, r.Grade, r.Credits))
		t.QualityPoints += Points(r.Grade) * float64(r.Credits)
		t.CreditHours += r.Credits
	}
	if t.CreditHours > 0 {
		t.GPA = t.QualityPoints / float64(t.CreditHours)
	}

	t.Lines = make([]string, 0, len(courses)+2)
	t.Lines = append(t.Lines,
		fmt.Sprintf("***Transcript for: %s***", name),
		fmt.Sprintf("GPA: %.2f", t.GPA),
	)
	t.Lines = append(t.Lines, courses...)
	return t
}

// ParseRow decodes a tuple of Columns joined by sep. Titles may themselves
// contain sep; the trailing five fields are fixed.
func ParseRow(tuple, sep string) (Row, error) {
	parts := strings.Split(tuple, sep)
	n := len(parts)
	if n < len(Columns) {
		return Row{}, fmt.Errorf("%w: %q has %d fields", ErrMalformedRow, tuple, n)
	}

	credits, err := strconv.Atoi(strings.TrimSpace(parts[n-1]))
	if err != nil || credits < 0 {
		return Row{}, fmt.Errorf("%w: bad credit hours %q", ErrMalformedRow, parts[n-1])
	}

	return Row{
		Title:    strings.Join(parts[:n-5], sep),
		CourseID: parts[n-5],
		Semester: parts[n-4],
		Year:     parts[n-3],
		Grade:    parts[n-2],
		Credits:  credits,
	}, nil
}
