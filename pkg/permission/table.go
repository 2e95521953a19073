package permission

// Table names a relation, or a derived view such as the transcript, that a
// role may act on.
type Table string

const (
	TableCourse     Table = "course"
	TableSection    Table = "section"
	TableDepartment Table = "department"
	TableTakes      Table = "takes"
	TableTranscript Table = "transcript"
	TableStudent    Table = "student"
)

func (t Table) String() string {
	return string(t)
}
