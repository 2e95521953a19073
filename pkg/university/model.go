package university

import "github.com/doodlesbykumbi/registrar/pkg/permission"

// Student is a row of the student table.
type Student struct {
	ID       int32  `gorm:"column:id;primaryKey;autoIncrement:false"`
	Name     string `gorm:"column:name"`
	DeptName string `gorm:"column:dept_name"`
	TotCred  int    `gorm:"column:tot_cred"`
}

// TableName overrides the table name used by Student to `student`
func (Student) TableName() string {
	return permission.TableStudent.String()
}

// DefaultDepartment is the department new students are enrolled in.
const DefaultDepartment = "Biology"

// Course is a row of the course table.
type Course struct {
	ID         string
	Title      string
	Department string
	Credits    string
}

func (c Course) values() []string {
	return []string{c.ID, c.Title, c.Department, c.Credits}
}

// Section is a row of the section table.
type Section struct {
	CourseID   string
	SectionID  string
	Semester   string
	Year       string
	Building   string
	RoomNumber string
	TimeSlotID string
}

func (s Section) values() []string {
	return []string{s.CourseID, s.SectionID, s.Semester, s.Year, s.Building, s.RoomNumber, s.TimeSlotID}
}

// Term is the semester students register into.
type Term struct {
	Semester string
	Year     string
}

// DefaultTerm is the registration term used when none is configured.
var DefaultTerm = Term{Semester: "Spring", Year: "2016"}

// Result is a set of rows with the columns they were read from.
type Result struct {
	Columns []string
	Rows    [][]string
}

// Len returns the number of rows.
func (r Result) Len() int {
	return len(r.Rows)
}

var (
	departmentColumns = []string{"dept_name", "building"}
	courseColumns     = []string{"course_id", "title", "dept_name", "credits"}
	sectionColumns    = []string{"course_id", "sec_id", "semester", "year", "building", "room_number", "time_slot_id"}
	enrolledColumns   = []string{"course_id", "sec_id", "semester", "year"}
)
