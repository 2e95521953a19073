package audit

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer) *Logger {
	return &Logger{
		writer:   buf,
		hostname: "testhost",
		appName:  AppName,
		pid:      42,
		now: func() time.Time {
			return time.Date(2016, time.January, 12, 9, 30, 0, 0, time.UTC)
		},
	}
}

func TestLogger_Log(t *testing.T) {
	t.Run("authentication success", func(t *testing.T) {
		var buf bytes.Buffer
		newTestLogger(&buf).Log(AuthenticateEvent{Principal: "grey", Role: "Student", Success: true})

		assert.Equal(t,
			`<86>1 2016-01-12T09:30:00.000Z testhost registrar 42 authn [auth@32473 role="Student" user="grey"] grey successfully authenticated as Student`+"\n",
			buf.String())
	})

	t.Run("authentication failure", func(t *testing.T) {
		var buf bytes.Buffer
		newTestLogger(&buf).Log(AuthenticateEvent{Principal: "mallory"})

		line := buf.String()
		assert.True(t, strings.HasPrefix(line, "<84>1 "))
		assert.Contains(t, line, `[auth@32473 user="mallory"]`)
		assert.Contains(t, line, "mallory failed to authenticate: invalid credentials")
	})

	t.Run("denied check", func(t *testing.T) {
		var buf bytes.Buffer
		newTestLogger(&buf).Log(CheckEvent{Principal: "grey", Table: "course", Operation: "Delete"})

		line := buf.String()
		assert.True(t, strings.HasPrefix(line, "<37>1 "))
		assert.Contains(t, line, `[action@32473 operation="check" result="failure"][auth@32473 user="grey"][subject@32473 operation="Delete" table="course"]`)
		assert.Contains(t, line, "grey checked permission Delete on course: denied")
	})

	t.Run("failed statement", func(t *testing.T) {
		var buf bytes.Buffer
		newTestLogger(&buf).Log(StatementEvent{
			Principal: "brown", Table: "section", Operation: "Create", ErrorMessage: "duplicate key",
		})

		line := buf.String()
		assert.True(t, strings.HasPrefix(line, "<132>1 "))
		assert.Contains(t, line, "brown failed to perform Create on section: duplicate key")
	})
}

func TestEscapeSDValue(t *testing.T) {
	assert.Equal(t, `"a\"b\\c\]"`, escapeSDValue(`a"b\c]`))
}

func TestFormatStructuredData_Empty(t *testing.T) {
	var buf bytes.Buffer
	newTestLogger(&buf).Log(emptyEvent{})
	assert.Contains(t, buf.String(), " empty - nothing\n")
}

func TestLogger_Format(t *testing.T) {
	l := newTestLogger(nil)
	l.hostname = ""
	assert.Equal(t,
		`<133>1 2016-01-12T09:30:00.000Z - registrar 42 statement [action@32473 operation="Update" result="success"][auth@32473 user="brown"][subject@32473 table="course"] brown performed Update on course`,
		l.Format(StatementEvent{Principal: "brown", Table: "course", Operation: "Update", Success: true}))
}

func TestSinkFunc(t *testing.T) {
	var got []Event
	sink := SinkFunc(func(e Event) { got = append(got, e) })
	sink.Log(CheckEvent{Principal: "grey", Allowed: true})

	require.Len(t, got, 1)
	assert.Equal(t, "check", got[0].MessageID())
}

func TestSetEnabled(t *testing.T) {
	SetEnabled(false)
	t.Cleanup(func() { SetEnabled(true) })

	var buf bytes.Buffer
	prev := DefaultLogger
	DefaultLogger = newTestLogger(&buf)
	t.Cleanup(func() { DefaultLogger = prev })

	Log(AuthenticateEvent{Principal: "grey", Success: true})
	assert.Empty(t, buf.String())
	assert.False(t, IsEnabled())
}

type emptyEvent struct{}

func (emptyEvent) MessageID() string                            { return "empty" }
func (emptyEvent) Message() string                              { return "nothing" }
func (emptyEvent) Severity() Severity                           { return SeverityDebug }
func (emptyEvent) Facility() int                                { return FacilityLocal0 }
func (emptyEvent) StructuredData() map[string]map[string]string { return nil }
