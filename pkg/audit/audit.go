package audit

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Structured data IDs. 32473 is the enterprise number RFC5612 reserves for
// documentation.
const (
	SDIDAuth    = "auth@32473"
	SDIDSubject = "subject@32473"
	SDIDAction  = "action@32473"
)

// Syslog facilities used by registrar events.
const (
	FacilityAuth     = 4  // LOG_AUTH
	FacilityAuthPriv = 10 // LOG_AUTHPRIV
	FacilityLocal0   = 16 // LOG_LOCAL0, data changes
)

// AppName is the APP-NAME field of every line.
const AppName = "registrar"

const timestampLayout = "2006-01-02T15:04:05.000Z"

// Severity is an RFC5424 severity level.
type Severity int

const (
	SeverityEmergency Severity = iota
	SeverityAlert
	SeverityCritical
	SeverityError
	SeverityWarning
	SeverityNotice
	SeverityInfo
	SeverityDebug
)

// Event is anything that can be written to the audit trail.
type Event interface {
	MessageID() string
	Message() string
	Severity() Severity
	Facility() int
	StructuredData() map[string]map[string]string
}

// Sink receives audit events.
type Sink interface {
	Log(event Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

// Log calls f(event).
func (f SinkFunc) Log(event Event) {
	f(event)
}

// Logger writes events as RFC5424 lines.
type Logger struct {
	mu       sync.Mutex
	writer   io.Writer
	hostname string
	appName  string
	pid      int
	now      func() time.Time
}

// NewLogger returns a Logger on stderr. Stdout belongs to the shell.
func NewLogger() *Logger {
	hostname, _ := os.Hostname()
	return &Logger{
		writer:   os.Stderr,
		hostname: hostname,
		appName:  AppName,
		pid:      os.Getpid(),
		now:      time.Now,
	}
}

// SetWriter redirects the logger.
func (l *Logger) SetWriter(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer = w
}

// Format renders event as one line without the trailing newline:
//
//	<PRI>1 TIMESTAMP HOSTNAME APP-NAME PROCID MSGID SD MSG
func (l *Logger) Format(event Event) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(strconv.Itoa(event.Facility()*8 + int(event.Severity())))
	b.WriteString(">1 ")
	b.WriteString(l.now().UTC().Format(timestampLayout))
	for _, field := range []string{l.hostname, l.appName, strconv.Itoa(l.pid), event.MessageID()} {
		b.WriteByte(' ')
		b.WriteString(nilValue(field))
	}
	b.WriteByte(' ')
	writeStructuredData(&b, event.StructuredData())
	b.WriteByte(' ')
	b.WriteString(event.Message())
	return b.String()
}

// Log writes event followed by a newline.
func (l *Logger) Log(event Event) {
	line := l.Format(event) + "\n"
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.writer, line)
}

func nilValue(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// writeStructuredData writes [sdid k="v" ...] elements with ids and keys
// sorted, or "-" when there are none.
func writeStructuredData(b *strings.Builder, sd map[string]map[string]string) {
	if len(sd) == 0 {
		b.WriteByte('-')
		return
	}
	for _, id := range sortedKeys(sd) {
		params := sd[id]
		b.WriteByte('[')
		b.WriteString(id)
		for _, k := range sortedKeys(params) {
			fmt.Fprintf(b, " %s=%s", k, escapeSDValue(params[k]))
		}
		b.WriteByte(']')
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var sdEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `]`, `\]`)

// escapeSDValue quotes a PARAM-VALUE (RFC5424 section 6.3.3).
func escapeSDValue(value string) string {
	return `"` + sdEscaper.Replace(value) + `"`
}

// DefaultLogger is where Log writes.
var DefaultLogger = NewLogger()

// DefaultStore is opened on first Log; nil unless
// REGISTRAR_AUDIT_DATABASE_URL is set.
var DefaultStore *Store

var (
	enabled       atomic.Bool
	enabledOnce   sync.Once
	storeInitOnce sync.Once
)

// IsEnabled reports whether Log records anything. REGISTRAR_AUDIT_ENABLED
// set to false, 0 or no turns it off.
func IsEnabled() bool {
	enabledOnce.Do(func() {
		switch strings.ToLower(os.Getenv("REGISTRAR_AUDIT_ENABLED")) {
		case "false", "0", "no":
			enabled.Store(false)
		default:
			enabled.Store(true)
		}
	})
	return enabled.Load()
}

// SetEnabled overrides the environment.
func SetEnabled(on bool) {
	enabledOnce.Do(func() {})
	enabled.Store(on)
}

// Log writes event to DefaultLogger and DefaultStore.
func Log(event Event) {
	if !IsEnabled() {
		return
	}
	DefaultLogger.Log(event)

	storeInitOnce.Do(func() {
		var err error
		if DefaultStore, err = NewStore(); err != nil {
			fmt.Fprintf(os.Stderr, "audit: failed to connect to audit database: %v\n", err)
		}
	})
	if DefaultStore == nil {
		return
	}
	if err := DefaultStore.Save(event); err != nil {
		fmt.Fprintf(os.Stderr, "audit: failed to save event: %v\n", err)
	}
}

// Default is the Sink backed by Log.
var Default Sink = SinkFunc(Log)
