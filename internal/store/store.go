// internal/store/store.go
package store

// Table names shared across the app.
const (
	TableOutbox    = "outbox"
	TableMessages  = "message_logs"
	TablePartners  = "partners"
	TableFeedback  = "feedback"
	TableReminders = "reminders"
	TableFAQs      = "faqs"
)

// TableStore is the durable backing for all app tables. Writes replace the
// whole table; reading a table that does not exist yet leaves out untouched,
// which for a slice pointer means an empty collection.
type TableStore interface {
	ReadTable(name string, out any) error
	WriteTable(name string, rows any) error
}
