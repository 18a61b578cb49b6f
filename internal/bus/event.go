package bus

import "time"

// Event is a state change published by the view model.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}

// Namespaces. Subscribing to a namespace receives every kind below it.
const (
	NSAuth      = "auth."
	NSCompanies = "companies."
	NSFilter    = "filter."
	NSDetail    = "detail."
	NSChat      = "chat."
	NSBusy      = "busy."
	NSFlash     = "flash."
	NSAll       = ""
)

// Event kinds.
const (
	AuthSignedIn  = "auth.signed_in"
	AuthSignedOut = "auth.signed_out"
	AuthFailed    = "auth.failed"

	CompaniesLoaded  = "companies.loaded"
	CompaniesPatched = "companies.patched"

	FilterChanged = "filter.changed"

	DetailOpened = "detail.opened"
	DetailClosed = "detail.closed"
	DetailTab    = "detail.tab"

	ChatLoaded = "chat.loaded"
	ChatDraft  = "chat.draft"

	BusyChanged = "busy.changed"
	BusyLoader  = "busy.loader"
	FlashRaised = "flash.raised"
)
