package models

import "strings"

// Tab is one of the fixed admin tabs. Variants are declared only in this package; every
// variant routes to exactly one TabHandler method, so adding a tab forces every handler to
// grow a method for it.
type Tab interface {
	Name() string
	Dispatch(h TabHandler) error
	sealed()
}

// TabHandler receives the per-variant callback from Tab.Dispatch.
type TabHandler interface {
	Members() error
	Events() error
	Staff() error
	Claims() error
	Contacts() error
	AuditLogs() error
}

type (
	MembersTab   struct{}
	EventsTab    struct{}
	StaffTab     struct{}
	ClaimsTab    struct{}
	ContactsTab  struct{}
	AuditLogsTab struct{}
)

func (MembersTab) Name() string   { return "members" }
func (EventsTab) Name() string    { return "events" }
func (StaffTab) Name() string     { return "staff" }
func (ClaimsTab) Name() string    { return "claims" }
func (ContactsTab) Name() string  { return "contacts" }
func (AuditLogsTab) Name() string { return "audit_logs" }

func (MembersTab) Dispatch(h TabHandler) error   { return h.Members() }
func (EventsTab) Dispatch(h TabHandler) error    { return h.Events() }
func (StaffTab) Dispatch(h TabHandler) error     { return h.Staff() }
func (ClaimsTab) Dispatch(h TabHandler) error    { return h.Claims() }
func (ContactsTab) Dispatch(h TabHandler) error  { return h.Contacts() }
func (AuditLogsTab) Dispatch(h TabHandler) error { return h.AuditLogs() }

func (MembersTab) sealed()   {}
func (EventsTab) sealed()    {}
func (StaffTab) sealed()     {}
func (ClaimsTab) sealed()    {}
func (ContactsTab) sealed()  {}
func (AuditLogsTab) sealed() {}

// AllTabs lists the tabs in display order.
func AllTabs() []Tab {
	return []Tab{MembersTab{}, EventsTab{}, StaffTab{}, ClaimsTab{}, ContactsTab{}, AuditLogsTab{}}
}

// ParseTab resolves a tab by name.
func ParseTab(name string) (Tab, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, tab := range AllTabs() {
		if tab.Name() == name {
			return tab, true
		}
	}
	return nil, false
}
