package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/funeral-admin-api/internal/dto"
	"github.com/noah-isme/funeral-admin-api/internal/models"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
	"github.com/noah-isme/funeral-admin-api/pkg/export"
	"github.com/noah-isme/funeral-admin-api/pkg/listing"
)

const exportDateLayout = "2006-01-02"

type auditLister interface {
	List(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error)
}

// TabServiceParams groups constructor dependencies.
type TabServiceParams struct {
	Members    memberLister
	Events     eventLister
	Staff      staffLister
	Claims     claimLister
	Contacts   contactLister
	Audit      auditLister
	ViewStates *ViewStateService
	Logger     *zap.Logger
}

// TabService lists and exports the admin tabs from their full collections.
type TabService struct {
	members    memberLister
	events     eventLister
	staff      staffLister
	claims     claimLister
	contacts   contactLister
	audit      auditLister
	viewStates *ViewStateService
	logger     *zap.Logger
	now        func() time.Time
}

// NewTabService constructs the tab service.
func NewTabService(params TabServiceParams) *TabService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	viewStates := params.ViewStates
	if viewStates == nil {
		viewStates = NewViewStateService(nil, nil, nil, logger)
	}
	return &TabService{
		members:    params.Members,
		events:     params.Events,
		staff:      params.Staff,
		claims:     params.Claims,
		contacts:   params.Contacts,
		audit:      params.Audit,
		viewStates: viewStates,
		logger:     logger,
		now:        time.Now,
	}
}

// ListTab applies update to the caller's view of tab and returns the visible page.
func (s *TabService) ListTab(ctx context.Context, userID string, tab models.Tab, update models.ViewStateUpdate) (*dto.TabPage, error) {
	state, err := s.viewStates.Sync(ctx, userID, tab, update)
	if err != nil {
		return nil, err
	}
	run := &tabRun{ctx: ctx, svc: s, query: queryFromState(state), paginate: true}
	if err := tab.Dispatch(run); err != nil {
		return nil, err
	}
	run.page.Tab = tab.Name()
	run.page.Selected = state.Selected
	return &run.page, nil
}

// ExportTab renders every record of tab matching query, ignoring paging.
func (s *TabService) ExportTab(ctx context.Context, tab models.Tab, query listing.Query, format export.Format) (*dto.TabExport, error) {
	run := &tabRun{ctx: ctx, svc: s, query: query}
	if err := tab.Dispatch(run); err != nil {
		return nil, err
	}
	run.dataset.Title = "Funeral admin " + tab.Name()
	payload, err := export.NewRenderer(format).Render(run.dataset)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render export")
	}
	return &dto.TabExport{
		FileName:    fmt.Sprintf("%s_%s.%s", tab.Name(), s.now().Format(exportDateLayout), format),
		ContentType: format.ContentType(),
		Payload:     payload,
	}, nil
}

func queryFromState(state models.ViewState) listing.Query {
	return listing.Query{
		Search:   state.Search,
		Status:   state.Status,
		Category: state.Category,
		Page:     state.Page,
		PageSize: state.PageSize,
	}
}

// tabRun is the TabHandler for one list or export call.
type tabRun struct {
	ctx      context.Context
	svc      *TabService
	query    listing.Query
	paginate bool

	page    dto.TabPage
	dataset export.Dataset
}

func collect[T any](run *tabRun, items []T, acc listing.Accessors[T], headers []string, row func(T) map[string]string) {
	if run.paginate {
		result := listing.Apply(items, run.query, acc)
		run.page = dto.TabPage{
			Items:     result.Items,
			Total:     result.Total,
			Page:      result.Page,
			PageSize:  result.PageSize,
			PageCount: result.PageCount,
			Buttons:   result.Buttons,
		}
		return
	}
	filtered := listing.Filter(items, run.query, acc)
	rows := make([]map[string]string, 0, len(filtered))
	for _, item := range filtered {
		rows = append(rows, row(item))
	}
	run.dataset = export.Dataset{Headers: headers, Rows: rows}
}

func (r *tabRun) Members() error {
	members, err := r.svc.members.List(r.ctx, models.MemberFilter{})
	if err != nil {
		return appErrors.Internal(err, "failed to list members")
	}
	collect(r, members, listing.Accessors[models.Member]{
		SearchFields: func(m models.Member) []string {
			return []string{m.FirstName, m.LastName, m.MemberNumber, m.Phone, stringValue(m.Email)}
		},
		Status:   func(m models.Member) string { return string(m.Status) },
		Category: func(m models.Member) string { return string(m.PolicyTier) },
	}, []string{"Member Number", "Name", "ID Number", "Phone", "Email", "Tier", "Cover Amount", "Status", "Joined"},
		func(m models.Member) map[string]string {
			return map[string]string{
				"Member Number": m.MemberNumber,
				"Name":          m.FullName(),
				"ID Number":     m.IDNumber,
				"Phone":         m.Phone,
				"Email":         stringValue(m.Email),
				"Tier":          string(m.PolicyTier),
				"Cover Amount":  formatAmount(m.CoverAmount),
				"Status":        string(m.Status),
				"Joined":        formatDate(&m.JoinedDate),
			}
		})
	return nil
}

func (r *tabRun) Events() error {
	events, err := r.svc.events.List(r.ctx, models.EventFilter{})
	if err != nil {
		return appErrors.Internal(err, "failed to list events")
	}
	collect(r, events, listing.Accessors[models.BurialEvent]{
		SearchFields: func(e models.BurialEvent) []string {
			return []string{e.EventNumber, e.DeceasedName, e.Location}
		},
		Status: func(e models.BurialEvent) string { return string(e.Status) },
	}, []string{"Event Number", "Deceased", "Date", "Time", "Location", "Status", "Progress"},
		func(e models.BurialEvent) map[string]string {
			return map[string]string{
				"Event Number": e.EventNumber,
				"Deceased":     e.DeceasedName,
				"Date":         formatDate(&e.EventDate),
				"Time":         e.EventTime,
				"Location":     e.Location,
				"Status":       string(e.Status),
				"Progress":     strconv.Itoa(e.Progress) + "%",
			}
		})
	return nil
}

func (r *tabRun) Staff() error {
	staff, err := r.svc.staff.List(r.ctx, models.StaffFilter{})
	if err != nil {
		return appErrors.Internal(err, "failed to list staff")
	}
	collect(r, staff, listing.Accessors[models.Staff]{
		SearchFields: func(m models.Staff) []string {
			return []string{m.FirstName, m.LastName, m.EmployeeNumber, m.Role, stringValue(m.Email)}
		},
		Status:   func(m models.Staff) string { return string(m.Status) },
		Category: func(m models.Staff) string { return m.Role },
	}, []string{"Employee Number", "Name", "Role", "Phone", "Email", "Status", "Completion Rate"},
		func(m models.Staff) map[string]string {
			return map[string]string{
				"Employee Number": m.EmployeeNumber,
				"Name":            m.FullName(),
				"Role":            m.Role,
				"Phone":           m.Phone,
				"Email":           stringValue(m.Email),
				"Status":          string(m.Status),
				"Completion Rate": strconv.FormatFloat(m.CompletionRate, 'f', 1, 64) + "%",
			}
		})
	return nil
}

func (r *tabRun) Claims() error {
	claims, err := r.svc.claims.List(r.ctx, models.ClaimFilter{})
	if err != nil {
		return appErrors.Internal(err, "failed to list claims")
	}
	collect(r, claims, listing.Accessors[models.Claim]{
		SearchFields: func(c models.Claim) []string {
			return []string{c.ClaimNumber, c.DeceasedName, stringValue(c.Notes)}
		},
		Status: func(c models.Claim) string { return string(c.Status) },
	}, []string{"Claim Number", "Deceased", "Amount", "Status", "Submitted", "Processed", "Notes"},
		func(c models.Claim) map[string]string {
			return map[string]string{
				"Claim Number": c.ClaimNumber,
				"Deceased":     c.DeceasedName,
				"Amount":       formatAmount(c.Amount),
				"Status":       string(c.Status),
				"Submitted":    formatDate(&c.SubmittedDate),
				"Processed":    formatDate(c.ProcessedDate),
				"Notes":        stringValue(c.Notes),
			}
		})
	return nil
}

func (r *tabRun) Contacts() error {
	contacts, err := r.svc.contacts.List(r.ctx, models.ContactFilter{})
	if err != nil {
		return appErrors.Internal(err, "failed to list contacts")
	}
	collect(r, contacts, listing.Accessors[models.Contact]{
		SearchFields: func(c models.Contact) []string {
			return []string{c.Name, stringValue(c.Relationship), c.Phone, stringValue(c.Email)}
		},
		Category: func(c models.Contact) string { return string(c.Type) },
	}, []string{"Name", "Type", "Relationship", "Phone", "Email", "Address", "Events"},
		func(c models.Contact) map[string]string {
			return map[string]string{
				"Name":         c.Name,
				"Type":         string(c.Type),
				"Relationship": stringValue(c.Relationship),
				"Phone":        c.Phone,
				"Email":        stringValue(c.Email),
				"Address":      stringValue(c.Address),
				"Events":       strconv.Itoa(c.AssociatedEvents),
			}
		})
	return nil
}

func (r *tabRun) AuditLogs() error {
	entries, err := r.svc.audit.List(r.ctx, models.AuditFilter{})
	if err != nil {
		return appErrors.Internal(err, "failed to list audit logs")
	}
	collect(r, entries, listing.Accessors[models.AuditLog]{
		SearchFields: func(a models.AuditLog) []string { return []string{a.Action, a.EntityType} },
		Status:       func(a models.AuditLog) string { return a.Action },
		Category:     func(a models.AuditLog) string { return a.EntityType },
	}, []string{"Date", "User", "Action", "Entity Type", "Entity ID"},
		func(a models.AuditLog) map[string]string {
			return map[string]string{
				"Date":        a.CreatedAt.UTC().Format(time.RFC3339),
				"User":        a.UserID,
				"Action":      a.Action,
				"Entity Type": a.EntityType,
				"Entity ID":   a.EntityID,
			}
		})
	return nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(exportDateLayout)
}
