package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/noah-isme/funeral-admin-api/internal/models"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
)

var errStore = errors.New("store unavailable")

func actorContext(userID string) context.Context {
	return models.WithActor(context.Background(), &models.JWTClaims{UserID: userID, AppRole: models.RoleManager})
}

type fakeMemberRepo struct {
	items      map[string]*models.Member
	order      []string
	listErr    error
	failDelete map[string]error
	seq        int
}

func newFakeMemberRepo(members ...models.Member) *fakeMemberRepo {
	repo := &fakeMemberRepo{items: map[string]*models.Member{}}
	for i := range members {
		m := members[i]
		repo.items[m.ID] = &m
		repo.order = append(repo.order, m.ID)
	}
	return repo
}

func (r *fakeMemberRepo) List(ctx context.Context, filter models.MemberFilter) ([]models.Member, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]models.Member, 0, len(r.order))
	for _, id := range r.order {
		if m, ok := r.items[id]; ok {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMemberRepo) FindByID(ctx context.Context, id string) (*models.Member, error) {
	if m, ok := r.items[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeMemberRepo) ExistsByMemberNumber(ctx context.Context, number, excludeID string) (bool, error) {
	for id, m := range r.items {
		if m.MemberNumber == number && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeMemberRepo) Create(ctx context.Context, member *models.Member) error {
	r.seq++
	if member.ID == "" {
		member.ID = fmt.Sprintf("member-%d", r.seq)
	}
	cp := *member
	r.items[member.ID] = &cp
	r.order = append(r.order, member.ID)
	return nil
}

func (r *fakeMemberRepo) Update(ctx context.Context, member *models.Member) error {
	if _, ok := r.items[member.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *member
	r.items[member.ID] = &cp
	return nil
}

func (r *fakeMemberRepo) UpdateStatus(ctx context.Context, id string, status models.MemberStatus) error {
	m, ok := r.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	m.Status = status
	return nil
}

func (r *fakeMemberRepo) Delete(ctx context.Context, id string) error {
	if err := r.failDelete[id]; err != nil {
		return err
	}
	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

type fakeClaimRepo struct {
	items   map[string]*models.Claim
	order   []string
	listErr error
	seq     int
}

func newFakeClaimRepo(claims ...models.Claim) *fakeClaimRepo {
	repo := &fakeClaimRepo{items: map[string]*models.Claim{}}
	for i := range claims {
		c := claims[i]
		repo.items[c.ID] = &c
		repo.order = append(repo.order, c.ID)
	}
	return repo
}

func (r *fakeClaimRepo) List(ctx context.Context, filter models.ClaimFilter) ([]models.Claim, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]models.Claim, 0, len(r.order))
	for _, id := range r.order {
		if c, ok := r.items[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeClaimRepo) FindByID(ctx context.Context, id string) (*models.Claim, error) {
	if c, ok := r.items[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeClaimRepo) Create(ctx context.Context, claim *models.Claim) error {
	r.seq++
	if claim.ID == "" {
		claim.ID = fmt.Sprintf("claim-%d", r.seq)
	}
	cp := *claim
	r.items[claim.ID] = &cp
	r.order = append(r.order, claim.ID)
	return nil
}

func (r *fakeClaimRepo) Update(ctx context.Context, claim *models.Claim) error {
	if _, ok := r.items[claim.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *claim
	r.items[claim.ID] = &cp
	return nil
}

func (r *fakeClaimRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

type fakeEventRepo struct {
	items   map[string]*models.BurialEvent
	order   []string
	listErr error
	seq     int
}

func newFakeEventRepo(events ...models.BurialEvent) *fakeEventRepo {
	repo := &fakeEventRepo{items: map[string]*models.BurialEvent{}}
	for i := range events {
		e := events[i]
		repo.items[e.ID] = &e
		repo.order = append(repo.order, e.ID)
	}
	return repo
}

func (r *fakeEventRepo) List(ctx context.Context, filter models.EventFilter) ([]models.BurialEvent, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]models.BurialEvent, 0, len(r.order))
	for _, id := range r.order {
		if e, ok := r.items[id]; ok {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) FindByID(ctx context.Context, id string) (*models.BurialEvent, error) {
	if e, ok := r.items[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeEventRepo) Create(ctx context.Context, event *models.BurialEvent) error {
	r.seq++
	if event.ID == "" {
		event.ID = fmt.Sprintf("event-%d", r.seq)
	}
	cp := *event
	r.items[event.ID] = &cp
	r.order = append(r.order, event.ID)
	return nil
}

func (r *fakeEventRepo) Update(ctx context.Context, event *models.BurialEvent) error {
	if _, ok := r.items[event.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *event
	r.items[event.ID] = &cp
	return nil
}

func (r *fakeEventRepo) UpdateStatus(ctx context.Context, id string, status models.EventStatus) error {
	e, ok := r.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	e.Status = status
	return nil
}

func (r *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

type fakeEventStaffRepo struct {
	assignments []models.EventStaffAssignment
}

func (r *fakeEventStaffRepo) ListByEvent(ctx context.Context, eventID string) ([]models.EventStaffAssignment, error) {
	out := make([]models.EventStaffAssignment, 0)
	for _, a := range r.assignments {
		if a.EventID == eventID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeEventStaffRepo) Exists(ctx context.Context, eventID, staffID string) (bool, error) {
	for _, a := range r.assignments {
		if a.EventID == eventID && a.StaffID == staffID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEventStaffRepo) Assign(ctx context.Context, assignment *models.EventStaffAssignment) error {
	r.assignments = append(r.assignments, *assignment)
	return nil
}

func (r *fakeEventStaffRepo) Unassign(ctx context.Context, eventID, staffID string) error {
	for i, a := range r.assignments {
		if a.EventID == eventID && a.StaffID == staffID {
			r.assignments = append(r.assignments[:i], r.assignments[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

type fakeStaffRepo struct {
	items   map[string]*models.Staff
	order   []string
	listErr error
	seq     int
}

func newFakeStaffRepo(staff ...models.Staff) *fakeStaffRepo {
	repo := &fakeStaffRepo{items: map[string]*models.Staff{}}
	for i := range staff {
		s := staff[i]
		repo.items[s.ID] = &s
		repo.order = append(repo.order, s.ID)
	}
	return repo
}

func (r *fakeStaffRepo) List(ctx context.Context, filter models.StaffFilter) ([]models.Staff, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]models.Staff, 0, len(r.order))
	for _, id := range r.order {
		if s, ok := r.items[id]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeStaffRepo) FindByID(ctx context.Context, id string) (*models.Staff, error) {
	if s, ok := r.items[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeStaffRepo) FindByUserID(ctx context.Context, userID string) (*models.Staff, error) {
	for _, s := range r.items {
		if s.UserID != nil && *s.UserID == userID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeStaffRepo) Create(ctx context.Context, member *models.Staff) error {
	r.seq++
	if member.ID == "" {
		member.ID = fmt.Sprintf("staff-%d", r.seq)
	}
	cp := *member
	r.items[member.ID] = &cp
	r.order = append(r.order, member.ID)
	return nil
}

func (r *fakeStaffRepo) Update(ctx context.Context, member *models.Staff) error {
	if _, ok := r.items[member.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *member
	r.items[member.ID] = &cp
	return nil
}

func (r *fakeStaffRepo) UpdateStatus(ctx context.Context, id string, status models.StaffStatus) error {
	s, ok := r.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	s.Status = status
	return nil
}

func (r *fakeStaffRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

type fakeContactRepo struct {
	items   map[string]*models.Contact
	order   []string
	listErr error
	seq     int
}

func newFakeContactRepo(contacts ...models.Contact) *fakeContactRepo {
	repo := &fakeContactRepo{items: map[string]*models.Contact{}}
	for i := range contacts {
		c := contacts[i]
		repo.items[c.ID] = &c
		repo.order = append(repo.order, c.ID)
	}
	return repo
}

func (r *fakeContactRepo) List(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]models.Contact, 0, len(r.order))
	for _, id := range r.order {
		if c, ok := r.items[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeContactRepo) FindByID(ctx context.Context, id string) (*models.Contact, error) {
	if c, ok := r.items[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeContactRepo) Create(ctx context.Context, contact *models.Contact) error {
	r.seq++
	if contact.ID == "" {
		contact.ID = fmt.Sprintf("contact-%d", r.seq)
	}
	cp := *contact
	r.items[contact.ID] = &cp
	r.order = append(r.order, contact.ID)
	return nil
}

func (r *fakeContactRepo) Update(ctx context.Context, contact *models.Contact) error {
	if _, ok := r.items[contact.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *contact
	r.items[contact.ID] = &cp
	return nil
}

func (r *fakeContactRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

type fakeChecklistRepo struct {
	items    map[string]*models.ChecklistItem
	order    []string
	batchErr error
	batches  int
	listErr  error
}

func newFakeChecklistRepo(items ...models.ChecklistItem) *fakeChecklistRepo {
	repo := &fakeChecklistRepo{items: map[string]*models.ChecklistItem{}}
	for i := range items {
		item := items[i]
		repo.items[item.ID] = &item
		repo.order = append(repo.order, item.ID)
	}
	return repo
}

func (r *fakeChecklistRepo) List(ctx context.Context, filter models.ChecklistFilter) ([]models.ChecklistItem, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]models.ChecklistItem, 0, len(r.order))
	for _, id := range r.order {
		item, ok := r.items[id]
		if !ok || (filter.EventID != "" && item.EventID != filter.EventID) {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (r *fakeChecklistRepo) CountByEvent(ctx context.Context, eventID string) (int, error) {
	count := 0
	for _, item := range r.items {
		if item.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func (r *fakeChecklistRepo) FindByID(ctx context.Context, id string) (*models.ChecklistItem, error) {
	if item, ok := r.items[id]; ok {
		cp := *item
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeChecklistRepo) CreateBatch(ctx context.Context, items []models.ChecklistItem) error {
	if r.batchErr != nil {
		return r.batchErr
	}
	r.batches++
	for i := range items {
		item := items[i]
		if item.ID == "" {
			item.ID = fmt.Sprintf("%s-item-%d", item.EventID, len(r.order)+1)
		}
		r.items[item.ID] = &item
		r.order = append(r.order, item.ID)
	}
	return nil
}

func (r *fakeChecklistRepo) Update(ctx context.Context, item *models.ChecklistItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeChecklistRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

type fakeAuditRepo struct {
	mu        sync.Mutex
	entries   []models.AuditLog
	createErr error
	lastQuery models.AuditFilter
}

func (r *fakeAuditRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeAuditRepo) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastQuery = filter
	out := make([]models.AuditLog, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

func (r *fakeAuditRepo) snapshot() []models.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.AuditLog, len(r.entries))
	copy(out, r.entries)
	return out
}

// recordingAudit captures Log calls synchronously.
type recordingAudit struct {
	mu      sync.Mutex
	actions []string
}

func (a *recordingAudit) Log(ctx context.Context, action, entityType, entityID string, oldValues, newValues interface{}) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action+":"+entityType+":"+entityID)
}

type fakeDocumentRepo struct {
	items     map[string]*models.Document
	createErr error
	seq       int
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{items: map[string]*models.Document{}}
}

func (r *fakeDocumentRepo) Create(ctx context.Context, doc *models.Document) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	doc.ID = fmt.Sprintf("doc-%d", r.seq)
	cp := *doc
	r.items[doc.ID] = &cp
	return nil
}

func (r *fakeDocumentRepo) FindByID(ctx context.Context, id string) (*models.Document, error) {
	if d, ok := r.items[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeDocumentRepo) ListByEntity(ctx context.Context, entityType, entityID string) ([]models.Document, error) {
	out := make([]models.Document, 0)
	for _, d := range r.items {
		if d.EntityType == entityType && d.EntityID == entityID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

type fakeBlobStore struct {
	objects   map[string][]byte
	removed   []string
	removeErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}}
}

func (b *fakeBlobStore) Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.objects[objectPath] = data
	return nil
}

func (b *fakeBlobStore) Download(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	data, ok := b.objects[objectPath]
	if !ok {
		return nil, errors.New("missing")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (b *fakeBlobStore) Remove(ctx context.Context, objectPaths ...string) error {
	b.removed = append(b.removed, objectPaths...)
	if b.removeErr != nil {
		return b.removeErr
	}
	for _, p := range objectPaths {
		delete(b.objects, p)
	}
	return nil
}

func (b *fakeBlobStore) PublicURL(objectPath string) string {
	return "https://blobs.test/" + objectPath
}

type fakeViewStateStore struct {
	states map[string]models.ViewState
	getErr error
	saves  int
}

func newFakeViewStateStore() *fakeViewStateStore {
	return &fakeViewStateStore{states: map[string]models.ViewState{}}
}

func (s *fakeViewStateStore) Get(ctx context.Context, userID string) (*models.ViewState, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	state, ok := s.states[userID]
	if !ok {
		return nil, appErrors.ErrCacheMiss
	}
	state.Selected = append([]string{}, state.Selected...)
	return &state, nil
}

func (s *fakeViewStateStore) Save(ctx context.Context, userID string, state *models.ViewState) error {
	s.saves++
	cp := *state
	cp.Selected = append([]string{}, state.Selected...)
	s.states[userID] = cp
	return nil
}

func (s *fakeViewStateStore) Delete(ctx context.Context, userID string) error {
	delete(s.states, userID)
	return nil
}

type fakeRoleRepo struct {
	roles    map[string]models.UserRole
	findErr  error
	assigned map[string]models.UserRole
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[string]models.UserRole{}, assigned: map[string]models.UserRole{}}
}

func (r *fakeRoleRepo) FindRole(ctx context.Context, userID string) (models.UserRole, error) {
	if r.findErr != nil {
		return "", r.findErr
	}
	role, ok := r.roles[userID]
	if !ok {
		return "", sql.ErrNoRows
	}
	return role, nil
}

func (r *fakeRoleRepo) AssignRole(ctx context.Context, userID string, role models.UserRole) error {
	r.roles[userID] = role
	r.assigned[userID] = role
	return nil
}
