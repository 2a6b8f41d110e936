package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"couriertrack/internal/courier/ports"
	"couriertrack/internal/domain"
	apperrors "couriertrack/internal/errors"
)

// memState is the full content of the fake database. Transactions work on a
// clone and swap it in on commit.
type memState struct {
	nextID   uint
	users    map[uint]domain.User
	admins   map[uint]domain.Admin
	couriers map[uint]domain.Courier
	history  []domain.DeliveryHistoryEntry
	audit    []domain.AuditEntry
	comments []domain.Comment
}

func newMemState() *memState {
	return &memState{
		users:    map[uint]domain.User{},
		admins:   map[uint]domain.Admin{},
		couriers: map[uint]domain.Courier{},
	}
}

func (s *memState) clone() *memState {
	c := &memState{
		nextID:   s.nextID,
		users:    make(map[uint]domain.User, len(s.users)),
		admins:   make(map[uint]domain.Admin, len(s.admins)),
		couriers: make(map[uint]domain.Courier, len(s.couriers)),
		history:  append([]domain.DeliveryHistoryEntry(nil), s.history...),
		audit:    append([]domain.AuditEntry(nil), s.audit...),
		comments: append([]domain.Comment(nil), s.comments...),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.admins {
		c.admins[k] = v
	}
	for k, v := range s.couriers {
		c.couriers[k] = v
	}
	return c
}

func (s *memState) id() uint {
	s.nextID++
	return s.nextID
}

// fakeStore serializes write transactions with a mutex, which gives the same
// guarantee as the row lock taken by the MySQL store.
type fakeStore struct {
	mu    sync.RWMutex
	state *memState

	// failOn makes the named repository operation fail inside transactions.
	failOn string
	txs    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{state: newMemState()}
}

func (f *fakeStore) Repositories() ports.Repositories {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return &memRepos{state: f.state.clone()}
}

func (f *fakeStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos ports.Repositories) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txs++

	work := f.state.clone()
	if err := fn(ctx, &memRepos{state: work, failOn: f.failOn}); err != nil {
		return err
	}
	f.state = work
	return nil
}

func (f *fakeStore) WithinReadTx(ctx context.Context, fn func(ctx context.Context, repos ports.Repositories) error) error {
	f.mu.RLock()
	snapshot := f.state.clone()
	f.mu.RUnlock()

	return fn(ctx, &memRepos{state: snapshot, failOn: f.failOn})
}

func (f *fakeStore) snapshot() *memState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state.clone()
}

func (f *fakeStore) addUser(name, email string) uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.state.id()
	f.state.users[id] = domain.User{ID: id, Name: name, Email: email, CreatedAt: time.Now()}
	return id
}

func (f *fakeStore) addAdmin(name, email string) uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.state.id()
	f.state.admins[id] = domain.Admin{ID: id, Name: name, Email: email, Role: domain.DefaultAdminRole, CreatedAt: time.Now()}
	return id
}

type memRepos struct {
	state  *memState
	failOn string
}

func (r *memRepos) Couriers() ports.CourierRepository { return &memCouriers{r} }
func (r *memRepos) History() ports.HistoryRepository  { return &memHistory{r} }
func (r *memRepos) Audit() ports.AuditRepository      { return &memAudit{r} }
func (r *memRepos) Comments() ports.CommentRepository { return &memComments{r} }
func (r *memRepos) Users() ports.UserLookup           { return &memUsers{r} }
func (r *memRepos) Admins() ports.AdminLookup         { return &memAdmins{r} }

func (r *memRepos) check(op string) error {
	if r.failOn == op {
		return fmt.Errorf("%s: simulated storage failure", op)
	}
	return nil
}

type memCouriers struct{ *memRepos }

func (r *memCouriers) Insert(ctx context.Context, c domain.Courier) (uint, error) {
	if err := r.check("couriers.insert"); err != nil {
		return 0, err
	}
	for _, existing := range r.state.couriers {
		if existing.BillNumber == c.BillNumber {
			return 0, apperrors.NewConflictError("duplicate bill number")
		}
	}
	c.ID = r.state.id()
	r.state.couriers[c.ID] = c
	return c.ID, nil
}

func (r *memCouriers) FindByID(ctx context.Context, id uint) (*domain.Courier, error) {
	c, ok := r.state.couriers[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("courier with id %d not found", id))
	}
	user := r.state.users[c.CustomerID]
	c.CustomerName = user.Name
	c.CustomerEmail = user.Email
	if admin, ok := r.state.admins[c.AdminID]; ok {
		c.AdminName = &admin.Name
		c.AdminEmail = &admin.Email
	}
	return &c, nil
}

func (r *memCouriers) FindByIDForUpdate(ctx context.Context, id uint) (*domain.Courier, error) {
	return r.FindByID(ctx, id)
}

func (r *memCouriers) FindByBillAndCustomerName(ctx context.Context, billNumber, namePattern string) (*domain.Courier, error) {
	ids := make([]uint, 0, len(r.state.couriers))
	for id := range r.state.couriers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		c := r.state.couriers[id]
		name := r.state.users[c.CustomerID].Name
		if c.BillNumber == billNumber && strings.Contains(strings.ToLower(name), strings.ToLower(namePattern)) {
			return r.FindByID(ctx, id)
		}
	}
	return nil, apperrors.NewNotFoundError("no courier found with this bill number and name")
}

func (r *memCouriers) ExistsByBillNumber(ctx context.Context, billNumber string) (bool, error) {
	for _, c := range r.state.couriers {
		if c.BillNumber == billNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *memCouriers) List(ctx context.Context) ([]domain.Courier, error) {
	out := []domain.Courier{}
	for id := range r.state.couriers {
		c, _ := r.FindByID(ctx, id)
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memCouriers) CountByCustomer(ctx context.Context, customerID uint) (int, error) {
	count := 0
	for _, c := range r.state.couriers {
		if c.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

func (r *memCouriers) UpdateStatus(ctx context.Context, id uint, status domain.Status, updatedAt time.Time) error {
	if err := r.check("couriers.update_status"); err != nil {
		return err
	}
	c, ok := r.state.couriers[id]
	if !ok {
		return apperrors.NewNotFoundError("courier not found")
	}
	c.Status = status
	c.UpdatedAt = updatedAt
	r.state.couriers[id] = c
	return nil
}

func (r *memCouriers) Delete(ctx context.Context, id uint) error {
	if err := r.check("couriers.delete"); err != nil {
		return err
	}
	if _, ok := r.state.couriers[id]; !ok {
		return apperrors.NewNotFoundError("courier not found")
	}
	delete(r.state.couriers, id)
	return nil
}

type memHistory struct{ *memRepos }

func (r *memHistory) Insert(ctx context.Context, e domain.DeliveryHistoryEntry) (uint, error) {
	if err := r.check("history.insert"); err != nil {
		return 0, err
	}
	e.ID = r.state.id()
	r.state.history = append(r.state.history, e)
	return e.ID, nil
}

func (r *memHistory) ListByCourier(ctx context.Context, courierID uint) ([]domain.DeliveryHistoryEntry, error) {
	out := []domain.DeliveryHistoryEntry{}
	for i := len(r.state.history) - 1; i >= 0; i-- {
		if r.state.history[i].CourierID == courierID {
			out = append(out, r.state.history[i])
		}
	}
	return out, nil
}

func (r *memHistory) DeleteByCourier(ctx context.Context, courierID uint) (int64, error) {
	var kept []domain.DeliveryHistoryEntry
	var n int64
	for _, e := range r.state.history {
		if e.CourierID == courierID {
			n++
			continue
		}
		kept = append(kept, e)
	}
	r.state.history = kept
	return n, nil
}

type memAudit struct{ *memRepos }

func (r *memAudit) Insert(ctx context.Context, e domain.AuditEntry) (uint, error) {
	if err := r.check("audit.insert"); err != nil {
		return 0, err
	}
	e.ID = r.state.id()
	r.state.audit = append(r.state.audit, e)
	return e.ID, nil
}

func (r *memAudit) ListByCourier(ctx context.Context, courierID uint) ([]domain.AuditEntry, error) {
	out := []domain.AuditEntry{}
	for i := len(r.state.audit) - 1; i >= 0; i-- {
		if r.state.audit[i].CourierID == courierID {
			out = append(out, r.state.audit[i])
		}
	}
	return out, nil
}

func (r *memAudit) DeleteByCourier(ctx context.Context, courierID uint) (int64, error) {
	var kept []domain.AuditEntry
	var n int64
	for _, e := range r.state.audit {
		if e.CourierID == courierID {
			n++
			continue
		}
		kept = append(kept, e)
	}
	r.state.audit = kept
	return n, nil
}

type memComments struct{ *memRepos }

func (r *memComments) Insert(ctx context.Context, c domain.Comment) (uint, error) {
	if err := r.check("comments.insert"); err != nil {
		return 0, err
	}
	c.ID = r.state.id()
	r.state.comments = append(r.state.comments, c)
	return c.ID, nil
}

func (r *memComments) ListByCourier(ctx context.Context, courierID uint) ([]domain.Comment, error) {
	out := []domain.Comment{}
	for i := len(r.state.comments) - 1; i >= 0; i-- {
		if r.state.comments[i].CourierID == courierID {
			out = append(out, r.state.comments[i])
		}
	}
	return out, nil
}

func (r *memComments) DeleteByCourier(ctx context.Context, courierID uint) (int64, error) {
	var kept []domain.Comment
	var n int64
	for _, c := range r.state.comments {
		if c.CourierID == courierID {
			n++
			continue
		}
		kept = append(kept, c)
	}
	r.state.comments = kept
	return n, nil
}

type memUsers struct{ *memRepos }

func (r *memUsers) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	u, ok := r.state.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %d not found", id))
	}
	return &u, nil
}

type memAdmins struct{ *memRepos }

func (r *memAdmins) FindByID(ctx context.Context, id uint) (*domain.Admin, error) {
	a, ok := r.state.admins[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("admin with id %d not found", id))
	}
	return &a, nil
}

func (r *memAdmins) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	for _, a := range r.state.admins {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("admin with email %s not found", email))
}
