package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
	repo "github.com/oksasatya/go-complaint-tracker/internal/domain/repository"
)

type memUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	r.seq++
	if u.ID == "" {
		u.ID = fmt.Sprintf("user-%d", r.seq)
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) ListOnboardingIncomplete(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.users {
		if !u.OnboardingComplete {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memUserRepo) setStage(id string, stage int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[id].OnboardingStage = stage
}

// staleUserRepo hands the scan an outdated listing, as if the stage moved
// after the users were fetched.
type staleUserRepo struct {
	*memUserRepo
	listed []*entity.User
}

func (r *staleUserRepo) ListOnboardingIncomplete(context.Context) ([]*entity.User, error) {
	return r.listed, nil
}

type memComplaintRepo struct {
	mu          sync.Mutex
	seq         int
	complaints  map[string]*entity.Complaint
	attachments []*entity.ComplaintAttachment
}

func newMemComplaintRepo() *memComplaintRepo {
	return &memComplaintRepo{complaints: map[string]*entity.Complaint{}}
}

func (r *memComplaintRepo) Create(_ context.Context, c *entity.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c.ID = fmt.Sprintf("complaint-%d", r.seq)
	cp := *c
	r.complaints[c.ID] = &cp
	return nil
}

func (r *memComplaintRepo) GetForUser(_ context.Context, id, userID string) (*entity.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.complaints[id]
	if !ok || c.UserID != userID {
		return nil, repo.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memComplaintRepo) ListByUser(_ context.Context, userID string) ([]*entity.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Complaint
	for _, c := range r.complaints {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memComplaintRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	list, err := r.ListByUser(ctx, userID)
	return len(list), err
}

func (r *memComplaintRepo) UpdateLocked(_ context.Context, id, userID string, fn repo.ComplaintMutator) (*entity.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.complaints[id]
	if !ok || c.UserID != userID {
		return nil, repo.ErrNotFound
	}
	cp := *c
	if err := fn(&cp); err != nil {
		return nil, err
	}
	r.complaints[id] = &cp
	out := cp
	return &out, nil
}

func (r *memComplaintRepo) AddAttachment(_ context.Context, a *entity.ComplaintAttachment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attachments = append(r.attachments, a)
	return nil
}

type reminderKey struct {
	userID string
	stage  int
	level  int
}

type memReminderRepo struct {
	mu      sync.Mutex
	records map[reminderKey]*entity.ReminderRecord
}

func newMemReminderRepo() *memReminderRepo {
	return &memReminderRepo{records: map[reminderKey]*entity.ReminderRecord{}}
}

func (r *memReminderRepo) Get(_ context.Context, userID string, stage, level int) (*entity.ReminderRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[reminderKey{userID, stage, level}]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *memReminderRepo) Claim(_ context.Context, userID string, stage, level int, sentAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := reminderKey{userID, stage, level}
	rec, ok := r.records[k]
	if ok && rec.Sent {
		return false, nil
	}
	if !ok {
		rec = &entity.ReminderRecord{UserID: userID, Stage: stage, ReminderLevel: level}
		r.records[k] = rec
	}
	rec.Sent = true
	rec.SentAt = &sentAt
	return true, nil
}

func (r *memReminderRepo) Release(_ context.Context, userID string, stage, level int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.records[reminderKey{userID, stage, level}]; ok {
		rec.Sent = false
		rec.SentAt = nil
	}
	return nil
}

func (r *memReminderRepo) sent(userID string, stage, level int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[reminderKey{userID, stage, level}]
	return ok && rec.Sent
}

func (r *memReminderRepo) exists(userID string, stage, level int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.records[reminderKey{userID, stage, level}]
	return ok
}

type memNotificationRepo struct {
	mu    sync.Mutex
	seq   int
	items []*entity.Notification
}

func (r *memNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	n.ID = fmt.Sprintf("notification-%d", r.seq)
	cp := *n
	r.items = append(r.items, &cp)
	return nil
}

func (r *memNotificationRepo) MarkSent(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.items {
		if n.ID == id {
			n.IsSent = true
			return nil
		}
	}
	return repo.ErrNotFound
}

func (r *memNotificationRepo) ListByUser(_ context.Context, userID string, limit int) ([]*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Notification
	for i := len(r.items) - 1; i >= 0 && len(out) < limit; i-- {
		if r.items[i].UserID == userID {
			cp := *r.items[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memNotificationRepo) all() []*entity.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Notification, len(r.items))
	copy(out, r.items)
	return out
}

func (r *memNotificationRepo) ofType(t entity.NotificationType) []*entity.Notification {
	var out []*entity.Notification
	for _, n := range r.all() {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

var errDeliveryDown = errors.New("transport down")

type fakeDeliverer struct {
	mu    sync.Mutex
	fail  bool
	calls int
}

func (d *fakeDeliverer) Deliver(context.Context, *entity.Notification) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.fail {
		return errDeliveryDown
	}
	return nil
}

func (d *fakeDeliverer) setFail(v bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fail = v
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
