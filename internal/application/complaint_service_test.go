package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/complaint"
	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
)

type complaintFixture struct {
	svc       *ComplaintService
	repo      *memComplaintRepo
	notes     *memNotificationRepo
	deliverer *fakeDeliverer
	clock     time.Time
}

func newComplaintFixture() *complaintFixture {
	f := &complaintFixture{
		repo:      newMemComplaintRepo(),
		notes:     &memNotificationRepo{},
		deliverer: &fakeDeliverer{},
		clock:     time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	sink := NewNotificationService(f.notes, f.deliverer, nil)
	f.svc = NewComplaintService(f.repo, sink, nil, nil, "", nil, "")
	f.svc.Now = func() time.Time { return f.clock }
	return f
}

func (f *complaintFixture) advance(d time.Duration) { f.clock = f.clock.Add(d) }

func (f *complaintFixture) feedback(t *testing.T, userID string) *entity.Complaint {
	t.Helper()
	c, err := f.svc.CreateComplaint(context.Background(), userID, entity.ComplaintTypeFeedback, entity.ComplaintDetails{"message": "great"})
	require.NoError(t, err)
	return c
}

func TestCreateComplaint_StartsRaised(t *testing.T) {
	f := newComplaintFixture()
	c := f.feedback(t, "u1")

	assert.Equal(t, entity.StatusRaised, c.Status)
	assert.Equal(t, f.clock, c.CreatedAt)
	assert.Equal(t, c.CreatedAt, c.StatusUpdatedAt)
	assert.NotEmpty(t, c.ID)
}

func TestCreateComplaint_Validation(t *testing.T) {
	f := newComplaintFixture()
	ctx := context.Background()

	_, err := f.svc.CreateComplaint(ctx, "u1", entity.ComplaintType("refund"), entity.ComplaintDetails{})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "complaint_type", ve.Field)

	_, err = f.svc.CreateComplaint(ctx, "u1", entity.ComplaintTypeBillingIssue, entity.ComplaintDetails{
		"invoice_id": "INV-1",
		"amount":     12.5,
	})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "currency", ve.Field)
	var mf *complaint.MissingFieldError
	assert.ErrorAs(t, err, &mf)

	_, err = f.svc.CreateComplaint(ctx, "u1", entity.ComplaintTypeTechnicalIssue, nil)
	require.ErrorAs(t, err, &ve)
	assert.ErrorIs(t, err, complaint.ErrDetailsRequired)

	assert.Empty(t, f.repo.complaints)
}

func TestTransitionComplaint_NotifiesOnlyAnnouncedStatuses(t *testing.T) {
	f := newComplaintFixture()
	ctx := context.Background()
	c := f.feedback(t, "u1")

	steps := []entity.ComplaintStatus{
		entity.StatusInProgress,
		entity.StatusWaitingOnUser,
		entity.StatusResolved,
		entity.StatusClosed,
	}
	for _, s := range steps {
		f.advance(time.Minute)
		got, err := f.svc.TransitionComplaint(ctx, c.ID, "u1", s)
		require.NoError(t, err, s)
		assert.Equal(t, s, got.Status)
		assert.Equal(t, f.clock, got.StatusUpdatedAt)
	}

	notes := f.notes.all()
	require.Len(t, notes, 2)
	assert.Equal(t, entity.StatusInProgress, notes[0].Metadata.NewStatus)
	assert.Equal(t, entity.StatusRaised, notes[0].Metadata.OldStatus)
	assert.Equal(t, entity.StatusResolved, notes[1].Metadata.NewStatus)
	for _, n := range notes {
		assert.Equal(t, "u1", n.UserID)
		assert.Equal(t, c.ID, n.Metadata.ComplaintID)
		assert.True(t, n.IsSent)
	}
}

func TestTransitionComplaint_Errors(t *testing.T) {
	f := newComplaintFixture()
	ctx := context.Background()
	c := f.feedback(t, "u1")

	_, err := f.svc.TransitionComplaint(ctx, "missing", "u1", entity.StatusClosed)
	assert.ErrorIs(t, err, ErrComplaintNotFound)

	_, err = f.svc.TransitionComplaint(ctx, c.ID, "someone-else", entity.StatusClosed)
	assert.ErrorIs(t, err, ErrComplaintNotFound)

	_, err = f.svc.TransitionComplaint(ctx, c.ID, "u1", entity.ComplaintStatus("reopened"))
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = f.svc.TransitionComplaint(ctx, c.ID, "u1", entity.StatusResolved)
	var ite *complaint.InvalidTransitionError
	require.ErrorAs(t, err, &ite)
	assert.Equal(t, entity.StatusRaised, ite.From)
	assert.Equal(t, entity.StatusResolved, ite.To)

	stored, err := f.repo.GetForUser(ctx, c.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRaised, stored.Status)
	assert.Empty(t, f.notes.all())
}

func TestTransitionComplaint_DispatchFailureKeepsTransition(t *testing.T) {
	f := newComplaintFixture()
	ctx := context.Background()
	c := f.feedback(t, "u1")
	f.deliverer.setFail(true)

	got, err := f.svc.TransitionComplaint(ctx, c.ID, "u1", entity.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInProgress, got.Status)

	stored, err := f.repo.GetForUser(ctx, c.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInProgress, stored.Status)

	notes := f.notes.all()
	require.Len(t, notes, 1)
	assert.False(t, notes[0].IsSent)
}

func TestTransitionComplaint_ConcurrentSingleWinner(t *testing.T) {
	f := newComplaintFixture()
	ctx := context.Background()
	c := f.feedback(t, "u1")

	const callers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		wins    int
		rejects int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.TransitionComplaint(ctx, c.ID, "u1", entity.StatusInProgress)
			mu.Lock()
			defer mu.Unlock()
			var ite *complaint.InvalidTransitionError
			switch {
			case err == nil:
				wins++
			case errors.As(err, &ite):
				rejects++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, callers-1, rejects)
	assert.Len(t, f.notes.all(), 1)
}

func TestGetComplaintMetrics(t *testing.T) {
	f := newComplaintFixture()
	ctx := context.Background()
	c := f.feedback(t, "u1")

	f.advance(10 * time.Minute)
	_, err := f.svc.TransitionComplaint(ctx, c.ID, "u1", entity.StatusInProgress)
	require.NoError(t, err)
	f.advance(20*time.Minute + 30*time.Second)

	m, err := f.svc.GetComplaintMetrics(ctx, c.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInProgress, m.Status)
	assert.Equal(t, int64(20), m.MinutesInStatus)
	assert.Equal(t, int64(30), m.MinutesTotal)

	_, err = f.svc.GetComplaintMetrics(ctx, c.ID, "u2")
	assert.ErrorIs(t, err, ErrComplaintNotFound)
}

func TestAddAttachment_RequiresStorage(t *testing.T) {
	f := newComplaintFixture()
	c := f.feedback(t, "u1")

	_, err := f.svc.AddAttachment(context.Background(), c.ID, "u1", nil, "shot.png", "image/png")
	assert.ErrorIs(t, err, ErrStorageNotConfigured)

	_, err = f.svc.AddAttachment(context.Background(), "missing", "u1", nil, "shot.png", "image/png")
	assert.ErrorIs(t, err, ErrComplaintNotFound)
}

func TestCreateComplaint_DropsCachedDetails(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	f := newComplaintFixture()
	f.svc.Redis = rdb
	require.NoError(t, mr.Set(DetailsKey("u1"), `{"complaints_count":0}`))
	require.NoError(t, mr.Set(DetailsKey("u2"), `{"complaints_count":0}`))

	f.feedback(t, "u1")

	assert.False(t, mr.Exists(DetailsKey("u1")))
	assert.True(t, mr.Exists(DetailsKey("u2")))
}
