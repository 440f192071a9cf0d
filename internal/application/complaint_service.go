package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/complaint"
	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
	repo "github.com/oksasatya/go-complaint-tracker/internal/domain/repository"
	"github.com/oksasatya/go-complaint-tracker/pkg/helpers"
)

type ComplaintService struct {
	Repo      repo.ComplaintRepository
	Sink      Sink
	Logger    *logrus.Logger
	ES        *elasticsearch.Client
	ESIndex   string
	GCS       *storage.Client
	GCSBucket string
	// Redis, when set, has cached user details dropped on new complaints.
	Redis *redis.Client
	Now   func() time.Time
}

func NewComplaintService(r repo.ComplaintRepository, sink Sink, logger *logrus.Logger, es *elasticsearch.Client, esIndex string, gcs *storage.Client, gcsBucket string) *ComplaintService {
	return &ComplaintService{
		Repo:      r,
		Sink:      sink,
		Logger:    logger,
		ES:        es,
		ESIndex:   esIndex,
		GCS:       gcs,
		GCSBucket: gcsBucket,
		Now:       time.Now,
	}
}

func (s *ComplaintService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// CreateComplaint validates the type-specific details and stores the
// complaint as raised.
func (s *ComplaintService) CreateComplaint(ctx context.Context, userID string, t entity.ComplaintType, details entity.ComplaintDetails) (*entity.Complaint, error) {
	if !t.Valid() {
		return nil, &ValidationError{Field: "complaint_type", Message: "invalid complaint type"}
	}
	if err := complaint.ValidateDetails(t, details); err != nil {
		field := "details"
		var mf *complaint.MissingFieldError
		if errors.As(err, &mf) {
			field = mf.Field
		}
		return nil, &ValidationError{Field: field, Message: err.Error(), Err: err}
	}

	now := s.now()
	c := &entity.Complaint{
		UserID:          userID,
		Type:            t,
		Status:          entity.StatusRaised,
		Details:         details,
		CreatedAt:       now,
		UpdatedAt:       now,
		StatusUpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := helpers.RedisDel(ctx, s.Redis, DetailsKey(userID)); err != nil {
			helpers.LogWarn(s.Logger, "drop cached user details failed", err, logrus.Fields{"user_id": userID})
		}
	}
	s.indexComplaint(ctx, c)
	return c, nil
}

// TransitionComplaint moves a complaint owned by userID to requested. The
// status read and write happen under the repository's row lock; the
// resulting notification is dispatched after commit and its failure does not
// undo the transition.
func (s *ComplaintService) TransitionComplaint(ctx context.Context, complaintID, userID string, requested entity.ComplaintStatus) (*entity.Complaint, error) {
	if !requested.Valid() {
		return nil, &ValidationError{Field: "status", Message: "invalid status"}
	}

	var pending *entity.Notification
	updated, err := s.Repo.UpdateLocked(ctx, complaintID, userID, func(c *entity.Complaint) error {
		n, err := complaint.Apply(c, requested, s.now())
		pending = n
		return err
	})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrComplaintNotFound
	}
	if err != nil {
		return nil, err
	}

	if pending != nil && s.Sink != nil {
		if _, dErr := s.Sink.Dispatch(ctx, pending); dErr != nil {
			helpers.LogWarn(s.Logger, "status notification dispatch failed", dErr, logrus.Fields{
				"complaint_id": updated.ID,
				"new_status":   updated.Status,
			})
		}
	}
	s.indexComplaint(ctx, updated)
	return updated, nil
}

func (s *ComplaintService) GetComplaintMetrics(ctx context.Context, complaintID, userID string) (complaint.Metrics, error) {
	c, err := s.Repo.GetForUser(ctx, complaintID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return complaint.Metrics{}, ErrComplaintNotFound
	}
	if err != nil {
		return complaint.Metrics{}, err
	}
	return complaint.ComputeMetrics(c, s.now()), nil
}

func (s *ComplaintService) ListComplaints(ctx context.Context, userID string) ([]*entity.Complaint, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// AddAttachment uploads a file for a complaint to GCS and records it.
func (s *ComplaintService) AddAttachment(ctx context.Context, complaintID, userID string, r io.Reader, filename, contentType string) (*entity.ComplaintAttachment, error) {
	c, err := s.Repo.GetForUser(ctx, complaintID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrComplaintNotFound
	}
	if err != nil {
		return nil, err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, ErrStorageNotConfigured
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("complaints", c.ID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}
	a := &entity.ComplaintAttachment{
		ComplaintID: c.ID,
		ObjectPath:  objectPath,
		URL:         url,
		ContentType: contentType,
		CreatedAt:   s.now(),
	}
	if err := s.Repo.AddAttachment(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// indexComplaint is best-effort; failures are logged, never returned.
func (s *ComplaintService) indexComplaint(ctx context.Context, c *entity.Complaint) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":                c.ID,
		"user_id":           c.UserID,
		"complaint_type":    c.Type,
		"status":            c.Status,
		"details":           c.Details,
		"created_at":        c.CreatedAt.Format(time.RFC3339Nano),
		"status_updated_at": c.StatusUpdatedAt.Format(time.RFC3339Nano),
	}
	b, err := json.Marshal(doc)
	if err != nil {
		helpers.LogWarn(s.Logger, "es encode failed", err, logrus.Fields{"complaint_id": c.ID})
		return
	}
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: c.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	cctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(cctx, s.ES)
	if err != nil {
		helpers.LogWarn(s.Logger, "es index failed", err, logrus.Fields{"complaint_id": c.ID})
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		helpers.LogWarn(s.Logger, "es index response error", nil, logrus.Fields{"status": res.Status(), "complaint_id": c.ID})
	}
}

// SearchComplaints runs a full-text query over the caller's own complaints.
func (s *ComplaintService) SearchComplaints(ctx context.Context, userID, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"complaint_type^2", "status", "details.*"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id.keyword": userID},
				},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	cctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(cctx), s.ES.Search.WithIndex(s.ESIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
