package helpers

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// NewESClient creates an Elasticsearch client with sane defaults and optional basic auth.
func NewESClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}

// complaintMapping keeps ids and enums as keywords so they can be filtered exactly.
const complaintMapping = `{
  "mappings": {
    "properties": {
      "id":                {"type": "keyword"},
      "user_id":           {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "complaint_type":    {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "status":            {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "details":           {"type": "object", "dynamic": true},
      "created_at":        {"type": "date"},
      "status_updated_at": {"type": "date"}
    }
  }
}`

// EnsureComplaintIndex creates index with the complaint mapping unless it exists.
func EnsureComplaintIndex(ctx context.Context, es *elasticsearch.Client, index string) error {
	exists, err := esapi.IndicesExistsRequest{Index: []string{index}}.Do(ctx, es)
	if err != nil {
		return err
	}
	_ = exists.Body.Close()
	if exists.StatusCode == http.StatusOK {
		return nil
	}

	res, err := esapi.IndicesCreateRequest{Index: index, Body: strings.NewReader(complaintMapping)}.Do(ctx, es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("create index %s: %s", index, res.Status())
	}
	return nil
}
