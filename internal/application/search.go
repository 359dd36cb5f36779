package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/membernet/member-info-service/internal/domain/entity"
)

const esTimeout = 3 * time.Second

// MemberIndexer mirrors member profiles into Elasticsearch for search.
// Indexing is always best-effort; the relational store stays the source of
// truth.
type MemberIndexer struct {
	ES        *elasticsearch.Client
	IndexName string
}

func NewMemberIndexer(es *elasticsearch.Client, index string) *MemberIndexer {
	return &MemberIndexer{ES: es, IndexName: index}
}

func (ix *MemberIndexer) Index(ctx context.Context, m *entity.Member) error {
	if ix == nil || ix.ES == nil || ix.IndexName == "" {
		return nil
	}
	doc := map[string]any{
		"member_id":   m.MemberID,
		"username":    m.Username,
		"name":        m.Name,
		"name_last":   m.NameLast,
		"status":      m.Status,
		"member_type": m.MemberType,
		"post_date":   m.PostDate.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: ix.IndexName, DocumentID: m.MemberID, Body: strings.NewReader(string(b)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, esTimeout)
	defer cancel()
	res, err := req.Do(c, ix.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return &esError{status: res.Status()}
	}
	return nil
}

// Search runs a multi_match query over username and names.
func (ix *MemberIndexer) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if ix == nil || ix.ES == nil || ix.IndexName == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"username^2", "name", "name_last"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, esTimeout)
	defer cancel()
	res, err := ix.ES.Search(
		ix.ES.Search.WithContext(c),
		ix.ES.Search.WithIndex(ix.IndexName),
		ix.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

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

type esError struct {
	status string
}

func (e *esError) Error() string { return "elasticsearch: " + e.status }
