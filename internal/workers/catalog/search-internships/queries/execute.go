package queries

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"internship-workers/internal/matching"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrMissingIndex  = errors.New("index name is required")
	ErrIndexNotFound = errors.New("index not found")
)

type Hit struct {
	ID         string
	Score      float64
	Internship *matching.Internship
}

type Result struct {
	Hits      []Hit
	TotalHits int64
	MaxScore  float64
	Took      int64 // milliseconds, as reported by the cluster
}

type searchResponse struct {
	Took int64 `json:"took"`
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		MaxScore *float64 `json:"max_score"`
		Hits     []struct {
			ID     string          `json:"_id"`
			Score  *float64        `json:"_score"`
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search runs p against index. A document whose source cannot be decoded
// into an internship is returned with a nil Internship.
func Search(ctx context.Context, es *elasticsearch.Client, index string, p SearchParams) (*Result, error) {
	if index == "" {
		return nil, ErrMissingIndex
	}

	body, err := json.Marshal(BuildSearchQuery(p))
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	req := esapi.SearchRequest{
		Index:          []string{index},
		Body:           bytes.NewReader(body),
		From:           &p.From,
		Size:           &p.Size,
		TrackTotalHits: true,
	}
	res, err := req.Do(ctx, es)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, index)
	}
	if res.IsError() {
		return nil, fmt.Errorf("search failed: %s", res.String())
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := &Result{
		Hits:      make([]Hit, 0, len(sr.Hits.Hits)),
		TotalHits: sr.Hits.Total.Value,
		Took:      sr.Took,
	}
	if sr.Hits.MaxScore != nil {
		out.MaxScore = *sr.Hits.MaxScore
	}
	for _, h := range sr.Hits.Hits {
		hit := Hit{ID: h.ID}
		if h.Score != nil {
			hit.Score = *h.Score
		}
		if in, err := matching.DecodeInternship(h.Source); err == nil {
			if in.ID == "" {
				in.ID = h.ID
			}
			hit.Internship = in
		}
		out.Hits = append(out.Hits, hit)
	}
	return out, nil
}
