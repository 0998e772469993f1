package queries

import (
	"strings"
)

const (
	DefaultSize = 20
	MaxSize     = 100
)

// SearchParams is the catalog search a job asks for. Empty fields add no
// clause.
type SearchParams struct {
	Query    string
	Company  string
	Type     string
	Location string
	Tags     []string
	From     int
	Size     int
}

// Normalize clamps paging: size defaults to DefaultSize and is capped at
// maxSize; a negative offset becomes zero.
func (p SearchParams) Normalize(maxSize int) SearchParams {
	if maxSize <= 0 || maxSize > MaxSize {
		maxSize = MaxSize
	}
	if p.Size <= 0 {
		p.Size = DefaultSize
	}
	if p.Size > maxSize {
		p.Size = maxSize
	}
	if p.From < 0 {
		p.From = 0
	}
	return p
}

// BuildSearchQuery renders the request body. Only active internships match.
func BuildSearchQuery(p SearchParams) map[string]interface{} {
	must := []interface{}{}
	filter := []interface{}{
		map[string]interface{}{"term": map[string]interface{}{"status": "active"}},
	}

	if q := strings.TrimSpace(p.Query); q != "" {
		must = append(must, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  q,
				"fields": []string{"title^3", "company^2", "description", "requirements"},
				"type":   "best_fields",
			},
		})
	}
	if p.Company != "" {
		must = append(must, map[string]interface{}{
			"match": map[string]interface{}{"company": p.Company},
		})
	}
	if p.Location != "" {
		must = append(must, map[string]interface{}{
			"match": map[string]interface{}{"location": p.Location},
		})
	}
	if p.Type != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"type": p.Type},
		})
	}
	if len(p.Tags) > 0 {
		filter = append(filter, map[string]interface{}{
			"terms": map[string]interface{}{"tags": p.Tags},
		})
	}

	if len(must) == 0 {
		must = append(must, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   must,
				"filter": filter,
			},
		},
	}
	// without a text query relevance is flat; show the newest first
	if strings.TrimSpace(p.Query) == "" {
		query["sort"] = []map[string]interface{}{{"created_at": map[string]interface{}{"order": "desc", "unmapped_type": "date"}}}
	}
	return query
}
