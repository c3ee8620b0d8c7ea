package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/arslanca/portfolio/internal/models"
)

// BlogIndex mirrors published blog posts into an elasticsearch index
// for full-text search. All methods are nil-safe: a deployment without
// elasticsearch simply has no search.
type BlogIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewBlogIndex(es *elasticsearch.Client, index string) *BlogIndex {
	return &BlogIndex{ES: es, Index: index}
}

func (b *BlogIndex) IndexPost(ctx context.Context, post *models.BlogPost) error {
	if b == nil {
		return nil
	}
	doc, err := json.Marshal(post)
	if err != nil {
		return err
	}
	res, err := b.ES.Index(
		b.Index,
		bytes.NewReader(doc),
		b.ES.Index.WithContext(ctx),
		b.ES.Index.WithDocumentID(strconv.FormatUint(uint64(post.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("index post: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index post: %s", res.Status())
	}
	return nil
}

func (b *BlogIndex) DeletePost(ctx context.Context, id uint) error {
	if b == nil {
		return nil
	}
	res, err := b.ES.Delete(
		b.Index,
		strconv.FormatUint(uint64(id), 10),
		b.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete post: %s", res.Status())
	}
	return nil
}

func (b *BlogIndex) Search(ctx context.Context, query string, from, size int) (int64, []models.BlogPost, error) {
	if b == nil {
		return 0, nil, fmt.Errorf("search is not configured")
	}
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"title^2", "content"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := b.ES.Search(
		b.ES.Search.WithContext(ctx),
		b.ES.Search.WithIndex(b.Index),
		b.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct{ Value int64 } `json:"total"`
			Hits  []struct {
				Source models.BlogPost `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	posts := make([]models.BlogPost, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		posts[i] = hit.Source
	}
	return r.Hits.Total.Value, posts, nil
}
