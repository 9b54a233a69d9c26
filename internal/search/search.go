package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/ovasilenko/shop_api/internal/logging"
	"github.com/ovasilenko/shop_api/internal/models"
)

var ErrUnavailable = errors.New("search is not configured")

// Index mirrors the product table into Elasticsearch. A nil Index (or nil
// client) disables search; mutations still succeed and indexing is skipped.
type Index struct {
	ES   *elasticsearch.Client
	Name string
}

type ProductDoc struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	AdminID     string  `json:"adminId"`
	CreatedAt   string  `json:"createdAt"`
}

func docFromProduct(p *models.Product) ProductDoc {
	doc := ProductDoc{
		ID:        p.ID.String(),
		Name:      p.Name,
		Price:     p.Price,
		AdminID:   p.AdminID.String(),
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05.000Z07:00"),
	}
	if p.Description != nil {
		doc.Description = *p.Description
	}
	return doc
}

func (idx *Index) enabled() bool {
	return idx != nil && idx.ES != nil
}

// IndexProduct upserts the product document. Failures are logged and
// swallowed: the database row is the source of truth.
func (idx *Index) IndexProduct(ctx context.Context, p *models.Product) {
	if !idx.enabled() {
		return
	}
	l := logging.FromContext(ctx).With("index", idx.Name, "product_id", p.ID)

	body, err := json.Marshal(docFromProduct(p))
	if err != nil {
		l.Error("index_product_failed", "error", err)
		return
	}

	res, err := idx.ES.Index(
		idx.Name,
		bytes.NewReader(body),
		idx.ES.Index.WithContext(ctx),
		idx.ES.Index.WithDocumentID(p.ID.String()),
	)
	if err != nil {
		l.Error("index_product_failed", "error", err)
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		l.Error("index_product_failed", "status", res.Status(), "body", string(raw))
	}
}

func (idx *Index) DeleteProduct(ctx context.Context, id string) {
	if !idx.enabled() {
		return
	}
	l := logging.FromContext(ctx).With("index", idx.Name, "product_id", id)

	res, err := idx.ES.Delete(idx.Name, id, idx.ES.Delete.WithContext(ctx))
	if err != nil {
		l.Error("delete_product_doc_failed", "error", err)
		return
	}
	defer res.Body.Close()
	// 404 is fine: the product may never have been indexed.
	if res.IsError() && res.StatusCode != 404 {
		raw, _ := io.ReadAll(res.Body)
		l.Error("delete_product_doc_failed", "status", res.Status(), "body", string(raw))
	}
}

func (idx *Index) Search(ctx context.Context, query string, from, size int) (int64, []ProductDoc, error) {
	if !idx.enabled() {
		return 0, nil, ErrUnavailable
	}

	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description"},
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

	res, err := idx.ES.Search(
		idx.ES.Search.WithContext(ctx),
		idx.ES.Search.WithIndex(idx.Name),
		idx.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		return 0, nil, fmt.Errorf("search error: %s: %s", res.Status(), strings.TrimSpace(string(raw)))
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source ProductDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	docs := make([]ProductDoc, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		docs[i] = hit.Source
	}
	return r.Hits.Total.Value, docs, nil
}
