// internal/knowledge/elasticsearch.go
package knowledge

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "medical-qa-bot/internal/common/errors"
	"medical-qa-bot/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/tidwall/gjson"
)

const backendElasticsearch = "elasticsearch"

// ElasticsearchSource reads every document of an index. Document ids are disease names.
type ElasticsearchSource struct {
	client     *elasticsearch.Client
	index      string
	maxRecords int
}

func NewElasticsearchSource(client *elasticsearch.Client, index string, maxRecords int) *ElasticsearchSource {
	return &ElasticsearchSource{client: client, index: index, maxRecords: maxRecords}
}

func (s *ElasticsearchSource) Name() string {
	return "elasticsearch:" + s.index
}

func (s *ElasticsearchSource) Load(ctx context.Context) (*LoadResult, error) {
	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(strings.NewReader(`{"query":{"match_all":{}},"sort":["_doc"]}`)),
		s.client.Search.WithSize(s.maxRecords),
	)
	if err != nil {
		return nil, classifyBackendError(ctx, backendElasticsearch, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, apperrors.NewBackendQueryFailedError(backendElasticsearch, err)
	}

	if res.IsError() {
		reason := gjson.GetBytes(body, "error.reason").String()
		if reason == "" {
			reason = res.Status()
		}
		if res.StatusCode == http.StatusNotFound {
			return nil, apperrors.NewKnowledgeLoadFailedError(s.Name(), fmt.Errorf("index not found: %s", reason))
		}
		return nil, apperrors.NewBackendQueryFailedError(backendElasticsearch, fmt.Errorf("search failed: %s", reason))
	}

	decoder := newRecordDecoder(s.Name())
	result := &LoadResult{}
	position := 0
	gjson.GetBytes(body, "hits.hits").ForEach(func(_, hit gjson.Result) bool {
		position++
		rec, err := decoder.decode([]byte(hit.Get("_source").Raw), position)
		if err != nil {
			result.skip(err)
			return true
		}
		result.Records = append(result.Records, *rec)
		return true
	})
	return result, nil
}

// IndexElasticsearch writes records as documents keyed by name and refreshes the index.
func IndexElasticsearch(ctx context.Context, client *elasticsearch.Client, index string, records []models.KnowledgeRecord) error {
	for i := range records {
		doc, err := json.Marshal(&records[i])
		if err != nil {
			return apperrors.NewRecordMalformedError("elasticsearch:"+index, i+1, err)
		}

		res, err := client.Index(
			index,
			bytes.NewReader(doc),
			client.Index.WithDocumentID(records[i].Name),
			client.Index.WithContext(ctx),
		)
		if err != nil {
			return apperrors.NewBackendConnectionFailedError(backendElasticsearch, err)
		}
		failed := res.IsError()
		status := res.Status()
		res.Body.Close()
		if failed {
			return apperrors.NewBackendQueryFailedError(backendElasticsearch, fmt.Errorf("index %q: %s", records[i].Name, status))
		}
	}

	res, err := client.Indices.Refresh(
		client.Indices.Refresh.WithIndex(index),
		client.Indices.Refresh.WithContext(ctx),
	)
	if err != nil {
		return apperrors.NewBackendConnectionFailedError(backendElasticsearch, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return apperrors.NewBackendQueryFailedError(backendElasticsearch, fmt.Errorf("refresh: %s", res.Status()))
	}
	return nil
}
