package es

import (
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/util"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/conflicts"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
)

const MaxSearchDepth = 400

type PostRepo interface {
	SearchPosts(ctx context.Context, queryText string, from, size int) ([]*PostES, error)
	IndexPost(ctx context.Context, post *PostES, version int64) error
	DeletePost(ctx context.Context, id uint64) error
	UpdateAuthorDetail(ctx context.Context, authorID uint64, newName string, newAvatar string) error
}

type PostRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewPostRepo(client *elasticsearch.TypedClient) PostRepo {
	return &PostRepoImpl{client: client}
}

// SearchPosts 全文检索已发布的文章
func (s *PostRepoImpl) SearchPosts(ctx context.Context, queryText string, from, size int) ([]*PostES, error) {
	if from >= MaxSearchDepth {
		return []*PostES{}, nil
	}

	searchReq := s.client.Search().
		Index(PostIndex).
		Query(&types.Query{
			Bool: &types.BoolQuery{
				Should: []types.Query{
					{
						MultiMatch: &types.MultiMatchQuery{
							Query:  queryText,
							Fields: []string{"title^3", "content^1", "tags^2"},
							Boost:  util.PtrFloat32(2.0),
						},
					},
					{
						MultiMatch: &types.MultiMatchQuery{
							Query:     queryText,
							Fields:    []string{"title", "content"},
							Fuzziness: util.PtrStr("AUTO"),
							Boost:     util.PtrFloat32(0.5),
						},
					},
				},
				MinimumShouldMatch: 1,
				Filter: []types.Query{
					{
						Term: map[string]types.TermQuery{
							"status": {Value: model.PostStatusPublished},
						},
					},
				},
			},
		}).
		From(from).
		Size(size)

	return s.executeSearch(ctx, searchReq)
}

func (s *PostRepoImpl) IndexPost(ctx context.Context, post *PostES, version int64) error {
	docID := strconv.FormatUint(post.ID, 10)

	_, err := s.client.Index(PostIndex).
		Id(docID).
		Document(post).
		Version(strconv.FormatInt(version, 10)).
		VersionType(versiontype.External).
		Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == ConflictCode {
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	docID := strconv.FormatUint(id, 10)

	_, err := s.client.Delete(PostIndex, docID).Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == NotFoundCode {
				return nil
			}
		}
		return err
	}

	return nil
}

// UpdateAuthorDetail 作者资料变更后刷新其全部文章文档
func (s *PostRepoImpl) UpdateAuthorDetail(ctx context.Context, authorID uint64, newName string, newAvatar string) error {
	nameJSON, _ := json.Marshal(newName)
	avatarJSON, _ := json.Marshal(newAvatar)

	params := map[string]json.RawMessage{
		"new_name":   json.RawMessage(nameJSON),
		"new_avatar": json.RawMessage(avatarJSON),
	}

	scriptSource := "ctx._source.author_name = params.new_name; ctx._source.author_avatar = params.new_avatar;"

	req := s.client.UpdateByQuery(PostIndex).
		Query(&types.Query{
			Term: map[string]types.TermQuery{
				"author_id": {Value: authorID},
			},
		}).
		Script(&types.Script{
			Source: &scriptSource,
			Params: params,
		}).
		Conflicts(conflicts.Proceed)

	resp, err := req.Do(ctx)
	if err != nil {
		return fmt.Errorf("post index: update author detail failed: %w", err)
	}

	if len(resp.Failures) != 0 {
		return fmt.Errorf("post index: update author detail has failures, count: %d", len(resp.Failures))
	}

	return nil
}

func (s *PostRepoImpl) executeSearch(ctx context.Context, req *search.Search) ([]*PostES, error) {
	resp, err := req.Do(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*PostES, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		var post PostES
		if hit.Source_ == nil {
			continue
		}
		if err = json.Unmarshal(hit.Source_, &post); err != nil {
			continue
		}
		if len(hit.Sort) > 0 {
			post.Sort = make([]interface{}, len(hit.Sort))
			for i, v := range hit.Sort {
				post.Sort[i] = v
			}
		}
		results = append(results, &post)
	}
	return results, nil
}
