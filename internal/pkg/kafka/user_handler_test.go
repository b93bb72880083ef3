package kafka

import (
	"Inkstone/internal/pkg/es"
	"context"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPostESRepo struct {
	authorID uint64
	name     string
	avatar   string
	calls    int
}

func (r *recordingPostESRepo) SearchPosts(context.Context, string, int, int) ([]*es.PostES, error) {
	return nil, nil
}

func (r *recordingPostESRepo) IndexPost(context.Context, *es.PostES, int64) error {
	return nil
}

func (r *recordingPostESRepo) DeletePost(context.Context, uint64) error {
	return nil
}

func (r *recordingPostESRepo) UpdateAuthorDetail(_ context.Context, authorID uint64, newName string, newAvatar string) error {
	r.authorID = authorID
	r.name = newName
	r.avatar = newAvatar
	r.calls++
	return nil
}

func TestUsersHandlerSyncsAuthorSnapshot(t *testing.T) {
	repo := &recordingPostESRepo{}
	handler := NewUsersHandler(repo)

	raw := []byte(`{"table":"users","type":"UPDATE",` +
		`"data":[{"id":"7","name":"Alice Liu","image_url":"https://cdn.example.com/a.png"}],` +
		`"old":[{"name":"Alice"}]}`)
	err := handler.logic(context.Background(), &sarama.ConsumerMessage{Value: raw})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, uint64(7), repo.authorID)
	assert.Equal(t, "Alice Liu", repo.name)
	assert.Equal(t, "https://cdn.example.com/a.png", repo.avatar)
}

func TestUsersHandlerIgnoresIrrelevantChanges(t *testing.T) {
	repo := &recordingPostESRepo{}
	handler := NewUsersHandler(repo)

	// 只有 bio 变化，不触发文档刷新
	raw := []byte(`{"table":"users","type":"UPDATE",` +
		`"data":[{"id":"7","name":"Alice","image_url":"https://cdn.example.com/a.png"}],` +
		`"old":[{"bio":"old bio"}]}`)
	err := handler.logic(context.Background(), &sarama.ConsumerMessage{Value: raw})
	require.NoError(t, err)
	assert.Equal(t, 0, repo.calls)

	// INSERT 时索引里还没有该作者的文章
	raw = []byte(`{"table":"users","type":"INSERT",` +
		`"data":[{"id":"8","name":"Bob","image_url":""}]}`)
	err = handler.logic(context.Background(), &sarama.ConsumerMessage{Value: raw})
	require.NoError(t, err)
	assert.Equal(t, 0, repo.calls)
}
