package kafka

import (
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrToUint64(t *testing.T) {
	assert.Equal(t, uint64(42), StrToUint64("42"))
	assert.Equal(t, uint64(42), StrToUint64(float64(42)))
	assert.Equal(t, uint64(42), StrToUint64(int64(42)))
	assert.Equal(t, uint64(0), StrToUint64("abc"))
	assert.Equal(t, uint64(0), StrToUint64(nil))
}

func TestToCanalMessage(t *testing.T) {
	raw := []byte(`{"table":"likes","type":"INSERT","es":1740800000000,"data":[{"user_id":"1","post_id":"2"}]}`)
	msg, err := ToCanalMessage(&sarama.ConsumerMessage{Value: raw}, "likes")
	require.NoError(t, err)
	assert.Equal(t, INSERT, msg.Type)
	assert.Equal(t, uint64(2), StrToUint64(msg.Data[0]["post_id"]))

	_, err = ToCanalMessage(&sarama.ConsumerMessage{Value: raw}, "follows")
	assert.Error(t, err)

	_, err = ToCanalMessage(&sarama.ConsumerMessage{Value: []byte(`{"table":"likes","data":[]}`)}, "likes")
	assert.Error(t, err)
}
