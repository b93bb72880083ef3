package llm

import (
	"Inkstone/internal/api/config"
	"context"
	"errors"
	log "log/slog"

	"github.com/tmc/langchaingo/llms"
)

// GenerateDraftBody 根据主题生成一篇草稿正文
func GenerateDraftBody(ctx context.Context, topic string) (string, error) {
	if llmClient == nil {
		return "", errors.New("AI大模型未初始化")
	}

	resp, err := fetchModel(ctx, draftPrompt, topic, 0.7)
	if err != nil {
		log.Error("AI大模型请求失败", "err", err)
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("AI大模型返回为空")
	}

	return resp.Choices[0].Content, nil
}

func fetchModel(ctx context.Context, systemPrompt string, userPrompt string, temp float64) (*llms.ContentResponse, error) {
	if err := TextSem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer TextSem.Release(1)
	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userPrompt),
			},
		},
	}
	log.Info("正在请求AI大模型")
	return llmClient.GenerateContent(ctx, messages,
		llms.WithModel(config.Cfg.LLM.Model),
		llms.WithTemperature(temp),
	)
}
