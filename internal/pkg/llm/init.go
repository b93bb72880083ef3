package llm

import (
	"Inkstone/internal/api/config"
	log "log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/sync/semaphore"
)

var llmClient llms.Model

// TextSem 限制同时在途的模型请求数
var TextSem = semaphore.NewWeighted(4)

const draftPrompt = `你是一个博客写作助手。根据用户给出的主题，生成一篇 Markdown 格式的博客草稿正文。
只输出正文内容，不要输出任何解释或前言。`

func InitLLM() error {
	cfg := config.Cfg.LLM

	llm, err := openai.New(
		openai.WithModel(cfg.Model),
		openai.WithToken(cfg.ApiKey),
		openai.WithBaseURL(cfg.URL),
	)

	if err != nil {
		log.Error("AI大模型初始化失败", "err", err)
		return err
	}

	llmClient = llm

	return nil
}
