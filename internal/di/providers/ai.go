package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookbriefapp/bookbrief-server/internal/ai"
	"github.com/bookbriefapp/bookbrief-server/internal/config"
	"github.com/bookbriefapp/bookbrief-server/internal/logger"
)

// AIClientHandle wraps the AI client with shutdown capability.
type AIClientHandle struct {
	*ai.Client
}

// Shutdown implements do.Shutdownable.
func (h *AIClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideAIClient provides the summary enrichment client.
// Without an API key the client is disabled and enrichment is skipped.
func ProvideAIClient(i do.Injector) (*AIClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := ai.New(ai.Config{
		APIKey:      cfg.OpenAI.APIKey,
		BaseURL:     cfg.OpenAI.BaseURL,
		ChatModel:   cfg.OpenAI.ChatModel,
		SpeechModel: cfg.OpenAI.SpeechModel,
		Voice:       cfg.OpenAI.Voice,
	}, log.Logger)

	if client.Enabled() {
		log.Info("AI enrichment enabled")
	} else {
		log.Info("AI enrichment disabled, no API key configured")
	}

	return &AIClientHandle{Client: client}, nil
}
