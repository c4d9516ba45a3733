package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"signal-metrics/internal/config"
	"signal-metrics/internal/metrics"
)

const summaryPrompt = `你是一名量化绩效分析师。下面是一个策略在 %s 上的回测绩效记录(JSON):

%s

请用不超过三句话点评该策略的风险收益特征，指出最值得注意的一项指标。直接输出点评文本。`

// Client 封装 OpenAI 调用逻辑，为回测报告生成文字点评。
type Client struct {
	cfg    config.OpenAIConfig
	logger *zap.Logger
	sdk    *openai.Client
}

// NewClient 使用给定配置创建 AI 客户端。
func NewClient(cfg config.OpenAIConfig, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api_key 不能为空")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sdkConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		sdkConfig.BaseURL = cfg.BaseURL
	}
	sdkConfig.HTTPClient = &http.Client{
		Timeout: cfg.Timeout + 5*time.Second,
	}

	return &Client{
		cfg:    cfg,
		logger: logger,
		sdk:    openai.NewClientWithConfig(sdkConfig),
	}, nil
}

// Summarize 针对一份绩效记录生成简短点评。
func (c *Client) Summarize(ctx context.Context, symbol string, report metrics.Report) (string, error) {
	if c.cfg.Model == "" {
		return "", errors.New("openai model 不能为空")
	}

	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("序列化绩效记录失败: %w", err)
	}

	response, err := c.sdk.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(summaryPrompt, symbol, string(payload)),
			},
		},
		Temperature: 0,
	})
	if err != nil {
		c.logger.Error("调用OpenAI失败", zap.Error(err))
		return "", fmt.Errorf("调用OpenAI失败: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", errors.New("OpenAI 返回结果为空")
	}

	summary := strings.TrimSpace(response.Choices[0].Message.Content)
	if summary == "" {
		return "", errors.New("OpenAI 返回内容为空")
	}

	return summary, nil
}
