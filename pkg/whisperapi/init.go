package whisperapi

import (
	"net/http"
	"net/url"

	"github.com/sashabaranov/go-openai"
)

type Client struct {
	client *openai.Client
}

func NewClient(baseUrl, apiKey string, proxyUrl *url.URL) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseUrl != "" {
		cfg.BaseURL = baseUrl
	}

	// 总是配置自定义 HTTP Client 以设置代理
	transport := &http.Transport{}
	if proxyUrl != nil {
		transport.Proxy = http.ProxyURL(proxyUrl)
	}

	cfg.HTTPClient = &http.Client{
		Transport: transport,
		// 不设置超时，长音频的转录请求可能运行很久
	}

	client := openai.NewClientWithConfig(cfg)
	return &Client{client: client}
}
