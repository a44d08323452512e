package bilibili

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"tubescribe/log"
	apperrors "tubescribe/pkg/errors"
)

const defaultApiBase = "https://api.bilibili.com"

type Client struct {
	http   *resty.Client
	cookie string
}

// VideoInfo B站视频元信息，取自 view 接口。
type VideoInfo struct {
	Bvid     string `json:"bvid"`
	Aid      int64  `json:"aid"`
	Title    string `json:"title"`
	Owner    string `json:"owner"`
	Duration int    `json:"duration"` // 秒
}

type viewResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Bvid     string `json:"bvid"`
		Aid      int64  `json:"aid"`
		Title    string `json:"title"`
		Duration int    `json:"duration"`
		Owner    struct {
			Name string `json:"name"`
		} `json:"owner"`
	} `json:"data"`
}

func NewClient(cookie, proxy string) *Client {
	httpClient := resty.New().
		SetBaseURL(defaultApiBase).
		SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)").
		SetHeader("Referer", "https://www.bilibili.com")
	if proxy != "" {
		httpClient.SetProxy(proxy)
	}
	return &Client{http: httpClient, cookie: cookie}
}

// SetBaseURL 仅供测试替换接口地址。
func (c *Client) SetBaseURL(baseUrl string) {
	c.http.SetBaseURL(baseUrl)
}

// GetVideoInfo 按 BV 号或 av 号查询视频信息。
func (c *Client) GetVideoInfo(ctx context.Context, videoId string) (*VideoInfo, error) {
	req := c.http.R().SetContext(ctx)
	if c.cookie != "" {
		req.SetHeader("Cookie", c.cookie)
	}
	if len(videoId) > 2 && videoId[:2] == "BV" {
		req.SetQueryParam("bvid", videoId)
	} else {
		// aid 参数只收纯数字，av 前缀要去掉
		req.SetQueryParam("aid", strings.TrimPrefix(videoId, "av"))
	}

	var result viewResponse
	resp, err := req.SetResult(&result).Get("/x/web-interface/view")
	if err != nil {
		log.GetLogger().Error("B站视频信息请求失败 bilibili view request failed",
			zap.String("videoId", videoId), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.CodeAudioDownload,
			"获取B站视频信息失败 cannot fetch bilibili video info", err)
	}
	if resp.IsError() {
		return nil, apperrors.New(apperrors.CodeAudioDownload,
			fmt.Sprintf("获取B站视频信息失败 bilibili view returned status %d", resp.StatusCode()))
	}

	switch result.Code {
	case 0:
		// ok
	case -101, -400, 62002:
		// 未登录、请求错误、稿件不可见，通常是 cookie 失效或权限不足
		return nil, apperrors.New(apperrors.CodeCookiesExpired,
			fmt.Sprintf("B站凭证无效 bilibili credential rejected: %s", result.Message))
	default:
		return nil, apperrors.New(apperrors.CodeAudioDownload,
			fmt.Sprintf("B站接口返回错误 bilibili api error %d: %s", result.Code, result.Message))
	}

	return &VideoInfo{
		Bvid:     result.Data.Bvid,
		Aid:      result.Data.Aid,
		Title:    result.Data.Title,
		Owner:    result.Data.Owner.Name,
		Duration: result.Data.Duration,
	}, nil
}
