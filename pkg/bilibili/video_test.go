package bilibili

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tubescribe/pkg/errors"
)

func TestGetVideoInfoByBvid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/x/web-interface/view", r.URL.Path)
		assert.Equal(t, "BV1xx411c7mD", r.URL.Query().Get("bvid"))
		assert.Empty(t, r.URL.Query().Get("aid"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": 0,
			"message": "0",
			"data": {
				"bvid": "BV1xx411c7mD",
				"aid": 12345,
				"title": "测试视频",
				"duration": 360,
				"owner": {"name": "up主"}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient("", "")
	client.SetBaseURL(server.URL)

	info, err := client.GetVideoInfo(context.Background(), "BV1xx411c7mD")
	require.NoError(t, err)
	assert.Equal(t, "测试视频", info.Title)
	assert.Equal(t, int64(12345), info.Aid)
	assert.Equal(t, "up主", info.Owner)
	assert.Equal(t, 360, info.Duration)
}

func TestGetVideoInfoByAid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "12345", r.URL.Query().Get("aid"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code": 0, "data": {"aid": 12345, "title": "av video"}}`))
	}))
	defer server.Close()

	client := NewClient("", "")
	client.SetBaseURL(server.URL)

	// 链接解析出的 av 号带前缀，接口参数必须是纯数字
	for _, videoId := range []string{"av12345", "12345"} {
		info, err := client.GetVideoInfo(context.Background(), videoId)
		require.NoError(t, err, "videoId %s", videoId)
		assert.Equal(t, "av video", info.Title)
	}
}

func TestGetVideoInfoCookieExpired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code": -101, "message": "账号未登录"}`))
	}))
	defer server.Close()

	client := NewClient("stale-cookie", "")
	client.SetBaseURL(server.URL)

	_, err := client.GetVideoInfo(context.Background(), "BV1xx411c7mD")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeCookiesExpired, apperrors.GetCode(err))
}

func TestGetVideoInfoApiError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code": -404, "message": "啥都木有"}`))
	}))
	defer server.Close()

	client := NewClient("", "")
	client.SetBaseURL(server.URL)

	_, err := client.GetVideoInfo(context.Background(), "BV1xx411c7mD")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeAudioDownload, apperrors.GetCode(err))
}

func TestGetVideoInfoSendsCookie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "SESSDATA=abc", r.Header.Get("Cookie"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code": 0, "data": {"title": "ok"}}`))
	}))
	defer server.Close()

	client := NewClient("SESSDATA=abc", "")
	client.SetBaseURL(server.URL)

	_, err := client.GetVideoInfo(context.Background(), "BV1xx411c7mD")
	require.NoError(t, err)
}
