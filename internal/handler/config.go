package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tubescribe/config"
	"tubescribe/internal/response"
	"tubescribe/log"
	apperrors "tubescribe/pkg/errors"
)

func (h Handler) GetConfig(c *gin.Context) {
	response.Success(c, config.Conf)
}

// UpdateConfig 持久化新配置并标记服务待重建，下一个任务请求生效。
func (h Handler) UpdateConfig(c *gin.Context) {
	var newConf config.Config
	if err := c.ShouldBindJSON(&newConf); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "参数错误 Invalid parameters", err))
		return
	}

	// 环境来源的字段不接受接口修改
	newConf.App.BilibiliCookie = config.Conf.App.BilibiliCookie

	oldConf := config.Conf
	config.Conf = newConf
	if err := config.CheckConfig(); err != nil {
		config.Conf = oldConf
		response.ErrorResponse(c, err)
		return
	}
	if err := config.SaveConfig(); err != nil {
		log.GetLogger().Error("UpdateConfig SaveConfig err", zap.Error(err))
		response.ErrorResponse(c, err)
		return
	}

	configUpdated = true
	log.GetLogger().Info("配置已更新")
	response.Success(c, nil)
}
