package public

import (
	"errors"

	handlershared "github.com/blogicum-next/internal/http/handlers/shared"
	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/i18n"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondErrorWithMsg(c, code, msg, err)
}

// respondValidationError 按请求语言展开字段级校验错误。
func respondValidationError(c *gin.Context, verr *service.ValidationError) {
	locale := i18n.ResolveLocale(c)
	fields := make(map[string]string, len(verr.Fields))
	for field, key := range verr.Fields {
		fields[field] = i18n.T(locale, key)
	}
	response.ErrorWithData(c, response.CodeBadRequest, i18n.T(locale, "error.validation_failed"), gin.H{"fields": fields})
}

// respondCaptchaError 统一处理验证码校验错误。
// 返回 true 表示已写出响应，调用方应直接返回。
func respondCaptchaError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, service.ErrCaptchaRequired):
		respondError(c, response.CodeBadRequest, "error.captcha_required", nil)
	case errors.Is(err, service.ErrCaptchaInvalid):
		respondError(c, response.CodeBadRequest, "error.captcha_invalid", nil)
	default:
		respondError(c, response.CodeInternal, "error.captcha_generate_failed", err)
	}
	return true
}

// respondWeakPasswordError 按密码策略错误展开国际化文案。
func respondWeakPasswordError(c *gin.Context, err error) {
	locale := i18n.ResolveLocale(c)
	if perr, ok := err.(interface {
		Key() string
		Args() []interface{}
	}); ok {
		msg := i18n.Sprintf(locale, perr.Key(), perr.Args()...)
		respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return
	}
	respondError(c, response.CodeBadRequest, "error.validation_failed", nil)
}
