package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// 支持的语言常量
const (
	LocaleZH = "zh-CN"
	LocaleEN = "en-US"
)

// DefaultLocale 默认语言
const DefaultLocale = LocaleZH

var messages = map[string]map[string]string{
	LocaleZH: {
		"error.bad_request":            "请求参数有误",
		"error.unauthorized":           "请先登录",
		"error.forbidden":              "没有操作权限",
		"error.not_found":              "页面不存在",
		"error.internal":               "服务器内部错误",
		"error.validation_failed":      "表单校验失败",
		"error.post_not_found":         "文章不存在",
		"error.post_fetch_failed":      "获取文章失败",
		"error.post_create_failed":     "创建文章失败",
		"error.post_update_failed":     "更新文章失败",
		"error.post_delete_failed":     "删除文章失败",
		"error.comment_not_found":      "评论不存在",
		"error.comment_create_failed":  "发表评论失败",
		"error.comment_update_failed":  "更新评论失败",
		"error.comment_delete_failed":  "删除评论失败",
		"error.category_not_found":     "分类不存在",
		"error.category_fetch_failed":  "获取分类失败",
		"error.category_create_failed": "创建分类失败",
		"error.category_update_failed": "更新分类失败",
		"error.category_delete_failed": "删除分类失败",
		"error.location_not_found":     "地点不存在",
		"error.location_fetch_failed":  "获取地点失败",
		"error.location_create_failed": "创建地点失败",
		"error.location_update_failed": "更新地点失败",
		"error.location_delete_failed": "删除地点失败",
		"error.slug_exists":            "slug 已被占用",
		"error.slug_invalid":           "slug 只允许字母、数字、连字符和下划线",
		"error.user_not_found":         "用户不存在",
		"error.users_fetch_failed":     "获取用户列表失败",
		"error.profile_fetch_failed":   "获取个人资料失败",
		"error.profile_update_failed":  "更新个人资料失败",
		"error.username_exists":        "用户名已被占用",
		"error.username_invalid":       "用户名只允许字母、数字、连字符和下划线",
		"error.email_exists":           "邮箱已被注册",
		"error.email_invalid":          "邮箱格式不正确",
		"error.invalid_credentials":    "用户名或密码错误",
		"error.user_disabled":          "账号已被禁用",
		"error.register_failed":        "注册失败",
		"error.login_failed":           "登录失败",
		"error.password_incorrect":     "原密码不正确",
		"error.password_update_failed": "修改密码失败",
		"error.password_too_short":     "密码长度不能少于 %d 位",
		"error.password_need_upper":    "密码需要包含大写字母",
		"error.password_need_lower":    "密码需要包含小写字母",
		"error.password_need_number":   "密码需要包含数字",
		"error.password_need_special":  "密码需要包含特殊字符",
		"error.captcha_required":       "请完成验证码",
		"error.captcha_invalid":        "验证码不正确",
		"error.captcha_generate_failed": "生成验证码失败",
		"error.upload_failed":          "上传失败",
		"error.upload_invalid":         "上传文件不合法",
		"error.login_too_many":         "登录尝试过于频繁，请 %d 秒后再试",
		"error.rate_limited":           "请求过于频繁，请 %d 秒后再试",
		"error.rate_limit_unavailable": "限流服务不可用",
		"error.auth_header_missing":    "缺少认证信息",
		"error.auth_header_invalid":    "认证信息格式不正确",
		"error.token_invalid":          "登录凭证无效",
		"error.token_revoked":          "登录凭证已失效，请重新登录",
		"error.jwt_secret_missing":     "服务端未配置签名密钥",
		"error.user_id_invalid":        "用户标识不合法",
		"error.user_id_type_invalid":   "用户标识类型错误",
		"error.admin_id_invalid":       "管理员标识不合法",
		"error.admin_id_type_invalid":  "管理员标识类型错误",
	},
	LocaleEN: {
		"error.bad_request":            "invalid request",
		"error.unauthorized":           "authentication required",
		"error.forbidden":              "permission denied",
		"error.not_found":              "not found",
		"error.internal":               "internal server error",
		"error.validation_failed":      "validation failed",
		"error.post_not_found":         "post not found",
		"error.post_fetch_failed":      "failed to fetch post",
		"error.post_create_failed":     "failed to create post",
		"error.post_update_failed":     "failed to update post",
		"error.post_delete_failed":     "failed to delete post",
		"error.comment_not_found":      "comment not found",
		"error.comment_create_failed":  "failed to create comment",
		"error.comment_update_failed":  "failed to update comment",
		"error.comment_delete_failed":  "failed to delete comment",
		"error.category_not_found":     "category not found",
		"error.category_fetch_failed":  "failed to fetch category",
		"error.category_create_failed": "failed to create category",
		"error.category_update_failed": "failed to update category",
		"error.category_delete_failed": "failed to delete category",
		"error.location_not_found":     "location not found",
		"error.location_fetch_failed":  "failed to fetch location",
		"error.location_create_failed": "failed to create location",
		"error.location_update_failed": "failed to update location",
		"error.location_delete_failed": "failed to delete location",
		"error.slug_exists":            "slug already taken",
		"error.slug_invalid":           "slug may contain only letters, digits, hyphens and underscores",
		"error.user_not_found":         "user not found",
		"error.users_fetch_failed":     "failed to fetch users",
		"error.profile_fetch_failed":   "failed to fetch profile",
		"error.profile_update_failed":  "failed to update profile",
		"error.username_exists":        "username already taken",
		"error.username_invalid":       "username may contain only letters, digits, hyphens and underscores",
		"error.email_exists":           "email already registered",
		"error.email_invalid":          "invalid email address",
		"error.invalid_credentials":    "invalid username or password",
		"error.user_disabled":          "account disabled",
		"error.register_failed":        "registration failed",
		"error.login_failed":           "login failed",
		"error.password_incorrect":     "current password is incorrect",
		"error.password_update_failed": "failed to change password",
		"error.password_too_short":     "password must be at least %d characters",
		"error.password_need_upper":    "password needs an uppercase letter",
		"error.password_need_lower":    "password needs a lowercase letter",
		"error.password_need_number":   "password needs a digit",
		"error.password_need_special":  "password needs a special character",
		"error.captcha_required":       "captcha required",
		"error.captcha_invalid":        "captcha incorrect",
		"error.captcha_generate_failed": "failed to generate captcha",
		"error.upload_failed":          "upload failed",
		"error.upload_invalid":         "invalid upload",
		"error.login_too_many":         "too many login attempts, retry in %d seconds",
		"error.rate_limited":           "too many requests, retry in %d seconds",
		"error.rate_limit_unavailable": "rate limiter unavailable",
		"error.auth_header_missing":    "missing authorization header",
		"error.auth_header_invalid":    "malformed authorization header",
		"error.token_invalid":          "invalid token",
		"error.token_revoked":          "token revoked, please sign in again",
		"error.jwt_secret_missing":     "server signing secret not configured",
		"error.user_id_invalid":        "invalid user id",
		"error.user_id_type_invalid":   "unexpected user id type",
		"error.admin_id_invalid":       "invalid admin id",
		"error.admin_id_type_invalid":  "unexpected admin id type",
	},
}

// ResolveLocale 解析请求语言
// 优先级：lang 查询参数 > X-Locale 头 > Accept-Language 头
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if locale := normalizeLocaleTag(c.Query("lang")); locale != "" {
		return locale
	}
	if locale := normalizeLocaleTag(c.GetHeader("X-Locale")); locale != "" {
		return locale
	}
	accept := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(accept, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if locale := normalizeLocaleTag(tag); locale != "" {
			return locale
		}
	}
	return DefaultLocale
}

// T 按语言返回消息文案，找不到时回退默认语言，再回退 key 本身
func T(locale, key string) string {
	if m, ok := messages[normalizeLocale(locale)]; ok {
		if msg, ok := m[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 返回带参数的消息文案
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

func normalizeLocale(locale string) string {
	if normalized := normalizeLocaleTag(locale); normalized != "" {
		return normalized
	}
	return DefaultLocale
}

func normalizeLocaleTag(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	lower := strings.ToLower(tag)
	switch {
	case strings.HasPrefix(lower, "zh"):
		return LocaleZH
	case strings.HasPrefix(lower, "en"):
		return LocaleEN
	default:
		return ""
	}
}
