package service

import "errors"

// 业务层统一错误，handler 按错误类型映射响应码
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrForbidden          = errors.New("没有操作权限")
	ErrSlugExists         = errors.New("slug 已被占用")
	ErrSlugInvalid        = errors.New("slug 格式不合法")
	ErrUsernameExists     = errors.New("用户名已被占用")
	ErrUsernameInvalid    = errors.New("用户名格式不合法")
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrEmailInvalid       = errors.New("邮箱格式不合法")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserDisabled       = errors.New("账号已被禁用")
	ErrPasswordIncorrect  = errors.New("原密码不正确")
	ErrWeakPassword       = errors.New("密码不符合安全策略")
	ErrCaptchaRequired    = errors.New("需要验证码")
	ErrCaptchaInvalid     = errors.New("验证码不正确")
	ErrValidation         = errors.New("表单校验失败")

	ErrEmailServiceDisabled      = errors.New("邮件服务未启用")
	ErrEmailServiceNotConfigured = errors.New("邮件服务未配置")
)

// ValidationError 字段级校验错误
// errors.Is(err, ErrValidation) 成立，Fields 为字段到错误文案 key 的映射
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error()
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError 构造字段级校验错误
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}
