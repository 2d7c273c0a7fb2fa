package constants

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 字段长度约束
const (
	TitleMaxLength    = 256
	UsernameMaxLength = 150
	SlugMaxLength     = 64
)

// 验证码场景常量
const (
	CaptchaSceneLogin    = "login"
	CaptchaSceneRegister = "register"
)

// 队列与任务常量
const (
	QueueDefault            = "default"
	TaskCommentNotification = "comment:notification"
)

// 上传场景常量
const (
	UploadScenePost     = "post"
	UploadSceneAvatar   = "avatar"
	UploadSceneCategory = "category"
	UploadSceneCommon   = "common"
)
