package consts

// 帖子目标平台
const (
	PlatformTwitter   = "twitter"
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
	PlatformLinkedin  = "linkedin"
	PlatformAll       = "all"
)

// Platforms 全部合法平台
var Platforms = []string{PlatformTwitter, PlatformFacebook, PlatformInstagram, PlatformLinkedin}

// IsValidPlatform 校验平台取值
func IsValidPlatform(p string) bool {
	for _, v := range Platforms {
		if v == p {
			return true
		}
	}
	return false
}

// 帖子生命周期状态
const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
	PostStatusFailed    = "failed"
)

// IsValidPostStatus 校验状态取值
func IsValidPostStatus(s string) bool {
	switch s {
	case PostStatusDraft, PostStatusScheduled, PostStatusPublished, PostStatusFailed:
		return true
	}
	return false
}

// 角色
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"

	RoleUserID  uint64 = 1
	RoleAdminID uint64 = 2
)

// EngagementRetentionDays 互动事件保留窗口（天），超期数据由定时任务清除
const EngagementRetentionDays = 90
