package consts

const (
	// TokenRevokedKey 已注销 Token 签名黑名单前缀
	TokenRevokedKey = "auth:token:revoked:"
)

const (
	// 定时任务分布式锁，多实例部署时保证任务单发
	PublishPostsLock         = "lock:job:publish_posts"
	EngagementSimulationLock = "lock:job:engagement_simulation"
	EventRetentionLock       = "lock:job:event_retention"
)
