package consts

const (
	IdentityTokenKey      = "identity:token:"
	UserFollowerKey       = "user:follower:"
	UserFollowingKey      = "user:following:"
	UserFollowerCountKey  = "user:follower:count:"
	UserFollowingCountKey = "user:following:count:"
	PostLikeKey           = "post:like:"
	PostCommentKey        = "post:comment:"
	PostDirtyKey          = "post:dirty"
	FeedTrendingKey       = "feed:trending:"
)

const (
	CounterReconcileLock = "lock:counter:reconcile"
)
