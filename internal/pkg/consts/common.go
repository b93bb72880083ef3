package consts

const (
	MaxPostTags     = 10
	MaxBioLength    = 300
	MaxCommentChars = 1000

	MinUsernameLength = 3
	MaxUsernameLength = 20
)

// TrendingWindowDays 热门榜候选集的滑动窗口
const TrendingWindowDays = 7

const DefaultAvatarURL = "default_avatar.png"
