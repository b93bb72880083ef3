package dto

// WaterfallQueryDTO 瀑布流查询参数
type WaterfallQueryDTO struct {
	Limit  int `form:"limit,default=10" binding:"omitempty,min=1,max=50"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}

// SearchQueryDTO 搜索分页参数
type SearchQueryDTO struct {
	Keyword  string `form:"keyword" binding:"required"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize,default=10" binding:"omitempty,min=1,max=50"`
}

// LimitQueryDTO 只带条数上限的查询
type LimitQueryDTO struct {
	Limit int `form:"limit,default=10" binding:"omitempty,min=1,max=50"`
}

// MyPostsQueryDTO 作者文章列表查询，status 为空表示不过滤
type MyPostsQueryDTO struct {
	Status string `form:"status" binding:"omitempty,oneof=draft published"`
	Limit  int    `form:"limit,default=10" binding:"omitempty,min=1,max=50"`
}
