package api

import (
	"Inkstone/internal/api/middleware"
	"Inkstone/internal/pkg/identity"
	"Inkstone/internal/pkg/logger"
	"Inkstone/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, userSvc service.UserService, idClient identity.Client) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	auth := middleware.AuthMiddleware(userSvc, idClient)
	authOpt := middleware.AuthOptionalMiddleware(userSvc, idClient)

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			userGroup.GET("/by-username/:username", group.UserHandler.GetUserByUsername)

			authGroup := userGroup.Group("")
			authGroup.Use(auth)
			{
				authGroup.GET("/info", group.UserHandler.GetUserInfo)
				authGroup.PUT("/info", group.UserHandler.UpdateProfile)
				authGroup.PUT("/username", group.UserHandler.ChangeUsername)
			}
		}

		userFollowGroup := apiGroup.Group("/user-relation")
		{
			userFollowGroup.Use(auth)
			{
				userFollowGroup.GET("/followers", group.UserFollowHandler.GetUserFollowers)
				userFollowGroup.GET("/followers/count", group.UserFollowHandler.GetUserFollowersCount)
				userFollowGroup.GET("/followings", group.UserFollowHandler.GetUserFollowings)
				userFollowGroup.GET("/followings/count", group.UserFollowHandler.GetUserFollowingCount)
				userFollowGroup.GET("/isfollow/:following_id", group.UserFollowHandler.GetSomeoneIsFollowing)
				userFollowGroup.POST("/follow/:following_id", group.UserFollowHandler.ToggleFollow)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			authGroup := postGroup.Group("")
			authGroup.Use(auth)
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.PUT("/:post_id", group.PostHandler.UpdatePost)
				authGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
				authGroup.GET("/draft", group.PostHandler.GetDraft)
				authGroup.GET("/self", group.PostHandler.GetMyPosts)
				authGroup.GET("/self/:post_id", group.PostHandler.GetMyPost)
				authGroup.POST("/draft/generate", group.PostHandler.GenerateDraft)
			}
		}

		postActionGroup := apiGroup.Group("/post/action")
		{
			postActionGroup.GET("/comments/:post_id", group.PostActionHandler.GetComments)
			postActionGroup.GET("/comments/:post_id/count", group.PostActionHandler.GetCommentCount)
			postActionGroup.GET("/likes/:post_id/count", group.PostActionHandler.GetLikeCount)
			postActionGroup.POST("/views/:post_id", group.PostActionHandler.RecordView)

			authActionGroup := postActionGroup.Group("")
			authActionGroup.Use(auth)
			{
				authActionGroup.POST("/likes/:post_id", group.PostActionHandler.ToggleLike)
				authActionGroup.GET("/likes/:post_id/state", group.PostActionHandler.GetLikeStatus)
				authActionGroup.POST("/comments/:post_id", group.PostActionHandler.AddComment)
				authActionGroup.DELETE("/comments/:comment_id", group.PostActionHandler.DeleteComment)
			}
		}

		feedGroup := apiGroup.Group("/feed")
		feedGroup.Use(authOpt)
		{
			feedGroup.GET("", group.FeedHandler.GetFeed)
			feedGroup.GET("/trending", group.FeedHandler.GetTrending)
			feedGroup.GET("/suggested-users", group.FeedHandler.GetSuggestedUsers)
			feedGroup.GET("/search", group.FeedHandler.SearchPosts)
			feedGroup.GET("/users/:username/posts", group.FeedHandler.GetUserPosts)
			feedGroup.GET("/users/:username/posts/:post_id", group.FeedHandler.GetUserPost)
		}

		dashboardGroup := apiGroup.Group("/dashboard")
		dashboardGroup.Use(auth)
		{
			dashboardGroup.GET("/analytics", group.AnalyticsHandler.GetAnalytics)
			dashboardGroup.GET("/activity", group.AnalyticsHandler.GetRecentActivity)
			dashboardGroup.GET("/posts", group.AnalyticsHandler.GetPostsWithAnalytics)
		}

		mediaGroup := apiGroup.Group("/media")
		{
			mediaGroup.Use(auth)
			mediaGroup.POST("/upload-auth", group.MediaHandler.GetUploadAuth)
		}
	}

	return r
}
