package api

import "Inkstone/internal/api/handler"

type HandlersGroup struct {
	UserHandler       *handler.UserHandler
	UserFollowHandler *handler.UserFollowHandler
	PostHandler       *handler.PostHandler
	PostActionHandler *handler.PostActionHandler
	FeedHandler       *handler.FeedHandler
	AnalyticsHandler  *handler.AnalyticsHandler
	MediaHandler      *handler.MediaHandler
}
