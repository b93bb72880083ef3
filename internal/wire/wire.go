package wire

import (
	"Inkstone/internal/api"
	"Inkstone/internal/api/config"
	"Inkstone/internal/api/handler"
	"Inkstone/internal/job"
	"Inkstone/internal/pkg/cron"
	"Inkstone/internal/pkg/es"
	"Inkstone/internal/pkg/identity"
	"Inkstone/internal/pkg/kafka"
	"Inkstone/internal/repository"
	"Inkstone/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronManager  *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	postRepo := repository.NewPostRepo(db)
	postActionRepo := repository.NewPostActionRepo(db)
	followRepo := repository.NewFollowRepo(db)
	dailyStatRepo := repository.NewDailyStatRepo(db)
	postESRepo := es.NewPostRepo(es.Client)

	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(postRepo)
	postActionService := service.NewPostActionService(postActionRepo, postRepo, userRepo, dailyStatRepo)
	userFollowService := service.NewUserFollowService(followRepo, userRepo)
	feedService := service.NewFeedService(postRepo, userRepo, followRepo, postESRepo)
	analyticsService := service.NewAnalyticsService(postRepo, postActionRepo, followRepo, dailyStatRepo)

	idClient := identity.NewClient(cfg.Identity)

	handlers := &api.HandlersGroup{
		UserHandler:       handler.NewUserHandler(userService),
		UserFollowHandler: handler.NewUserFollowHandler(userFollowService),
		PostHandler:       handler.NewPostHandler(postService),
		PostActionHandler: handler.NewPostActionHandler(postActionService),
		FeedHandler:       handler.NewFeedHandler(feedService),
		AnalyticsHandler:  handler.NewAnalyticsHandler(analyticsService),
		MediaHandler:      handler.NewMediaHandler(),
	}

	router := api.SetupRouter(handlers, userService, idClient)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, userRepo, postESRepo)
	if err != nil {
		return nil, err
	}

	cronMgr := cron.NewCronManager(job.NewCounterReconcileJob(postActionService))

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronManager:  cronMgr,
	}, nil
}
