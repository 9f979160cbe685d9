package wire

import (
	"Pulseboard/internal/api"
	"Pulseboard/internal/api/config"
	"Pulseboard/internal/api/handler"
	"Pulseboard/internal/job"
	"Pulseboard/internal/pkg/cron"
	"Pulseboard/internal/pkg/es"
	"Pulseboard/internal/pkg/kafka"
	pkgmongo "Pulseboard/internal/pkg/mongo"
	"Pulseboard/internal/repository"
	"Pulseboard/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	userRolesRepo := repository.NewUserRolesRepo(db)
	postRepo := repository.NewPostRepository(db)
	engagementRepo := repository.NewEngagementRepo(db)
	cacheRepo := pkgmongo.NewAnalyticsCacheRepo(mongoDB)
	postESRepo := es.NewPostRepo(es.Client)

	userService := service.NewUserService(userRepo, userRolesRepo)
	postService := service.NewPostService(postRepo, postESRepo)
	analyticsService := service.NewAnalyticsService(engagementRepo, postRepo, cacheRepo)

	handlers := &api.HandlersGroup{
		UserHandler:      handler.NewUserHandler(userService),
		PostHandler:      handler.NewPostHandler(postService),
		AnalyticsHandler: handler.NewAnalyticsHandler(analyticsService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, postRepo, engagementRepo)
	if err != nil {
		return nil, err
	}

	cronMgr := cron.NewCronManager(
		job.NewPublishPostJob(postRepo),
		job.NewEngagementSimulationJob(postRepo, engagementRepo),
		job.NewEventRetentionJob(engagementRepo),
	)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
