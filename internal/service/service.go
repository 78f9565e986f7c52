package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"data-catalog/internal/config"
	"data-catalog/internal/pkg/logger"
	"data-catalog/internal/repository"
	"data-catalog/internal/service/approval"
	"data-catalog/internal/service/changelog"
	"data-catalog/internal/service/docupload"
	"data-catalog/internal/service/favorite"
	"data-catalog/internal/service/lineage"
	"data-catalog/internal/service/notification"
	"data-catalog/internal/service/product"
	"data-catalog/internal/service/seed"
)

type Services struct {
	Product       product.Service
	Changelog     changelog.Service
	Approval      approval.Service
	Favorite      favorite.Service
	Lineage       lineage.Service
	Documentation docupload.Service
	Notification  notification.Service
	Seed          seed.Service
}

// NewServices wires every service. redis and minioClient may be nil; the stats
// cache and documentation upload are then disabled.
func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config, log *logger.Logger) *Services {
	productService := product.NewService(repos, product.Options{
		Redis:    redis,
		StatsTTL: cfg.StatsCacheTTL,
		Locale:   cfg.DefaultLocale,
		Logger:   log,
	})
	changelogService := changelog.NewService(repos.ProductChange)
	notificationService := notification.NewService(cfg, log)

	approvalService := approval.NewService(repos, productService, log)
	approvalService.SetNotificationService(notificationService)

	var objectStore docupload.ObjectStore
	if minioClient != nil {
		objectStore = minioClient
	}
	documentationService := docupload.NewService(objectStore, productService, cfg.MinIOBucket, cfg.MinIOPublicBaseURL(), log)

	return &Services{
		Product:       productService,
		Changelog:     changelogService,
		Approval:      approvalService,
		Favorite:      favorite.NewService(repos.Favorite, repos.Product),
		Lineage:       lineage.NewService(repos),
		Documentation: documentationService,
		Notification:  notificationService,
		Seed:          seed.NewService(repos, productService, log),
	}
}
