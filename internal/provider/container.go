package provider

import (
	"github.com/meiduo-next/internal/cache"
	"github.com/meiduo-next/internal/config"
	"github.com/meiduo-next/internal/logger"
	"github.com/meiduo-next/internal/models"
	"github.com/meiduo-next/internal/queue"
	"github.com/meiduo-next/internal/repository"
	"github.com/meiduo-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	CartStore   service.CartStore

	// Repositories
	UserRepo    repository.UserRepository
	AddressRepo repository.AddressRepository
	ProductRepo repository.ProductRepository
	OrderRepo   repository.OrderRepository

	// Services
	UserAuthService *service.UserAuthService
	AddressService  *service.AddressService
	ProductService  *service.ProductService
	CartService     *service.CartService
	OrderService    *service.OrderService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		CartStore:   cache.NewRedisCartStore(),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initServices() {
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.AddressService = service.NewAddressService(c.AddressRepo, c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CartService = service.NewCartService(c.CartStore, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.Config, c.CartStore, c.ProductRepo, c.OrderRepo, c.AddressRepo, c.QueueClient)
}
