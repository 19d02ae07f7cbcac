package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chuyu5762/guestbook-backend/internal/config"
	"github.com/chuyu5762/guestbook-backend/internal/database"
	"github.com/chuyu5762/guestbook-backend/internal/handler"
	"github.com/chuyu5762/guestbook-backend/internal/middleware"
	"github.com/chuyu5762/guestbook-backend/internal/model"
	"github.com/chuyu5762/guestbook-backend/internal/redis"
	"github.com/chuyu5762/guestbook-backend/internal/repository"
	"github.com/chuyu5762/guestbook-backend/internal/service"
	"github.com/chuyu5762/guestbook-backend/web"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化数据库连接
	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	defer database.Close()
	log.Println("数据库连接成功")

	// 自动迁移数据库表
	if err := database.AutoMigrate(&model.Entry{}); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}
	log.Println("数据库迁移完成")

	// 初始化 Redis 连接（可选，仅用于公开列表缓存）
	var cacheClient *goredis.Client
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			log.Fatalf("初始化 Redis 失败: %v", err)
		}
		defer redis.Close()
		cacheClient = redis.GetClient()
		log.Println("Redis 连接成功")
	}

	// 初始化 Repository
	entryRepo := repository.NewEntryRepository(database.GetDB())

	// 初始化 Service
	listingCache := service.NewListingCache(cacheClient, cfg.Redis.CacheTTL)
	entryService := service.NewEntryService(entryRepo, listingCache, &cfg.Guestbook)

	// 初始化 Handler
	guestbookHandler := handler.NewGuestbookHandler(entryService, &cfg.Guestbook)
	adminHandler := handler.NewAdminHandler(entryService, &cfg.Guestbook)
	assetHandler := handler.NewAssetHandler()

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()

	// 全局中间件
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	// 页面模板
	router.SetHTMLTemplate(web.MustTemplates())

	// 路由按调度优先级注册，顺序是契约

	// 1. 配置的上游代理资源（精确路径）
	for _, route := range cfg.Assets {
		router.GET(route.Path, assetHandler.Proxy(route))
	}

	// 2. 内置静态资源
	router.GET("/static/style.css", assetHandler.Stylesheet)
	router.GET("/static/script.js", assetHandler.Script)

	// 3. 管理后台（整个前缀都在认证门之后）
	admin := router.Group("/admin", middleware.BasicAuth(&cfg.Admin))
	{
		admin.GET("", adminHandler.Index)
		admin.GET("/*path", adminHandler.Index)
		admin.POST("/moderate", adminHandler.Moderate)
	}

	// 4. 留言提交
	router.POST("/api/submit", guestbookHandler.Submit)

	// 5. 公开留言列表
	router.GET("/api/entries", guestbookHandler.ListEntries)

	// 6. 公开首页
	router.GET("/", guestbookHandler.Index)

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		if err := database.Ping(); err != nil {
			dbStatus = "error"
		}

		redisStatus := "disabled"
		if cacheClient != nil {
			redisStatus = "ok"
			if err := cacheClient.Ping(c.Request.Context()).Err(); err != nil {
				redisStatus = "error"
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"time":     time.Now().Format(time.RFC3339),
			"database": dbStatus,
			"redis":    redisStatus,
		})
	})

	// 7. 其余路径：管理前缀下未匹配的方法和路径仍先过认证门，其它一律 404
	router.NoRoute(handler.NoRoute(middleware.BasicAuth(&cfg.Admin), adminHandler))

	// 创建 HTTP 服务器
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		log.Printf("服务启动，监听地址: %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，等待 5 秒
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务关闭失败: %v", err)
	}

	log.Println("服务已关闭")
}
