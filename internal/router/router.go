package router

import (
	"vaatco/internal/handlers"
	"vaatco/internal/middleware"
	"vaatco/internal/models"
	"vaatco/internal/services"
	"vaatco/pkg/response"
	"vaatco/pkg/storage"

	"github.com/gin-gonic/gin"
)

// SetupRouter 设置路由
func SetupRouter(store storage.Store) *gin.Engine {
	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SetupCORS())

	registerRoutes(router, store)
	return router
}

// 注册所有路由
func registerRoutes(router *gin.Engine, store storage.Store) {

	auth := middleware.NewAuthMiddleware()
	rateLimit := middleware.RateLimit()

	adminService := services.NewAdminService()
	authHandler := handlers.NewAuthHandler(adminService)
	adminHandler := handlers.NewAdminHandler(adminService)
	categoryHandler := handlers.NewCategoryHandler(services.NewCategoryService())
	productHandler := handlers.NewProductHandler(services.NewProductService())
	dealerHandler := handlers.NewDealerHandler(services.NewDealerService())
	blogHandler := handlers.NewBlogHandler(services.NewBlogService())
	galleryHandler := handlers.NewGalleryHandler(services.NewGalleryService(store))

	api := router.Group("/api/v1")
	{
		// 健康检查接口
		api.GET("/health", healthCheck)
		api.GET("/ping", ping)

		// 认证
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", rateLimit, authHandler.Login)
			authGroup.GET("/me", auth.RequireLogin(), authHandler.Profile)
			authGroup.PUT("/me", auth.RequireLogin(), authHandler.UpdateProfile)
			authGroup.PUT("/me/password", auth.RequireLogin(), authHandler.ChangePassword)
		}

		// 公开读取路由，带限流
		public := api.Group("", rateLimit)
		{
			public.GET("/categories", categoryHandler.ListPublic)

			public.GET("/products", productHandler.ListPublic)
			public.GET("/products/featured", productHandler.Featured)
			public.GET("/products/:slug", productHandler.GetBySlug)
			public.GET("/products/:slug/related", productHandler.Related)

			public.GET("/dealers", dealerHandler.ListPublic)
			public.GET("/dealers/featured", dealerHandler.Featured)
			public.GET("/dealers/:slug", dealerHandler.GetBySlug)

			public.GET("/blogs", blogHandler.ListPublic)
			public.GET("/blogs/featured", blogHandler.Featured)
			public.GET("/blogs/recent", blogHandler.Recent)
			public.GET("/blogs/tags", blogHandler.Tags)
			public.GET("/blogs/:slug", blogHandler.GetBySlug)

			public.GET("/gallery", galleryHandler.ListPublic)
			public.GET("/gallery/featured", galleryHandler.Featured)
			public.GET("/gallery/recent", galleryHandler.Recent)
		}

		// 管理端路由，登录加模块权限
		admin := api.Group("/admin", auth.RequireLogin())
		{
			admin.GET("/dashboard", adminHandler.Dashboard)

			categories := admin.Group("/categories")
			{
				categories.GET("", auth.RequirePermission(models.ModuleCategories, models.ActionRead), categoryHandler.List)
				categories.GET("/:id", auth.RequirePermission(models.ModuleCategories, models.ActionRead), categoryHandler.GetByID)
				categories.POST("", auth.RequirePermission(models.ModuleCategories, models.ActionCreate), categoryHandler.Create)
				categories.PUT("/:id", auth.RequirePermission(models.ModuleCategories, models.ActionUpdate), categoryHandler.Update)
				categories.DELETE("/:id", auth.RequirePermission(models.ModuleCategories, models.ActionDelete), categoryHandler.Delete)
			}

			products := admin.Group("/products")
			{
				products.GET("", auth.RequirePermission(models.ModuleProducts, models.ActionRead), productHandler.List)
				products.GET("/:id", auth.RequirePermission(models.ModuleProducts, models.ActionRead), productHandler.GetByID)
				products.POST("", auth.RequirePermission(models.ModuleProducts, models.ActionCreate), productHandler.Create)
				products.PUT("/:id", auth.RequirePermission(models.ModuleProducts, models.ActionUpdate), productHandler.Update)
				products.PATCH("/:id/status", auth.RequirePermission(models.ModuleProducts, models.ActionUpdate), productHandler.ToggleStatus)
				products.PATCH("/:id/featured", auth.RequirePermission(models.ModuleProducts, models.ActionUpdate), productHandler.ToggleFeatured)
				products.PUT("/bulk", auth.RequirePermission(models.ModuleProducts, models.ActionUpdate), productHandler.BulkUpdate)
				products.GET("/stats", auth.RequirePermission(models.ModuleProducts, models.ActionRead), productHandler.Stats)
				products.DELETE("/:id", auth.RequirePermission(models.ModuleProducts, models.ActionDelete), productHandler.Delete)
			}

			dealers := admin.Group("/dealers")
			{
				dealers.GET("", auth.RequirePermission(models.ModuleDealers, models.ActionRead), dealerHandler.List)
				dealers.GET("/:id", auth.RequirePermission(models.ModuleDealers, models.ActionRead), dealerHandler.GetByID)
				dealers.POST("", auth.RequirePermission(models.ModuleDealers, models.ActionCreate), dealerHandler.Create)
				dealers.PUT("/:id", auth.RequirePermission(models.ModuleDealers, models.ActionUpdate), dealerHandler.Update)
				dealers.PATCH("/:id/status", auth.RequirePermission(models.ModuleDealers, models.ActionUpdate), dealerHandler.ToggleStatus)
				dealers.PATCH("/:id/verified", auth.RequirePermission(models.ModuleDealers, models.ActionUpdate), dealerHandler.ToggleVerified)
				dealers.PATCH("/:id/featured", auth.RequirePermission(models.ModuleDealers, models.ActionUpdate), dealerHandler.ToggleFeatured)
				dealers.DELETE("/:id", auth.RequirePermission(models.ModuleDealers, models.ActionDelete), dealerHandler.Delete)
			}

			blogs := admin.Group("/blogs")
			{
				blogs.GET("", auth.RequirePermission(models.ModuleBlogs, models.ActionRead), blogHandler.List)
				blogs.GET("/:id", auth.RequirePermission(models.ModuleBlogs, models.ActionRead), blogHandler.GetByID)
				blogs.POST("", auth.RequirePermission(models.ModuleBlogs, models.ActionCreate), blogHandler.Create)
				blogs.PUT("/:id", auth.RequirePermission(models.ModuleBlogs, models.ActionUpdate), blogHandler.Update)
				blogs.PATCH("/:id/featured", auth.RequirePermission(models.ModuleBlogs, models.ActionUpdate), blogHandler.ToggleFeatured)
				blogs.DELETE("/:id", auth.RequirePermission(models.ModuleBlogs, models.ActionDelete), blogHandler.Delete)
			}

			gallery := admin.Group("/gallery")
			{
				gallery.GET("", auth.RequirePermission(models.ModuleGallery, models.ActionRead), galleryHandler.List)
				gallery.GET("/selection", auth.RequirePermission(models.ModuleGallery, models.ActionRead), galleryHandler.Selection)
				gallery.GET("/by-usage", auth.RequirePermission(models.ModuleGallery, models.ActionRead), galleryHandler.ByUsage)
				gallery.GET("/stats", auth.RequirePermission(models.ModuleGallery, models.ActionRead), galleryHandler.Stats)
				gallery.GET("/:id", auth.RequirePermission(models.ModuleGallery, models.ActionRead), galleryHandler.GetByID)
				gallery.POST("/upload", auth.RequirePermission(models.ModuleGallery, models.ActionCreate), middleware.ValidateUpload("image"), galleryHandler.Upload)
				gallery.POST("/upload-many", auth.RequirePermission(models.ModuleGallery, models.ActionCreate), middleware.ValidateUpload("images"), galleryHandler.UploadMany)
				gallery.PATCH("/:id/status", auth.RequirePermission(models.ModuleGallery, models.ActionUpdate), galleryHandler.ToggleStatus)
				gallery.PATCH("/:id/featured", auth.RequirePermission(models.ModuleGallery, models.ActionUpdate), galleryHandler.ToggleFeatured)
				gallery.POST("/:id/usage", auth.RequirePermission(models.ModuleGallery, models.ActionUpdate), galleryHandler.IncrementUsage)
				gallery.PUT("/sort-order", auth.RequirePermission(models.ModuleGallery, models.ActionUpdate), galleryHandler.UpdateSortOrder)
				gallery.PUT("/bulk", auth.RequirePermission(models.ModuleGallery, models.ActionUpdate), galleryHandler.BulkUpdate)
				gallery.POST("/bulk-delete", auth.RequirePermission(models.ModuleGallery, models.ActionDelete), galleryHandler.BulkDelete)
				gallery.DELETE("/:id", auth.RequirePermission(models.ModuleGallery, models.ActionDelete), galleryHandler.Delete)
			}

			admins := admin.Group("/admins")
			{
				admins.GET("", auth.RequirePermission(models.ModuleAdmins, models.ActionRead), adminHandler.List)
				admins.GET("/:id", auth.RequirePermission(models.ModuleAdmins, models.ActionRead), adminHandler.GetByID)
				admins.POST("", adminHandler.Create)
				admins.PUT("/:id", adminHandler.Update)
				admins.PUT("/:id/permissions", adminHandler.UpdatePermissions)
				admins.PATCH("/:id/status", adminHandler.ToggleStatus)
				admins.DELETE("/:id", adminHandler.Delete)
			}
		}
	}
}

// 健康检查
func healthCheck(c *gin.Context) {
	response.Success(c, "Service healthy", gin.H{"status": "ok"})
}

func ping(c *gin.Context) {
	response.Success(c, "pong", nil)
}
