package routers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"Storefront/handlers"
	"Storefront/middleware"
	"Storefront/views"
)

type Options struct {
	TrustedProxies []string
	Log            logrus.FieldLogger
}

func SetupRouters(deps handlers.Deps, checker middleware.TokenChecker, opts Options) (*gin.Engine, error) {
	//建立Gin路由器
	router := gin.New()
	if err := router.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(views.Templates())

	h := handlers.New(deps)

	router.Use(
		middleware.RequestLogger(opts.Log),
		deps.Sessions.Middleware(),
		middleware.RecoverMiddleware(deps.Sessions, opts.Log),
		middleware.AuthMiddleware(deps.Tokens, checker, opts.Log),
	)

	////無須登入
	{
		//查詢商品列表
		router.GET("/", h.Index)
		//查詢商品詳細資料
		router.GET("/products/:productID", h.ProductDetails)
		//查詢分類商品
		router.GET("/products/category/:categoryID", h.CategoryProducts)

		//查詢購物車商品
		router.GET("/cart", h.CartList)
		//新增商品至購物車
		router.POST("/cart", h.AddToCart)
		//刪除購物車商品
		router.POST("/cart/remove", h.RemoveFromCart)
		//更新購物車商品數量
		router.POST("/cart/update", h.UpdateCartItem)
		//清除購物車商品
		router.GET("/cart/clear", h.ClearCart)

		//登入
		router.GET("/login", h.LoginForm)
		router.POST("/login", h.Login)
		//登出
		router.GET("/logout", h.Logout)
	}

	////需要admin身分，使用中間件檢查是否登入及admin權限
	adminRequired := router.Group("/admin")
	adminRequired.Use(
		middleware.CheckLoginMiddleware(deps.Sessions, opts.Log),
		middleware.CheckAdminPermissionMiddleware(),
	)
	{
		adminRequired.GET("/dashboard", h.Dashboard)
		//新增商品
		adminRequired.POST("/products", h.CreateProduct)
		//刪除商品
		adminRequired.POST("/products/:productID/delete", h.DeleteProduct)
		//新增分類
		adminRequired.POST("/categories", h.CreateCategory)
	}

	return router, nil
}
