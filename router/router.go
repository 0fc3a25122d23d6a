package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pandukusuma/qr-order-app/controllers"
	"github.com/pandukusuma/qr-order-app/live"
	"github.com/pandukusuma/qr-order-app/middlewares"
	"github.com/pandukusuma/qr-order-app/models"
	"github.com/pandukusuma/qr-order-app/services"
)

// Deps adalah dependency yang dirakit main dan dibagikan antar controller.
type Deps struct {
	DB        *gorm.DB
	Carts     *services.CartStore
	Repo      services.OrderRepository
	Workflow  *services.OrderWorkflow
	Printer   *services.InvoicePrinter
	Gateway   *services.PaymentGateway
	Hub       *live.Hub
	UploadDir string
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	globalLimiter := middlewares.NewRateLimiter(120, 60)
	r.Use(globalLimiter.RateLimit())

	userCtrl := controllers.NewUserController(d.DB)
	publicCtrl := controllers.NewPublicOrderController(d.DB, d.Carts, d.Repo, d.Workflow, d.UploadDir)
	cashierCtrl := controllers.NewCashierOrderController(d.DB, d.Repo, d.Workflow, d.Printer, d.Gateway, d.Hub)
	categoryCtrl := controllers.NewMenuCategoryController(d.DB)
	menuCtrl := controllers.NewMenuController(d.DB)
	optionCtrl := controllers.NewOptionGroupController(d.DB)
	tableCtrl := controllers.NewTableController(d.DB)
	tenantCtrl := controllers.NewTenantController(d.DB)
	adminCtrl := controllers.NewAdminController(d.DB)
	reportCtrl := controllers.NewReportController(d.DB)

	// ===== Auth =====
	auth := r.Group("/api/auth")
	{
		strict := middlewares.NewStrictRateLimiter()
		auth.POST("/login", strict, userCtrl.Login)
		auth.POST("/register", strict, middlewares.AuthMiddleware(),
			middlewares.RequireRole(models.RoleAdmin), userCtrl.Register)
		auth.GET("/profile", middlewares.AuthMiddleware(), userCtrl.GetProfile)
	}

	// ===== Publik (customer, tanpa login) =====
	public := r.Group("/api/public/:tenant")
	{
		public.GET("/menu", publicCtrl.GetMenu)
		public.GET("/scan/:qr_token", publicCtrl.ScanTable)

		public.POST("/cart/lines", publicCtrl.AddCartLine)
		public.DELETE("/cart/lines/:client_id", publicCtrl.RemoveCartLine)
		public.GET("/cart", publicCtrl.GetCartSummary)

		public.POST("/checkout", publicCtrl.Checkout)
		public.POST("/orders/:order_code/proof", publicCtrl.UploadProof)
		public.GET("/orders/:order_code", publicCtrl.TrackOrder)
	}

	// Callback gateway pembayaran (server-to-server, di luar scope tenant slug)
	r.POST("/api/payments/callback", publicCtrl.PaymentCallback)

	// ===== Kasir =====
	cashier := r.Group("/api/cashier",
		middlewares.AuthMiddleware(),
		middlewares.RequireRole(models.RoleCashier, models.RoleAdmin))
	{
		cashier.GET("/orders", cashierCtrl.GetAllOrders)
		cashier.GET("/orders/:order_id", cashierCtrl.GetOrderByID)
		cashier.PATCH("/orders/:order_id/status", cashierCtrl.UpdateOrderStatus)
		cashier.PATCH("/orders/:order_id/payment", cashierCtrl.UpdatePaymentStatus)
		cashier.POST("/orders/:order_id/print", cashierCtrl.PrintInvoice)
		cashier.POST("/orders/:order_id/mark-printed", cashierCtrl.MarkInvoicePrinted)
		cashier.POST("/orders/:order_id/qris", cashierCtrl.CreateQRISCharge)
	}

	// Websocket dashboard kasir; token lewat query string
	r.GET("/ws/cashier",
		middlewares.AuthMiddleware(),
		middlewares.RequireRole(models.RoleCashier, models.RoleAdmin),
		cashierCtrl.Dashboard)

	// ===== Admin tenant =====
	tenant := r.Group("/api/tenant",
		middlewares.AuthMiddleware(),
		middlewares.RequireRole(models.RoleAdmin))
	{
		tenant.GET("/categories", categoryCtrl.GetAllCategories)
		tenant.POST("/categories", categoryCtrl.CreateCategory)
		tenant.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
		tenant.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

		tenant.GET("/menus", menuCtrl.GetAllMenus)
		tenant.GET("/menus/:menu_id", menuCtrl.GetMenuByID)
		tenant.POST("/menus", menuCtrl.CreateMenu)
		tenant.PATCH("/menus/:menu_id", menuCtrl.UpdateMenu)
		tenant.DELETE("/menus/:menu_id", menuCtrl.DeleteMenu)

		tenant.GET("/option-groups", optionCtrl.GetAllGroups)
		tenant.POST("/option-groups", optionCtrl.CreateGroup)
		tenant.PATCH("/option-groups/:group_id", optionCtrl.UpdateGroup)
		tenant.DELETE("/option-groups/:group_id", optionCtrl.DeleteGroup)
		tenant.POST("/option-groups/:group_id/items", optionCtrl.CreateItem)
		tenant.PATCH("/option-items/:item_id", optionCtrl.UpdateItem)
		tenant.DELETE("/option-items/:item_id", optionCtrl.DeleteItem)

		tenant.GET("/tables", tableCtrl.GetAllTables)
		tenant.POST("/tables", tableCtrl.CreateTable)
		tenant.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
		tenant.POST("/tables/:table_id/regenerate-qr", tableCtrl.RegenerateQR)
		tenant.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

		tenant.GET("/users", userCtrl.GetAllUsers)
		tenant.DELETE("/users/:user_id", userCtrl.DeleteUser)

		tenant.GET("/settings", tenantCtrl.GetSettings)
		tenant.PATCH("/settings", tenantCtrl.UpdateSettings)
		tenant.GET("/bank-accounts", tenantCtrl.GetBankAccounts)
		tenant.POST("/bank-accounts", tenantCtrl.CreateBankAccount)
		tenant.PATCH("/bank-accounts/:account_id", tenantCtrl.UpdateBankAccount)
		tenant.DELETE("/bank-accounts/:account_id", tenantCtrl.DeleteBankAccount)

		tenant.GET("/reports/sales", reportCtrl.SalesSummary)
		tenant.GET("/reports/sales/chart", reportCtrl.SalesChart)
	}

	// ===== Super admin =====
	admin := r.Group("/api/admin",
		middlewares.AuthMiddleware(),
		middlewares.RequireRole(models.RoleSuperAdmin))
	{
		admin.GET("/tenants", adminCtrl.GetAllTenants)
		admin.POST("/tenants", adminCtrl.CreateTenant)
		admin.PATCH("/tenants/:tenant_id", adminCtrl.UpdateTenant)

		admin.GET("/plans", adminCtrl.GetAllPlans)
		admin.POST("/plans", adminCtrl.CreatePlan)
	}

	return r
}
