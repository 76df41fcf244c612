package main

import (
	"log"
	"os"
	"strconv"

	"wagerhub/config"
	"wagerhub/db"
	"wagerhub/internal/events"
	"wagerhub/middlewares"
	"wagerhub/routes"
	"wagerhub/services"
	"wagerhub/utils"
	"wagerhub/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "./config/config.yml"
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := services.InitVerificationService(cfg.Gemini.ApiKey); err != nil {
		log.Printf("AI verification unavailable: %v", err)
	}

	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	// Redis is optional; events and presence degrade to no-ops without it
	if err := events.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Printf("Redis unavailable, lobby events disabled: %v", err)
	} else {
		consumer := events.NewStreamConsumer(websocket.GetHub())
		if err := consumer.Start(); err != nil {
			log.Printf("Failed to start event consumer: %v", err)
		}
	}

	if err := middlewares.InitCasbin(cfg.Database.URI); err != nil {
		log.Printf("RBAC unavailable: %v", err)
	}

	utils.PopulateTestUsers()

	services.StartExpirySweeper(cfg.Challenges.ExpirySweepMinutes)

	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	// Public routes for authentication
	router.POST("/signup", routes.SignUpRouteHandler)
	router.POST("/verifyEmail", routes.VerifyEmailRouteHandler)
	router.POST("/login", routes.LoginRouteHandler)
	router.POST("/forgotPassword", routes.ForgotPasswordRouteHandler)
	router.POST("/confirmForgotPassword", routes.VerifyForgotPasswordRouteHandler)
	router.POST("/verifyToken", routes.VerifyTokenRouteHandler)
	router.POST("/admin/login", routes.AdminLoginRouteHandler)

	// Protected routes (JWT auth)
	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/user/fetchprofile", routes.GetProfileRouteHandler)
		auth.GET("/user/fetchprofile/:username", routes.GetProfileRouteHandler)
		auth.PUT("/user/updateprofile", routes.UpdateProfileRouteHandler)
		auth.GET("/leaderboard", routes.LeaderboardRouteHandler)

		auth.POST("/challenges", routes.CreateChallengeRouteHandler)
		auth.GET("/challenges/mine", routes.MyChallengesRouteHandler)
		auth.GET("/challenges/forme", routes.ChallengesForMeRouteHandler)
		auth.GET("/challenges/public", routes.PublicChallengesRouteHandler)
		auth.GET("/challenges/:id", routes.GetChallengeRouteHandler)
		auth.POST("/challenges/:id/accept", routes.AcceptChallengeRouteHandler)
		auth.POST("/challenges/:id/decline", routes.DeclineChallengeRouteHandler)
		auth.POST("/challenges/:id/join", routes.JoinChallengeRouteHandler)
		auth.POST("/challenges/:id/cancel", routes.CancelChallengeRouteHandler)
		auth.DELETE("/challenges/:id", routes.DeleteChallengeRouteHandler)
		auth.POST("/challenges/:id/ready", routes.MarkReadyRouteHandler)
		auth.POST("/challenges/:id/scorecard", routes.SubmitScorecardRouteHandler)
		auth.POST("/challenges/:id/proof", routes.UploadProofRouteHandler)
		auth.POST("/challenges/:id/claim", routes.ClaimRewardRouteHandler)
		auth.POST("/challenges/:id/dispute", routes.FileDisputeRouteHandler)

		auth.GET("/wallet", routes.GetBalanceRouteHandler)
		auth.POST("/wallet/deposit", routes.DepositRouteHandler)
		auth.POST("/wallet/withdraw", routes.WithdrawRouteHandler)
		auth.GET("/wallet/transactions", routes.TransactionsRouteHandler)

		auth.GET("/lobby/online", routes.OnlinePlayersRouteHandler)
	}

	// WebSocket lobby endpoint authenticates via query token
	router.GET("/ws/lobby", websocket.LobbyHandler)

	// Admin routes guarded by RBAC
	admin := router.Group("/admin")
	admin.Use(middlewares.AdminAuthMiddleware())
	{
		admin.GET("/disputes", middlewares.RBACMiddleware("dispute", "read"), routes.ListDisputesRouteHandler)
		admin.POST("/disputes/:id/resolve", middlewares.RBACMiddleware("dispute", "resolve"), routes.ResolveDisputeRouteHandler)
	}

	return router
}
