package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/schoenfeld/sfpr-api/docs"
	v1 "github.com/schoenfeld/sfpr-api/internal/api/handler/v1"
	"github.com/schoenfeld/sfpr-api/internal/api/middleware"
	"github.com/schoenfeld/sfpr-api/internal/config"
	"github.com/schoenfeld/sfpr-api/internal/repository"
	"github.com/schoenfeld/sfpr-api/internal/repository/dao"
	"github.com/schoenfeld/sfpr-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	participantHandler, participantSvc := s.initParticipantHandler(db)
	spotHandler := s.initSpotHandler(db)
	shiftHandler := s.initShiftHandler(db)
	accountingHandler := s.initAccountingHandler(db)
	s.MountHandlers(authHandler, participantHandler, spotHandler, shiftHandler, accountingHandler, participantSvc)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	participantDAO := dao.NewParticipantDAO(db)
	repo := repository.NewParticipantRepository(participantDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initParticipantHandler(db *gorm.DB) (*v1.ParticipantHandler, *service.ParticipantService) {
	participantDAO := dao.NewParticipantDAO(db)
	repo := repository.NewParticipantRepository(participantDAO)
	svc := service.NewParticipantService(repo, s.Config.Admin.Email)
	handler := v1.NewParticipantHandler(s.Config.API, svc)

	return handler, svc
}

func (s *Server) initSpotHandler(db *gorm.DB) *v1.SpotHandler {
	spotDAO := dao.NewSpotDAO(db)
	repo := repository.NewSpotRepository(spotDAO)
	svc := service.NewSpotService(repo)
	handler := v1.NewSpotHandler(svc)

	return handler
}

func (s *Server) initShiftHandler(db *gorm.DB) *v1.ShiftHandler {
	shiftDAO := dao.NewShiftDAO(db)
	repo := repository.NewShiftRepository(shiftDAO)
	svc := service.NewShiftService(repo)
	handler := v1.NewShiftHandler(svc)

	return handler
}

func (s *Server) initAccountingHandler(db *gorm.DB) *v1.AccountingHandler {
	participantRepo := repository.NewParticipantRepository(dao.NewParticipantDAO(db))
	spotRepo := repository.NewSpotRepository(dao.NewSpotDAO(db))
	svc := service.NewAccountingService(participantRepo, spotRepo, s.Config.API.SoliDiscount)
	handler := v1.NewAccountingHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	participantHandler *v1.ParticipantHandler,
	spotHandler *v1.SpotHandler,
	shiftHandler *v1.ShiftHandler,
	accountingHandler *v1.AccountingHandler,
	participantSvc middleware.ParticipantGetter,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	verifyJWT := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()

	metaHandler := v1.NewMetaHandler(s.Config.API)

	users := s.Router.Group(basePath, verifyJWT)
	{
		users.GET("/meta", metaHandler.HandleGetMeta)

		users.GET("/users/me", participantHandler.HandleGetMe)
		users.PUT("/users/me", participantHandler.HandleUpdateMe)
		users.PUT("/users/me/password", participantHandler.HandleUpdateMyPassword)

		users.GET("/spots", spotHandler.HandleListSpots)

		users.GET("/shifts", shiftHandler.HandleListShifts)
		users.POST("/shifts/:shiftID/join", shiftHandler.HandleJoinShift)
		users.DELETE("/shifts/:shiftID/join", shiftHandler.HandleLeaveShift)
	}

	admin := s.Router.Group(basePath+"/admin", verifyJWT, middleware.RequireAdmin(participantSvc))
	{
		admin.GET("/users", participantHandler.HandleListParticipants)
		admin.POST("/users", participantHandler.HandleCreateParticipant)
		admin.GET("/users/:userID", participantHandler.HandleGetParticipant)
		admin.PUT("/users/:userID", participantHandler.HandleUpdateParticipant)
		admin.DELETE("/users/:userID", participantHandler.HandleDeleteParticipant)
		admin.PUT("/users/:userID/password", participantHandler.HandleUpdateParticipantPassword)

		admin.POST("/spots", spotHandler.HandleCreateSpot)
		admin.PUT("/spots/:spotID", spotHandler.HandleUpdateSpot)
		admin.DELETE("/spots/:spotID", spotHandler.HandleDeleteSpot)

		admin.POST("/shifts", shiftHandler.HandleCreateShift)
		admin.PUT("/shifts/:shiftID", shiftHandler.HandleUpdateShift)
		admin.DELETE("/shifts/:shiftID", shiftHandler.HandleDeleteShift)
		admin.POST("/shifts/import", shiftHandler.HandleImportShifts)
		admin.POST("/shifts/:shiftID/users/:userID", shiftHandler.HandleAddShiftParticipant)
		admin.DELETE("/shifts/:shiftID/users/:userID", shiftHandler.HandleRemoveShiftParticipant)

		admin.GET("/accounting/soli", accountingHandler.HandleGetSoliSummary)
		admin.POST("/budget", accountingHandler.HandleEstimateBudget)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Schönfeld Registration API"
	docs.SwaggerInfo.Description = "Registration, spots, shifts and solidarity accounting for the Schönfeld weekend."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
