package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/schoenfeld/sfpr-api/internal/api"
	"github.com/schoenfeld/sfpr-api/internal/config"
	"github.com/schoenfeld/sfpr-api/internal/db"
	"github.com/schoenfeld/sfpr-api/internal/domain"
	"github.com/schoenfeld/sfpr-api/internal/logger"
	"github.com/schoenfeld/sfpr-api/internal/repository/dao"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to migrate tables -> %w", err)
	}

	if err = seedAdmin(postgresDB, conf.Admin); err != nil {
		return fmt.Errorf("failed to seed admin account -> %w", err)
	}

	s := api.NewServer(conf, postgresDB)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

// seedAdmin makes sure the organizer account exists so a fresh database is
// usable without manual SQL. An existing row is left untouched.
func seedAdmin(gormDB *gorm.DB, conf *config.AdminConfig) error {
	if conf == nil || conf.Email == "" || conf.Password == "" {
		zap.L().Warn("admin email or password not configured, skipping seed")
		return nil
	}

	participantDAO := dao.NewParticipantDAO(gormDB)
	ctx := context.Background()

	_, err := participantDAO.FindByUsername(ctx, conf.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, dao.ErrParticipantNotFound) {
		return fmt.Errorf("participantDAO.FindByUsername -> %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(conf.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	email := conf.Email
	password := string(hash)
	_, err = participantDAO.Insert(ctx, dao.Participant{
		Username:    &email,
		Password:    &password,
		Nickname:    "Orga",
		Type:        domain.TypeAdmin,
		IsActivated: true,
	})
	if err != nil {
		return fmt.Errorf("participantDAO.Insert -> %w", err)
	}

	zap.L().Info("seeded admin account", zap.String("email", conf.Email))

	return nil
}
