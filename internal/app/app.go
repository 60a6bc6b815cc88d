package app

import (
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"invite-app-go/internal/config"
	"invite-app-go/internal/db"
	eventdomain "invite-app-go/internal/domain/event"
	guestsdomain "invite-app-go/internal/domain/guests"
	songsdomain "invite-app-go/internal/domain/songs"
	"invite-app-go/internal/metrics"
	"invite-app-go/internal/repository/inmemory"
	songsrepo "invite-app-go/internal/repository/songs"
	"invite-app-go/internal/transport/httpserver"
	"invite-app-go/internal/transport/httpserver/handler"
	"invite-app-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg, log)
}

// NewWithConfig builds the application from an already loaded configuration.
func NewWithConfig(cfg config.Config, log logger.Logger) (*App, error) {
	log.Info("app: loading guest directory")
	directory, err := LoadDirectory(cfg)
	if err != nil {
		return nil, err
	}
	log.Info("app: guest directory ready", "codes", directory.Len())

	repo, dbConn, err := openSongsRepository(cfg, log)
	if err != nil {
		return nil, err
	}

	recorder := metrics.New()
	eventService := eventdomain.NewService(eventdomain.Details{
		Title:        cfg.Event.Title,
		Hosts:        cfg.Event.Hosts,
		StartsAt:     cfg.Event.StartsAt,
		VenueName:    cfg.Event.VenueName,
		VenueAddress: cfg.Event.VenueAddress,
	})
	handlers := handler.New(directory, songsdomain.NewService(repo), eventService, recorder, cfg.Event.Location, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, recorder, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

// LoadDirectory reads the guest list from GUESTS_FILE when set and falls back
// to the list compiled into the binary.
func LoadDirectory(cfg config.Config) (*guestsdomain.Directory, error) {
	var (
		entries []guestsdomain.Guest
		err     error
	)
	if cfg.GuestsFile != "" {
		entries, err = guestsdomain.LoadFile(cfg.GuestsFile)
	} else {
		entries, err = guestsdomain.DefaultGuests()
	}
	if err != nil {
		return nil, fmt.Errorf("load guests: %w", err)
	}
	return guestsdomain.NewDirectory(entries, cfg.AdminCode)
}

// Migrate opens the configured database, applies pending migrations and
// closes the connection again.
func Migrate(cfg config.Config, log logger.Logger) (int, error) {
	if cfg.DB.Driver == config.DriverMemory {
		log.Info("db: memory driver has nothing to migrate")
		return 0, nil
	}

	dbConn, err := db.Open(cfg.DB, log)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := db.Close(dbConn); err != nil {
			log.Error("db: close failed", "err", err)
		}
	}()

	return db.Migrate(dbConn, log)
}

func openSongsRepository(cfg config.Config, log logger.Logger) (songsdomain.Repository, *gorm.DB, error) {
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn("db: using in-memory storage, suggestions are lost on restart")
		return inmemory.NewSongsRepository(), nil, nil
	}

	log.Info("app: initializing database")
	dbConn, err := db.Open(cfg.DB, log)
	if err != nil {
		return nil, nil, err
	}

	if cfg.DB.AutoMigrate {
		if _, err := db.Migrate(dbConn, log); err != nil {
			_ = db.Close(dbConn)
			return nil, nil, err
		}
	}

	return songsrepo.NewGorm(dbConn), dbConn, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Config() config.Config {
	return a.cfg
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return db.Close(a.db)
}
