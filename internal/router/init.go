package router

import (
	"github.com/agenticlearn/educator-portal/internal/application"
	"github.com/agenticlearn/educator-portal/internal/container"
	"github.com/agenticlearn/educator-portal/internal/domain/entity"
	"github.com/agenticlearn/educator-portal/internal/infrastructure/mongodb"
	handlers "github.com/agenticlearn/educator-portal/internal/interface/http"
	"github.com/agenticlearn/educator-portal/internal/portal"
	"github.com/agenticlearn/educator-portal/internal/router/modules"
	"github.com/agenticlearn/educator-portal/pkg/apiclient"
	"github.com/agenticlearn/educator-portal/pkg/cache"
)

type EducatorModuleDeps struct {
	Profiles      *handlers.EducatorHandler
	Dashboard     *handlers.DashboardHandler
	Content       *handlers.ContentHandler
	Communication *handlers.CommunicationHandler
}

func buildEducatorDeps() EducatorModuleDeps {
	cfg := container.GetConfig()
	log := container.GetLogger()
	db := container.GetDatabase()

	profiles := mongodb.NewProfileRepository(db)
	records := mongodb.NewRecordRepository(db)

	// Optional backends stay nil interfaces when not configured.
	var queue application.Publisher
	if p := container.GetRabbitPub(); p != nil {
		queue = p
	}
	var index application.Indexer
	if es := container.GetES(); es != nil {
		index = application.NewESIndexer(es, cfg.ESContentIndex)
	}
	upload := application.GCSUploader(container.GetGCS(), cfg.GCSBucket)

	return EducatorModuleDeps{
		Profiles:      handlers.NewEducatorHandler(application.NewProfileService(profiles, log), log),
		Dashboard:     handlers.NewDashboardHandler(application.NewDashboardService(records), log),
		Content:       handlers.NewContentHandler(application.NewContentService(records, upload, index, log), log),
		Communication: handlers.NewCommunicationHandler(application.NewMessageService(records, profiles, queue, cfg.AppName, log), log),
	}
}

// BuildPortal constructs the session manager behind /portal. The portal talks
// to the educator API over HTTP with a token minted for the configured educator.
func BuildPortal() *portal.Manager {
	cfg := container.GetConfig()
	log := container.GetLogger()

	var store cache.Store = cache.NewMemoryStore()
	if rdb := container.GetRedis(); rdb != nil {
		store = cache.NewRedisStore(rdb)
	}
	api := apiclient.New(cfg.PortalAPIBaseURL,
		apiclient.WithTokenSource(container.GetJWT().TokenSource(cfg.PortalEducatorID)),
		apiclient.WithLogger(log),
	)
	return portal.NewManager(portal.Deps{
		AppName:  cfg.AppName,
		API:      api,
		Cache:    cache.NewAccessor[entity.Profile](store, log),
		CacheKey: cfg.PortalCacheKey,
		Logger:   log,
	})
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, sessions *portal.Manager) {
	cfg := container.GetConfig()
	rdb := container.GetRedis()

	deps := buildEducatorDeps()
	r.Add(&modules.EducatorModule{
		Profile:       deps.Profiles,
		Dashboard:     deps.Dashboard,
		Content:       deps.Content,
		Communication: deps.Communication,
		JWT:           container.GetJWT(),
		Redis:         rdb,
	})
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(rdb))
	}

	r.AddPage(&modules.PortalModule{
		Handler: handlers.NewPortalHandler(sessions, cfg.CookieDomain, cfg.CookieSecure, cfg.PortalSessionIdle, container.GetLogger()),
		Redis:   rdb,
	})
}
