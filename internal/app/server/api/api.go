//GET    /api/v1/elements                    # Список элементов (опциональный viewport-фильтр)
//GET    /api/v1/elements/{id}               # Получить элемент
//POST   /api/v1/elements/text-notes         # Создать заметку
//POST   /api/v1/elements/drawings           # Создать рисунок
//PATCH  /api/v1/elements/text-notes/{id}    # Частично обновить заметку
//PATCH  /api/v1/elements/drawings/{id}      # Частично обновить рисунок
//DELETE /api/v1/elements/{id}               # Удалить элемент
//POST   /api/v1/elements/bulk-update        # Массовое перемещение/переупорядочивание

package api

import (
	elementAPI "inkboard/internal/app/server/api/http/element"
	healthAPI "inkboard/internal/app/server/api/http/health"
	"inkboard/internal/app/server/api/http/middleware"
	"inkboard/internal/app/server/api/http/middleware/logger"
	"inkboard/internal/domain/element"
	"inkboard/internal/infrastructure/storage/postgres"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health  *healthAPI.Handler
	Element *elementAPI.Handler
}

// New builds a *chi.Mux with every operation registered through
// huma.Register. Cache may be nil; the element service then always
// reads from storage.
func New(storage *postgres.Storage, cache element.Cache, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Inkboard API", "1.0.0")

	API := humachi.New(mux, config)

	h := handlers(storage, cache, log)
	h.Health.SetupRoutes(API)
	h.Element.SetupRoutes(API)

	return mux
}

func handlers(storage *postgres.Storage, cache element.Cache, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(storage, log, middlewares.GetAllAndClear())

	elementRepo := postgres.NewElementRepository(storage, log)
	elementFactory := element.NewFactory()
	elementService := element.NewService(elementRepo, elementFactory, cache, log)
	middlewares.Add(loggerMW.Middleware())
	elementHandler := elementAPI.NewHandler(elementService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:  healthHandler,
		Element: elementHandler,
	}
}
