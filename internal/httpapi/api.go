package httpapi

import (
	"log"

	"github.com/thirdlf03/world-holidays/internal/auth"
	"github.com/thirdlf03/world-holidays/internal/catalog"
	"github.com/thirdlf03/world-holidays/internal/favorites"
	"github.com/thirdlf03/world-holidays/internal/quiz"
)

// API is the explicit application state shared by all handlers. Each field
// owns its own locking; handlers never keep state between requests.
type API struct {
	catalog   *catalog.Catalog
	favorites *favorites.Service
	quiz      *quiz.Service
	guard     *auth.Guard
	logger    *log.Logger
}

type Dependencies struct {
	Catalog   *catalog.Catalog
	Favorites *favorites.Service
	Quiz      *quiz.Service
	Guard     *auth.Guard
	Logger    *log.Logger
}

func NewAPI(deps Dependencies) *API {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	guard := deps.Guard
	if guard == nil {
		guard = auth.NewGuard(nil, "", logger)
	}
	return &API{
		catalog:   deps.Catalog,
		favorites: deps.Favorites,
		quiz:      deps.Quiz,
		guard:     guard,
		logger:    logger,
	}
}
