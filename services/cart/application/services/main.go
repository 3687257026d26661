package services

import (
	"fmt"

	"github.com/ghuser/cartengine/pkg/app"
	"github.com/ghuser/cartengine/pkg/cache"
	"github.com/ghuser/cartengine/services/cart/application/validation"
	domainsvcs "github.com/ghuser/cartengine/services/cart/domain/services"
	"github.com/ghuser/cartengine/services/cart/infrastructure/memory"
	"github.com/ghuser/cartengine/services/cart/infrastructure/pricing"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Cart *CartService

	// PriceAPI is exposed so the health endpoint can probe upstream reachability.
	PriceAPI *pricing.Client
}

// New wires the cart application service with infrastructure from the
// Application container. The ledger is process-scoped: it lives for the
// lifetime of the returned Services.
func New(a *app.Application) (*Services, error) {
	taxCalc, err := domainsvcs.NewTaxCalculator(a.Config.TaxRate())
	if err != nil {
		return nil, fmt.Errorf("wire tax calculator: %w", err)
	}
	calc := domainsvcs.NewCartCalculator(taxCalc)

	var priceCache *cache.PriceCache
	if a.Redis != nil {
		priceCache = cache.NewPriceCache(a.Redis, a.Config.PriceCacheTTL)
	}
	priceAPI := pricing.NewClient(a.Config.PriceAPIBaseURL, a.Config.PriceAPITimeout, priceCache, a.Logger)

	metrics, err := NewMetrics()
	if err != nil {
		return nil, fmt.Errorf("wire cart metrics: %w", err)
	}

	cart := NewCartService(
		validation.NewGateway(),
		priceAPI,
		memory.NewLedger(),
		calc,
		a.EventBus,
		a.Logger,
		metrics,
	)

	return &Services{Cart: cart, PriceAPI: priceAPI}, nil
}
