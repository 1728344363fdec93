package holidays

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/talentfold/hr-portal/internal/core/domain/leave"
	"github.com/talentfold/hr-portal/internal/core/ports"
	"github.com/talentfold/hr-portal/internal/infrastructure/cache"
)

// Fetcher retrieves the holiday calendar for one year from the upstream HRIS.
type Fetcher interface {
	FetchHolidays(ctx context.Context, year int) ([]leave.Holiday, error)
}

// Provider serves public holiday calendars with stale-while-revalidate
// caching: one loader per calendar year, created on first use.
type Provider struct {
	fetcher  Fetcher
	store    ports.KeyValueCache
	ttl      time.Duration
	staleTTL time.Duration
	logger   *logrus.Logger

	mu      sync.Mutex
	loaders map[int]*cache.Loader[[]leave.Holiday]
}

func NewProvider(fetcher Fetcher, store ports.KeyValueCache, ttl, staleTTL time.Duration, logger *logrus.Logger) *Provider {
	return &Provider{
		fetcher:  fetcher,
		store:    store,
		ttl:      ttl,
		staleTTL: staleTTL,
		logger:   logger,
		loaders:  make(map[int]*cache.Loader[[]leave.Holiday]),
	}
}

var _ ports.HolidayProvider = (*Provider)(nil)

// Holidays returns the holiday calendar for year. stale=true means the data
// is past its freshness horizon and a background refresh may be underway.
func (p *Provider) Holidays(ctx context.Context, year int) ([]leave.Holiday, bool, error) {
	res, err := p.loaderFor(year).Load(ctx, false)
	if err != nil {
		if res.FromCache || res.Stale {
			// Stale rescue: log the failure and serve what we have.
			if p.logger != nil {
				p.logger.WithField("year", year).WithError(err).Warn("holiday fetch failed, serving stale calendar")
			}
			return res.Data, true, nil
		}
		return nil, false, err
	}
	return res.Data, res.Stale, nil
}

func (p *Provider) loaderFor(year int) *cache.Loader[[]leave.Holiday] {
	p.mu.Lock()
	defer p.mu.Unlock()

	if l, ok := p.loaders[year]; ok {
		return l
	}

	l := cache.NewLoader(cache.LoaderConfig{
		Key:      fmt.Sprintf("holidays:%d", year),
		TTL:      p.ttl,
		StaleTTL: p.staleTTL,
		Cache:    p.store,
		Logger:   p.logger,
	}, func(ctx context.Context) ([]leave.Holiday, error) {
		return p.fetcher.FetchHolidays(ctx, year)
	})
	p.loaders[year] = l
	return l
}
