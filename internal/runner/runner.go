package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"catalogscraper/internal/cache"
	"catalogscraper/internal/crawler"
	"catalogscraper/internal/model"
	"catalogscraper/internal/observability"
	"catalogscraper/internal/repository"
	"catalogscraper/internal/store"
)

// Runner drives one full scrape cycle: fetch every list page, then for each
// entry fetch the detail record, merge, and persist. Archive, History and
// Cache are optional; a nil field disables that step.
type Runner struct {
	Client  *crawler.Client
	Store   *store.DailyStore
	Archive *repository.Archive
	History *repository.PriceHistory
	Cache   *cache.DetailCache

	// suppressedDay holds the date (YYYYMMDD) whose daily file turned out
	// corrupt or unwritable. Writes for that date stay suppressed until the
	// date rolls over, so salvageable data is never overwritten.
	suppressedDay string
}

// RunCycle executes one complete fetch-merge-persist pass.
//
// A list-fetch failure aborts the cycle; a failure on a single item is logged
// and the item skipped. Cancellation is checked between items, never mid-write.
func (r *Runner) RunCycle(ctx context.Context) error {
	day := time.Now()
	dayKey := day.Format("20060102")

	if r.suppressedDay == dayKey {
		log.WithField("day", dayKey).Warn("daily file writes suppressed, skipping cycle")
		return nil
	}

	observability.CyclesTotal.Inc()

	daily, err := r.Store.Open(day)
	if err != nil {
		observability.ScrapeErrorsTotal.WithLabelValues("store").Inc()
		if errors.Is(err, store.ErrCorruptStore) {
			r.suppressedDay = dayKey
			log.WithField("day", dayKey).WithError(err).Error("daily file corrupt, suppressing writes for the day")
		}
		return err
	}

	list, err := r.Client.FetchAllListPages(ctx)
	if err != nil {
		observability.ScrapeErrorsTotal.WithLabelValues("list").Inc()
		return fmt.Errorf("list fetch failed: %w", err)
	}
	log.WithField("count", len(list)).Info("products found in list view")

	processed := 0
	for _, lp := range list {
		if err := ctx.Err(); err != nil {
			return err
		}

		p, err := r.scrapeItem(ctx, lp)
		if err != nil {
			observability.ScrapeErrorsTotal.WithLabelValues("item").Inc()
			log.WithFields(log.Fields{
				"id":        lp.ID,
				"permalink": lp.Permalink,
			}).WithError(err).Error("skipping product")
			continue
		}

		daily.Upsert(p)
		if err := r.Store.Flush(daily, day); err != nil {
			observability.ScrapeErrorsTotal.WithLabelValues("flush").Inc()
			r.suppressedDay = dayKey
			log.WithField("day", dayKey).WithError(err).Error("daily file flush failed, suppressing writes for the day")
			return err
		}

		r.mirror(ctx, p)

		observability.ProductsScrapedTotal.Inc()
		processed++
		log.WithFields(log.Fields{
			"id":    p.ID,
			"total": len(daily),
		}).Info("product saved")
	}

	log.WithField("processed", processed).Info("cycle finished")
	return nil
}

// scrapeItem fetches the detail record for one list entry and merges the two.
func (r *Runner) scrapeItem(ctx context.Context, lp crawler.ListProduct) (model.Product, error) {
	var detail *crawler.ProductDetail

	if r.Cache != nil {
		if d, ok := r.Cache.Get(ctx, lp.Permalink); ok {
			detail = d
		}
	}
	if detail == nil {
		d, err := r.Client.FetchDetail(ctx, lp.Permalink)
		if err != nil {
			return model.Product{}, err
		}
		detail = d
		if r.Cache != nil {
			if err := r.Cache.Set(ctx, lp.Permalink, detail); err != nil {
				log.WithField("permalink", lp.Permalink).WithError(err).Warn("detail cache write failed")
			}
		}
	}

	return crawler.Merge(lp, detail)
}

// mirror pushes the merged record to the optional Postgres sinks. Failures
// here are logged but do not fail the item; the daily file already holds it.
func (r *Runner) mirror(ctx context.Context, p model.Product) {
	if r.Archive != nil {
		if err := r.Archive.Save(p); err != nil {
			observability.ScrapeErrorsTotal.WithLabelValues("archive").Inc()
			log.WithField("id", p.ID).WithError(err).Warn("archive save failed")
		}
	}
	if r.History != nil {
		if err := r.History.Record(ctx, p); err != nil {
			observability.ScrapeErrorsTotal.WithLabelValues("history").Inc()
			log.WithField("id", p.ID).WithError(err).Warn("price history insert failed")
		}
	}
}

// Run executes one cycle immediately, then repeats on the given interval
// until ctx is cancelled.
func (r *Runner) Run(ctx context.Context, interval time.Duration) error {
	if err := r.RunCycle(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.WithError(err).Error("scrape cycle failed")
	}

	cronLog := cron.PrintfLogger(log.StandardLogger())
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLog)))
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		if err := r.RunCycle(ctx); err != nil && ctx.Err() == nil {
			log.WithError(err).Error("scrape cycle failed")
		}
	}); err != nil {
		return err
	}

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return ctx.Err()
}
