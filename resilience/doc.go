// Package resilience retries transient failures with capped exponential
// backoff. The database layer uses it while establishing its connection.
//
//	db, err := resilience.Retry(ctx, resilience.DefaultRetryConfig(), func(attempt int) (*gorm.DB, error) {
//	    return gorm.Open(dialector, cfg)
//	})
package resilience
