// Package app runs the vndrate commands on top of a rate.Manager.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/seenimoa/vndrate/internal/converter"
	"github.com/seenimoa/vndrate/internal/rate"
	"github.com/seenimoa/vndrate/pkg/models"
	"github.com/seenimoa/vndrate/pkg/utils"
)

// App holds the collaborators shared by all commands.
type App struct {
	manager      *rate.Manager
	logger       *slog.Logger
	fetchTimeout time.Duration
}

// New creates an App. fetchTimeout bounds each rate lookup; zero means no bound.
func New(manager *rate.Manager, logger *slog.Logger, fetchTimeout time.Duration) *App {
	return &App{manager: manager, logger: logger, fetchTimeout: fetchTimeout}
}

// Convert looks up the current rate, logs it, then converts one amount read
// from in. Rate and input failures are logged and swallowed so the process
// exits cleanly; only I/O errors on out are returned.
func (a *App) Convert(ctx context.Context, in io.Reader, out io.Writer) error {
	r, err := a.currentRate(ctx)
	if err != nil {
		a.logRateError(err)
		return nil
	}

	a.logger.Info(fmt.Sprintf("%s to %s exchange rate: %s",
		models.USDVND.BaseCurrency, models.USDVND.QuoteCurrency, utils.FormatFloat(r)))

	if err := converter.New(in, out).Run(r); err != nil {
		if errors.Is(err, converter.ErrInvalidInput) {
			a.logger.Error("Invalid input. Please enter a valid number.", "error", err)
			return nil
		}
		return err
	}
	return nil
}

// Refresh forces a new fetch and prints the rate.
func (a *App) Refresh(ctx context.Context, out io.Writer) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	r, err := a.manager.Refresh(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s: %s\n", models.USDVND, utils.FormatFloat(r))
	return err
}

// Status prints the cached record without fetching.
func (a *App) Status(ctx context.Context, out io.Writer, now time.Time) error {
	rec, decision, err := a.manager.Status(ctx)
	if err != nil {
		return err
	}
	if rec == nil {
		_, err = fmt.Fprintf(out, "  Cached rate:   none (next run will fetch)\n")
		return err
	}

	fmt.Fprintf(out, "  Cached rate:   %s %s per %s\n", utils.FormatFloat(rec.Rate), models.USDVND.QuoteCurrency, models.USDVND.BaseCurrency)
	fmt.Fprintf(out, "  Last update:   %s\n", rec.LastUpdate.Format(time.DateTime))
	fmt.Fprintf(out, "  Age:           %s\n", rec.Age(now).Round(time.Second))
	_, err = fmt.Fprintf(out, "  State:         %s (refresh after %s)\n", decision, rate.StalenessThreshold)
	return err
}

func (a *App) currentRate(ctx context.Context) (float64, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()
	return a.manager.CurrentRate(ctx)
}

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.fetchTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.fetchTimeout)
}

func (a *App) logRateError(err error) {
	switch {
	case errors.Is(err, rate.ErrCacheCorrupt):
		a.logger.Error("Could not read the cached exchange rate; run `vndrate refresh` to rebuild it.", "error", err)
	case errors.Is(err, rate.ErrFetch):
		a.logger.Error("Could not fetch the exchange rate.", "error", err)
	default:
		a.logger.Error("An error occurred while updating the exchange rate.", "error", err)
	}
}
