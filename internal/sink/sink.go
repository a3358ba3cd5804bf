// Package sink delivers price updates to external consumers. The engine
// does not care what a sink does with an update; a failing sink costs the
// market nothing but a log line.
package sink

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/talgya/grand-line/internal/market"
)

// Sink receives one price update per character per tick. Publish must not
// block for long; slow consumers should buffer or drop internally.
type Sink interface {
	Publish(market.Update) error
	Close() error
}

// Console logs each update through slog.
type Console struct {
	log *slog.Logger
}

// NewConsole creates a console sink on the default logger.
func NewConsole() *Console {
	return &Console{log: slog.Default()}
}

func (c *Console) Publish(u market.Update) error {
	c.log.Info("price update",
		"name", u.Name,
		"crew", u.Crew,
		"price", fmt.Sprintf("$%.2f", u.Price),
		"change", fmt.Sprintf("%+.1f%%", u.WeeklyChange),
		"market_cap", "$"+humanize.CommafWithDigits(u.MarketCap, 2),
		"arc", u.Arc,
	)
	return nil
}

func (c *Console) Close() error { return nil }

// Multi fans one update out to several sinks. One failing sink does not
// stop delivery to the rest.
type Multi []Sink

func (m Multi) Publish(u market.Update) error {
	var errs []error
	for _, s := range m {
		if err := s.Publish(u); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
