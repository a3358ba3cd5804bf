package config

import "fmt"

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.Simulation.PriceInterval <= 0 {
		return fmt.Errorf("simulation.price_interval must be positive, got %v", c.Simulation.PriceInterval)
	}
	if c.Simulation.NarrativeInterval <= 0 {
		return fmt.Errorf("simulation.narrative_interval must be positive, got %v", c.Simulation.NarrativeInterval)
	}
	if c.Simulation.EventProbability < 0 || c.Simulation.EventProbability > 1 {
		return fmt.Errorf("simulation.event_probability must be in [0,1], got %v", c.Simulation.EventProbability)
	}
	if c.Simulation.EventDuration <= 0 {
		return fmt.Errorf("simulation.event_duration must be positive, got %v", c.Simulation.EventDuration)
	}

	if c.Pricing.MinPrice <= 0 || c.Pricing.MaxPrice <= c.Pricing.MinPrice {
		return fmt.Errorf("pricing clamp bounds [%v, %v] invalid", c.Pricing.MinPrice, c.Pricing.MaxPrice)
	}
	if c.Pricing.BootstrapLow <= 0 || c.Pricing.BootstrapHigh <= c.Pricing.BootstrapLow {
		return fmt.Errorf("pricing bootstrap range [%v, %v] invalid", c.Pricing.BootstrapLow, c.Pricing.BootstrapHigh)
	}

	if c.Narrative.DaysPerArc <= 0 {
		return fmt.Errorf("narrative.days_per_arc must be positive, got %d", c.Narrative.DaysPerArc)
	}
	for i, a := range c.Narrative.Arcs {
		if a.Name == "" {
			return fmt.Errorf("narrative.arcs[%d] has no name", i)
		}
		if a.Multiplier < 1.0 {
			return fmt.Errorf("narrative.arcs[%d] (%q) multiplier %v below 1.0", i, a.Name, a.Multiplier)
		}
	}

	if c.API.Port <= 0 || c.API.Port > 65535 {
		return fmt.Errorf("api.port %d out of range", c.API.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is empty")
	}

	return nil
}
