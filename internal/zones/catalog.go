package zones

import "github.com/SistemasVox/clima-udi/internal/config"

// Catalog holds the six variable domains built from one threshold set.
type Catalog struct {
	Temperature *Domain
	Humidity    *Domain
	Wind        *Domain
	Rain        *Domain
	Radiation   *Domain
	Pressure    *Domain
}

func NewCatalog(th config.Thresholds) *Catalog {
	return &Catalog{
		Temperature: newTemperatureDomain(th),
		Humidity:    newHumidityDomain(th),
		Wind:        newWindDomain(th),
		Rain:        newRainDomain(th),
		Radiation:   newRadiationDomain(th),
		Pressure:    newPressureDomain(th),
	}
}

// All returns the domains in evaluation order. Transition messages go out
// in this order, one cycle's worth at a time.
func (c *Catalog) All() []*Domain {
	return []*Domain{c.Temperature, c.Humidity, c.Wind, c.Rain, c.Radiation, c.Pressure}
}

func (c *Catalog) ByID(id DomainID) *Domain {
	for _, d := range c.All() {
		if d.ID == id {
			return d
		}
	}
	return nil
}
