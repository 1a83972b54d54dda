package providers

import (
	"fmt"

	"economic-calendar/internal/adapters/providers/forexfactory"
	"economic-calendar/internal/adapters/providers/investing"
	"economic-calendar/internal/adapters/providers/rssfeed"
	"economic-calendar/internal/platform/config"
	"economic-calendar/internal/platform/httpclient"
	"economic-calendar/internal/ports/provider"
)

func NewFromConfig(c config.ProviderConfig) (provider.Provider, error) {
	client := httpclient.New(httpclient.Options{
		Timeout:    c.HTTP.Timeout,
		UserAgent:  c.HTTP.UserAgent,
		RetryCount: c.HTTP.RetryCount,
		RetryWait:  c.HTTP.RetryWait,
	})

	switch c.Type {
	case config.ProviderForexFactory:
		return forexfactory.New(c.Name, c.BaseURL, client), nil
	case config.ProviderInvesting:
		return investing.New(c.Name, c.BaseURL, client), nil
	case config.ProviderRSS:
		return rssfeed.New(c.Name, c.BaseURL, c.Zone, client)
	case "":
		return nil, fmt.Errorf("provider type is required")
	default:
		return nil, fmt.Errorf("unknown provider: %s", c.Type)
	}
}

// All construye los proveedores en el orden configurado.
func All(cs []config.ProviderConfig) ([]provider.Provider, error) {
	out := make([]provider.Provider, 0, len(cs))
	for _, c := range cs {
		p, err := NewFromConfig(c)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
