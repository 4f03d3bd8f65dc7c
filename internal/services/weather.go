package services

import (
	"context"
	"errors"

	"github.com/claimpilot/claimpilot/internal/model"
	"github.com/claimpilot/claimpilot/internal/weather"
)

// WeatherAPIVerifier implements WeatherVerifier on the weatherapi.com client
type WeatherAPIVerifier struct {
	client  *weather.Client
	limiter RateLimiter
}

// NewWeatherVerifier wraps a weather client as a WeatherVerifier
func NewWeatherVerifier(client *weather.Client, limiter RateLimiter) *WeatherAPIVerifier {
	return &WeatherAPIVerifier{client: client, limiter: limiter}
}

// VerifyWeather checks for severe weather at the location on the loss date
func (v *WeatherAPIVerifier) VerifyWeather(ctx context.Context, dateOfLoss, location string) (model.WeatherResult, error) {
	if v.client == nil {
		return model.WeatherResult{}, failure("weather", errors.New("no weather client configured"))
	}

	if v.limiter != nil {
		if err := v.limiter.Wait(ctx, "weather"); err != nil {
			return model.WeatherResult{}, failure("weather", err)
		}
	}

	result, err := v.client.Verify(ctx, dateOfLoss, location)
	if err != nil {
		return model.WeatherResult{}, failure("weather", err)
	}
	return result, nil
}
