package pages

import (
	"context"
	"fmt"
	"time"

	"github.com/a-h/templ"

	"github.com/vangoframework/pellines/internal/domain"
	"github.com/vangoframework/pellines/internal/templates"
	"github.com/vangoframework/pellines/internal/ui"
	"github.com/vangoframework/pellines/internal/weather"
)

// WeatherData is the weather page content. Configured is false when no
// API key is set; Current and Forecast may be empty when the upstream failed.
// Alerts are published by the association and shown either way.
type WeatherData struct {
	Location   string
	Configured bool
	Current    *weather.Current
	Forecast   []weather.Day
	Alerts     []domain.WeatherAlert
	Now        time.Time
}

// Weather shows current conditions and the daily forecast.
func Weather(data WeatherData) templ.Component {
	return templates.Component(func(ctx context.Context, o *templates.Writer) {
		o.Raw(`<main id="main-content" class="mx-auto max-w-5xl px-4 py-8">`)
		o.Element("h1", "text-3xl font-bold", "Clima")
		o.Element("p", "text-muted-foreground", data.Location)
		o.Render(ctx, WeatherAlerts(data.Alerts, data.Now))

		switch {
		case !data.Configured:
			o.Element("p", "mt-4", "El servicio de clima no está configurado.")
		case data.Current == nil:
			o.Element("p", "mt-4", "No fue posible obtener el clima. Intenta más tarde.")
		default:
			c := data.Current
			o.Rawf(`<section class="%s">`, ui.CN("mt-6 rounded-lg border p-6", "weather-"+c.Icon))
			o.Element("p", "text-5xl font-bold", fmt.Sprintf("%d°C", c.Temperature))
			o.Element("p", "capitalize", c.Description)
			o.Raw(`<dl class="mt-4 grid grid-cols-2 gap-2 md:grid-cols-4">`)
			stat := func(label, value string) {
				o.Raw(`<div>`)
				o.Element("dt", "text-xs text-muted-foreground", label)
				o.Element("dd", "font-medium", value)
				o.Raw(`</div>`)
			}
			stat("Sensación térmica", fmt.Sprintf("%d°C", c.FeelsLike))
			stat("Humedad", fmt.Sprintf("%d%%", c.Humidity))
			stat("Viento", fmt.Sprintf("%d km/h", c.WindSpeed))
			stat("Presión", fmt.Sprintf("%d hPa", c.Pressure))
			stat("Visibilidad", fmt.Sprintf("%d km", c.Visibility))
			stat("Nubosidad", fmt.Sprintf("%d%%", c.CloudCover))
			stat("Punto de rocío", fmt.Sprintf("%d°C", c.DewPoint))
			stat("Precipitación", fmt.Sprintf("%.1f mm", c.Precipitation))
			o.Raw(`</dl></section>`)
		}

		if len(data.Forecast) > 0 {
			o.Raw(`<section class="mt-8">`)
			o.Element("h2", "text-xl font-semibold", "Pronóstico")
			o.Raw(`<ul class="mt-2 grid gap-4 md:grid-cols-4">`)
			for _, d := range data.Forecast {
				label := d.Date
				if t, err := time.ParseInLocation(domain.DateLayout, d.Date, domain.Zone); err == nil {
					label = FormatDate(t)
				}
				o.Rawf(`<li class="%s">`, ui.CN("rounded-lg border p-4", "weather-"+d.Icon))
				o.Element("p", "font-medium capitalize", label)
				o.Element("p", "text-sm capitalize", d.Description)
				o.Element("p", "", fmt.Sprintf("%d° / %d°", d.TempMin, d.TempMax))
				o.Element("p", "text-xs text-muted-foreground", fmt.Sprintf("Lluvia %d%% · %.1f mm", d.PrecipitationProbability, d.Precipitation))
				o.Raw(`</li>`)
			}
			o.Raw(`</ul></section>`)
		}
		o.Raw(`</main>`)
	})
}
