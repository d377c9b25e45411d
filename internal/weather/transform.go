package weather

import (
	"math"
	"time"
)

type conditions struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type currentResponse struct {
	Weather []conditions `json:"weather"`
	Main    struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Pressure  float64 `json:"pressure"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Visibility *float64 `json:"visibility"`
	Wind       struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Clouds struct {
		All float64 `json:"all"`
	} `json:"clouds"`
	Rain struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
}

func (r currentResponse) transform(location string, now time.Time) *Current {
	visibility := 10000.0
	if r.Visibility != nil {
		visibility = *r.Visibility
	}

	var cond conditions
	if len(r.Weather) > 0 {
		cond = r.Weather[0]
	}

	return &Current{
		Temperature:   round(r.Main.Temp),
		FeelsLike:     round(r.Main.FeelsLike),
		Humidity:      round(r.Main.Humidity),
		Pressure:      round(r.Main.Pressure),
		WindSpeed:     round(r.Wind.Speed * 3.6),
		WindDirection: round(r.Wind.Deg),
		Precipitation: r.Rain.OneHour,
		Visibility:    round(visibility / 1000),
		CloudCover:    round(r.Clouds.All),
		DewPoint:      round(DewPoint(r.Main.Temp, r.Main.Humidity)),
		Description:   cond.Description,
		Icon:          MapIcon(cond.Icon),
		Location:      location,
		LastUpdated:   now,
	}
}

type forecastSlot struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []conditions `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Rain struct {
		ThreeHours float64 `json:"3h"`
	} `json:"rain"`
}

type forecastResponse struct {
	List []forecastSlot `json:"list"`
	City struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"city"`
}

const maxForecastDays = 7

// daily folds 3-hour slots into per-day summaries in zone, in date order.
// Conditions and wind direction come from the slot closest to midday.
func (r forecastResponse) daily(zone *time.Location) []Day {
	var dates []string
	slots := make(map[string][]forecastSlot)
	for _, s := range r.List {
		date := time.Unix(s.Dt, 0).In(zone).Format("2006-01-02")
		if _, seen := slots[date]; !seen {
			dates = append(dates, date)
		}
		slots[date] = append(slots[date], s)
	}
	if len(dates) > maxForecastDays {
		dates = dates[:maxForecastDays]
	}

	sunrise, sunset := "", ""
	if r.City.Sunrise > 0 {
		sunrise = time.Unix(r.City.Sunrise, 0).In(zone).Format("15:04")
	}
	if r.City.Sunset > 0 {
		sunset = time.Unix(r.City.Sunset, 0).In(zone).Format("15:04")
	}

	days := make([]Day, 0, len(dates))
	for _, date := range dates {
		items := slots[date]

		minTemp, maxTemp := math.Inf(1), math.Inf(-1)
		var humidity, wind, rain float64
		rainy := 0
		midday := items[0]
		for _, s := range items {
			minTemp = math.Min(minTemp, s.Main.Temp)
			maxTemp = math.Max(maxTemp, s.Main.Temp)
			humidity += s.Main.Humidity
			wind += s.Wind.Speed
			rain += s.Rain.ThreeHours
			if len(s.Weather) > 0 && s.Weather[0].Main == "Rain" {
				rainy++
			}
			if hour := time.Unix(s.Dt, 0).In(zone).Hour(); hour >= 11 && hour <= 13 {
				midday = s
			}
		}

		n := float64(len(items))
		var cond conditions
		if len(midday.Weather) > 0 {
			cond = midday.Weather[0]
		}

		days = append(days, Day{
			Date:                     date,
			TempMin:                  round(minTemp),
			TempMax:                  round(maxTemp),
			Humidity:                 round(humidity / n),
			Precipitation:            math.Round(rain*100) / 100,
			PrecipitationProbability: round(float64(rainy) / n * 100),
			WindSpeed:                round(wind / n * 3.6),
			WindDirection:            round(midday.Wind.Deg),
			Description:              cond.Description,
			Icon:                     MapIcon(cond.Icon),
			Sunrise:                  sunrise,
			Sunset:                   sunset,
		})
	}

	return days
}

var icons = map[string]string{
	"01d": "sunny",
	"01n": "clear",
	"02d": "partly-cloudy",
	"02n": "partly-cloudy",
	"03d": "partly-cloudy",
	"03n": "partly-cloudy",
	"04d": "cloudy",
	"04n": "cloudy",
	"09d": "rain",
	"09n": "rain",
	"10d": "rain",
	"10n": "rain",
	"11d": "heavy-rain",
	"11n": "heavy-rain",
	"13d": "snow",
	"13n": "snow",
	"50d": "fog",
	"50n": "fog",
}

// MapIcon converts an OpenWeather icon code to the site's icon names.
func MapIcon(code string) string {
	if icon, ok := icons[code]; ok {
		return icon
	}
	return "partly-cloudy"
}

// DewPoint approximates the dew point in °C with the Magnus formula.
func DewPoint(tempC, humidity float64) float64 {
	if humidity <= 0 {
		return math.NaN()
	}
	const a, b = 17.27, 237.7
	alpha := (a*tempC)/(b+tempC) + math.Log(humidity/100)
	return (b * alpha) / (a - alpha)
}

func round(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}
