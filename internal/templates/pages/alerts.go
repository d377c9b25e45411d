package pages

import (
	"context"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/vangoframework/pellines/internal/domain"
	"github.com/vangoframework/pellines/internal/templates"
	"github.com/vangoframework/pellines/internal/ui"
)

var severityLabels = map[domain.AlertSeverity]string{
	domain.SeverityLow:     "Baja",
	domain.SeverityMedium:  "Moderada",
	domain.SeverityHigh:    "Alta",
	domain.SeverityExtreme: "Extrema",
}

var alertTypeLabels = map[domain.AlertType]string{
	domain.AlertStorm: "Tormenta",
	domain.AlertHeat:  "Calor extremo",
	domain.AlertCold:  "Frío extremo",
	domain.AlertFlood: "Inundación",
	domain.AlertWind:  "Viento",
	domain.AlertOther: "Otra",
}

// SeverityLabel is the Spanish name of an alert severity.
func SeverityLabel(s domain.AlertSeverity) string {
	if label, ok := severityLabels[s]; ok {
		return label
	}
	return string(s)
}

// AlertTypeLabel is the Spanish name of an alert type.
func AlertTypeLabel(t domain.AlertType) string {
	if label, ok := alertTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

func alertWhen(a domain.WeatherAlert) string {
	start := a.StartsAt.In(domain.Zone)
	end := a.EndsAt.In(domain.Zone)
	return "Desde " + FormatDate(start) + " " + start.Format("15:04") +
		" hasta " + FormatDate(end) + " " + end.Format("15:04")
}

// WeatherAlerts lists current and upcoming weather alerts. Nothing is
// rendered when there are none.
func WeatherAlerts(alerts []domain.WeatherAlert, now time.Time) templ.Component {
	return templates.Component(func(ctx context.Context, o *templates.Writer) {
		if len(alerts) == 0 {
			return
		}
		o.Raw(`<section class="mt-6" aria-label="Alertas meteorológicas"><ul class="flex flex-col gap-3">`)
		for _, a := range alerts {
			o.Rawf(`<li class="%s" data-severity="%s">`,
				ui.CN("rounded-lg border p-4", ui.If(a.Severe(), "border-destructive"), ui.If(!a.InEffect(now), "opacity-75")),
				templ.EscapeString(string(a.Severity)))
			status := "Vigente"
			if !a.InEffect(now) {
				status = "Próxima"
			}
			o.Element("p", "text-xs uppercase", status+" · "+AlertTypeLabel(a.Type)+" · Severidad "+SeverityLabel(a.Severity))
			o.Element("h2", "font-semibold", a.Title)
			o.Element("p", "text-sm text-muted-foreground", alertWhen(a))
			o.Element("p", "mt-2 text-sm", a.Description)
			if len(a.Areas) > 0 {
				o.Element("p", "text-sm", "Sectores: "+strings.Join(a.Areas, ", "))
			}
			if a.Instructions != "" {
				o.Element("p", "mt-2 text-sm font-medium", a.Instructions)
			}
			o.Raw(`</li>`)
		}
		o.Raw(`</ul></section>`)
	})
}
