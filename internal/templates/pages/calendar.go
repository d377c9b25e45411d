package pages

import (
	"context"
	"net/url"
	"time"

	"github.com/a-h/templ"

	"github.com/vangoframework/pellines/internal/domain"
	"github.com/vangoframework/pellines/internal/templates"
	"github.com/vangoframework/pellines/internal/ui"
)

// CalendarData is one month of the community calendar.
type CalendarData struct {
	Month      time.Time // first day of the month
	Events     []domain.Event
	Categories []domain.EventCategory
	Category   string // selected category slug
}

// Calendar shows a month of events grouped by day.
func Calendar(data CalendarData) templ.Component {
	return templates.Component(func(ctx context.Context, o *templates.Writer) {
		prev := data.Month.AddDate(0, -1, 0).Format("2006-01")
		next := data.Month.AddDate(0, 1, 0).Format("2006-01")

		o.Raw(`<main id="main-content" class="mx-auto max-w-5xl px-4 py-8">`)
		o.Raw(`<div class="flex items-center justify-between">`)
		o.Element("h1", "text-3xl font-bold capitalize", "Calendario · "+MonthTitle(data.Month))
		feed := "/calendario.ics"
		if data.Category != "" {
			feed += "?categoria=" + url.QueryEscape(data.Category)
		}
		o.Link(feed, "text-sm underline", "Suscribirse (iCal)")
		o.Raw(`</div><nav class="my-4 flex gap-4" aria-label="Meses">`)
		o.Link("/calendario?mes="+prev, "text-sm", "← Mes anterior")
		o.Link("/calendario?mes="+next, "text-sm", "Mes siguiente →")
		o.Raw(`</nav>`)

		if len(data.Categories) > 0 {
			o.Raw(`<nav class="mb-4 flex flex-wrap gap-2" aria-label="Categorías">`)
			month := "mes=" + data.Month.Format("2006-01")
			o.Link("/calendario?"+month, ui.CN("rounded-full border px-3 py-1 text-sm", ui.If(data.Category == "", "bg-primary text-primary-foreground")), "Todas")
			for _, c := range data.Categories {
				o.Link("/calendario?"+month+"&categoria="+c.Slug,
					ui.CN("rounded-full border px-3 py-1 text-sm", ui.If(data.Category == c.Slug, "bg-primary text-primary-foreground")),
					c.Name)
			}
			o.Raw(`</nav>`)
		}

		if len(data.Events) == 0 {
			o.Element("p", "text-muted-foreground", "No hay eventos este mes.")
		}

		var day string
		for _, e := range data.Events {
			if d := e.StartDate.Format(domain.DateLayout); d != day {
				if day != "" {
					o.Raw(`</ul></section>`)
				}
				day = d
				o.Rawf(`<section class="mb-6" data-date="%s">`, d)
				o.Element("h2", "text-lg font-semibold capitalize", FormatDate(e.StartDate))
				o.Raw(`<ul class="flex flex-col gap-2">`)
			}
			o.Render(ctx, EventItem(e))
		}
		if day != "" {
			o.Raw(`</ul></section>`)
		}
		o.Raw(`</main>`)
	})
}

// EventItem renders one event as a list item.
func EventItem(e domain.Event) templ.Component {
	return templates.Component(func(ctx context.Context, o *templates.Writer) {
		o.Raw(`<li class="`)
		o.Text(ui.CN("rounded-lg border p-4", ui.If(e.Featured, "border-primary")))
		o.Raw(`">`)
		o.Element("h3", "font-semibold", e.Title)
		o.Element("p", "text-sm text-muted-foreground", eventWhen(e))
		if e.Location != "" {
			o.Element("p", "text-sm", e.Location)
		}
		if e.CategoryName != "" {
			o.Element("span", "text-xs uppercase", e.CategoryName)
		}
		if e.Description != "" {
			o.Element("p", "mt-2 text-sm", e.Description)
		}
		o.Link("/eventos/"+e.ID.String()+".ics", "mt-2 inline-block text-xs underline", "Agregar a mi calendario")
		o.Raw(`</li>`)
	})
}

// Events lists upcoming events.
func Events(list []domain.Event) templ.Component {
	return templates.Component(func(ctx context.Context, o *templates.Writer) {
		o.Raw(`<main id="main-content" class="mx-auto max-w-4xl px-4 py-8">`)
		o.Element("h1", "text-3xl font-bold", "Próximos eventos")
		if len(list) == 0 {
			o.Element("p", "text-muted-foreground", "No hay eventos programados.")
		}
		o.Raw(`<ul class="mt-4 flex flex-col gap-4">`)
		for _, e := range list {
			o.Render(ctx, EventItem(e))
		}
		o.Raw(`</ul></main>`)
	})
}
