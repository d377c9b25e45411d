package pages

import (
	"context"
	"fmt"

	"github.com/a-h/templ"

	"github.com/vangoframework/pellines/internal/domain"
	"github.com/vangoframework/pellines/internal/templates"
	"github.com/vangoframework/pellines/internal/ui"
	"github.com/vangoframework/pellines/internal/weather"
)

// HomeData is everything the landing page shows. Any part may be empty.
type HomeData struct {
	Announcements []domain.Announcement
	Events        []domain.Event
	Weather       *weather.Current
}

// Home is the landing page.
func Home(data HomeData) templ.Component {
	return templates.Component(func(ctx context.Context, o *templates.Writer) {
		o.Raw(`<main id="main-content" class="mx-auto max-w-7xl px-4 py-12">`)
		o.Raw(`<section class="py-12 text-center">`)
		o.Element("h1", "text-4xl font-bold", "Pinto Los Pellines")
		o.Element("p", "mt-4 text-lg text-muted-foreground", "Plataforma de gestión comunitaria de la Junta de Vecinos.")
		o.Raw(`</section><div class="grid gap-8 md:grid-cols-3">`)

		o.Raw(`<section aria-labelledby="home-anuncios">`)
		o.Raw(`<h2 id="home-anuncios" class="text-xl font-semibold">Anuncios</h2>`)
		if len(data.Announcements) == 0 {
			o.Element("p", "text-muted-foreground", "No hay anuncios vigentes.")
		}
		for _, a := range data.Announcements {
			o.Render(ctx, AnnouncementCard(a))
		}
		o.Link("/anuncios", "text-sm underline", "Ver todos")
		o.Raw(`</section>`)

		o.Raw(`<section aria-labelledby="home-eventos">`)
		o.Raw(`<h2 id="home-eventos" class="text-xl font-semibold">Próximos eventos</h2>`)
		if len(data.Events) == 0 {
			o.Element("p", "text-muted-foreground", "No hay eventos programados.")
		}
		o.Raw(`<ul class="flex flex-col gap-2">`)
		for _, e := range data.Events {
			o.Raw(`<li>`)
			o.Element("p", "font-medium", e.Title)
			o.Element("p", "text-sm text-muted-foreground", eventWhen(e))
			o.Raw(`</li>`)
		}
		o.Raw(`</ul>`)
		o.Link("/eventos", "text-sm underline", "Ver calendario")
		o.Raw(`</section>`)

		o.Raw(`<section aria-labelledby="home-clima">`)
		o.Raw(`<h2 id="home-clima" class="text-xl font-semibold">Clima</h2>`)
		if w := data.Weather; w != nil {
			o.Rawf(`<div class="%s">`, ui.CN("weather-icon", "weather-"+w.Icon))
			o.Element("p", "text-3xl font-bold", fmt.Sprintf("%d°C", w.Temperature))
			o.Element("p", "capitalize", w.Description)
			o.Raw(`</div>`)
		} else {
			o.Element("p", "text-muted-foreground", "Clima no disponible.")
		}
		o.Link("/weather", "text-sm underline", "Pronóstico")
		o.Raw(`</section>`)

		o.Raw(`</div></main>`)
	})
}
