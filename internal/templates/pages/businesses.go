package pages

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	"github.com/vangoframework/pellines/internal/domain"
	"github.com/vangoframework/pellines/internal/templates"
	"github.com/vangoframework/pellines/internal/ui"
)

var businessLabels = map[domain.BusinessCategory]string{
	domain.BusinessSupermercado: "Supermercados",
	domain.BusinessPanaderia:    "Panaderías",
	domain.BusinessRestaurante:  "Restaurantes",
	domain.BusinessFarmacia:     "Farmacias",
	domain.BusinessFerreteria:   "Ferreterías",
	domain.BusinessOtros:        "Otros",
}

// BusinessLabel returns the display name of a category.
func BusinessLabel(c domain.BusinessCategory) string {
	if l, ok := businessLabels[c]; ok {
		return l
	}
	return string(c)
}

// Businesses is the local business directory.
func Businesses(list []domain.Business, selected string) templ.Component {
	return templates.Component(func(ctx context.Context, o *templates.Writer) {
		o.Raw(`<main id="main-content" class="mx-auto max-w-6xl px-4 py-8">`)
		o.Element("h1", "text-3xl font-bold", "Comercios locales")
		o.Raw(`<nav class="my-4 flex flex-wrap gap-2" aria-label="Categorías">`)
		o.Link("/comercios", ui.CN("rounded-full border px-3 py-1 text-sm", ui.If(selected == "", "bg-primary text-primary-foreground")), "Todos")
		for _, c := range domain.BusinessCategories {
			o.Link("/comercios?categoria="+string(c),
				ui.CN("rounded-full border px-3 py-1 text-sm", ui.If(string(c) == selected, "bg-primary text-primary-foreground")),
				BusinessLabel(c))
		}
		o.Raw(`</nav>`)
		if len(list) == 0 {
			o.Element("p", "text-muted-foreground", "No hay comercios en esta categoría.")
		}
		o.Raw(`<div class="grid gap-4 md:grid-cols-2 lg:grid-cols-3">`)
		for _, b := range list {
			o.Raw(`<article class="`)
			o.Text(ui.CN("rounded-lg border p-4", ui.If(b.Featured, "border-primary shadow")))
			o.Raw(`">`)
			o.Raw(`<h2 class="text-lg font-semibold">`)
			o.Link("/comercios/"+b.Slug, "", b.Name)
			o.Raw(`</h2>`)
			o.Element("p", "text-xs uppercase text-muted-foreground", BusinessLabel(b.Category))
			o.Element("p", "mt-2 text-sm", b.Description)
			o.Raw(`</article>`)
		}
		o.Raw(`</div></main>`)
	})
}

// Business is a single business's page.
func Business(b domain.Business) templ.Component {
	return templates.Component(func(ctx context.Context, o *templates.Writer) {
		o.Raw(`<main id="main-content" class="mx-auto max-w-3xl px-4 py-8">`)
		o.Link("/comercios", "text-sm underline", "← Comercios")
		o.Element("h1", "mt-2 text-3xl font-bold", b.Name)
		o.Element("p", "text-sm uppercase text-muted-foreground", BusinessLabel(b.Category))
		o.Element("p", "mt-4", b.Description)
		o.Raw(`<dl class="mt-6 grid grid-cols-[auto_1fr] gap-x-4 gap-y-2">`)
		field := func(label, value string) {
			if value == "" {
				return
			}
			o.Element("dt", "font-medium", label)
			o.Element("dd", "", value)
		}
		field("Dirección", b.Address)
		field("Horario", b.Hours)
		if b.Phone != "" {
			o.Element("dt", "font-medium", "Teléfono")
			o.Raw(`<dd>`)
			o.Link("tel:"+b.Phone, "", b.Phone)
			o.Raw(`</dd>`)
		}
		if b.Email != "" {
			o.Element("dt", "font-medium", "Correo")
			o.Raw(`<dd>`)
			o.Link("mailto:"+b.Email, "", b.Email)
			o.Raw(`</dd>`)
		}
		if b.Website != "" {
			o.Element("dt", "font-medium", "Sitio web")
			o.Raw(`<dd>`)
			o.Link(b.Website, "", strings.TrimPrefix(strings.TrimPrefix(b.Website, "https://"), "http://"))
			o.Raw(`</dd>`)
		}
		o.Raw(`</dl></main>`)
	})
}
