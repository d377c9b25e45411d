package pages

import (
	"context"
	"slices"

	"github.com/a-h/templ"

	"github.com/vangoframework/pellines/internal/domain"
	"github.com/vangoframework/pellines/internal/templates"
	"github.com/vangoframework/pellines/internal/ui"
)

var contactGroups = []struct {
	types []domain.ContactType
	title string
}{
	{[]domain.ContactType{domain.ContactDirectiva}, "Directiva"},
	{[]domain.ContactType{domain.ContactSeguridad, domain.ContactPolice, domain.ContactFire, domain.ContactHealth}, "Seguridad y emergencias"},
	{[]domain.ContactType{domain.ContactSocial}, "Organizaciones sociales"},
	{[]domain.ContactType{domain.ContactMunicipal}, "Municipalidad"},
	{[]domain.ContactType{domain.ContactService}, "Servicios"},
}

func contactCard(o *templates.Writer, c domain.Contact) {
	o.Raw(`<li class="rounded-lg border p-4">`)
	o.Element("p", "font-semibold", c.Name)
	if c.Position != "" {
		o.Element("p", "text-sm text-muted-foreground", c.Position)
	}
	if c.Phone != "" {
		o.Raw(`<p>`)
		o.Link("tel:"+c.Phone, "font-mono", c.Phone)
		o.Raw(`</p>`)
	}
	if c.Email != "" {
		o.Raw(`<p>`)
		o.Link("mailto:"+c.Email, "text-sm", c.Email)
		o.Raw(`</p>`)
	}
	if c.Availability != "" {
		o.Element("p", "text-xs text-muted-foreground", c.Availability)
	}
	o.Raw(`</li>`)
}

// Contacts is the community directory grouped by contact type.
func Contacts(list []domain.Contact) templ.Component {
	return templates.Component(func(ctx context.Context, o *templates.Writer) {
		o.Raw(`<main id="main-content" class="mx-auto max-w-5xl px-4 py-8">`)
		o.Element("h1", "text-3xl font-bold", "Contactos")
		for _, g := range contactGroups {
			var members []domain.Contact
			for _, c := range list {
				for _, t := range g.types {
					if c.Type == t {
						members = append(members, c)
					}
				}
			}
			if len(members) == 0 {
				continue
			}
			o.Raw(`<section class="mt-6">`)
			o.Element("h2", "text-xl font-semibold", g.title)
			o.Raw(`<ul class="mt-2 grid gap-4 md:grid-cols-2">`)
			for _, c := range members {
				contactCard(o, c)
			}
			o.Raw(`</ul></section>`)
		}
		if len(list) == 0 {
			o.Element("p", "text-muted-foreground", "No hay contactos registrados.")
		}
		o.Raw(`</main>`)
	})
}

// EmergencyNumbers are the national emergency lines.
var EmergencyNumbers = []struct{ Name, Number, Description string }{
	{"Carabineros", "133", "Policía uniformada - Emergencias y seguridad ciudadana"},
	{"Ambulancia (SAMU)", "131", "Servicio de ambulancias y emergencias médicas"},
	{"Bomberos", "132", "Cuerpo de bomberos local - Incendios y rescates"},
	{"PDI", "134", "Policía de Investigaciones"},
}

// fallbackProtocols are shown when no protocols have been loaded.
var fallbackProtocols = []domain.EmergencyProtocol{
	{Title: "Protocolo de Incendio", Description: "Actuación ante incendios forestales o estructurales", Priority: domain.PriorityCritical},
	{Title: "Protocolo de Inundación", Description: "Actuación ante lluvias intensas y crecidas de ríos", Priority: domain.PriorityHigh},
	{Title: "Protocolo Sísmico", Description: "Actuación durante y después de un terremoto", Priority: domain.PriorityHigh},
	{Title: "Protocolo de Seguridad Vecinal", Description: "Actuación ante situaciones de inseguridad", Priority: domain.PriorityMedium},
}

// Emergencies lists emergency numbers, local emergency contacts and protocols.
func Emergencies(local []domain.Contact, protocols []domain.EmergencyProtocol) templ.Component {
	return templates.Component(func(ctx context.Context, o *templates.Writer) {
		o.Raw(`<main id="main-content" class="mx-auto max-w-5xl px-4 py-8">`)
		o.Element("h1", "text-3xl font-bold", "Emergencias")
		o.Raw(`<ul class="mt-4 grid gap-4 md:grid-cols-2">`)
		for _, n := range EmergencyNumbers {
			o.Raw(`<li class="rounded-lg border border-destructive p-4">`)
			o.Element("p", "font-semibold", n.Name)
			o.Raw(`<p class="text-3xl font-bold">`)
			o.Link("tel:"+n.Number, "", n.Number)
			o.Raw(`</p>`)
			o.Element("p", "text-sm text-muted-foreground", n.Description)
			o.Raw(`</li>`)
		}
		o.Raw(`</ul>`)

		if len(local) > 0 {
			o.Raw(`<section class="mt-8">`)
			o.Element("h2", "text-xl font-semibold", "Contactos locales")
			o.Raw(`<ul class="mt-2 grid gap-4 md:grid-cols-2">`)
			for _, c := range local {
				contactCard(o, c)
			}
			o.Raw(`</ul></section>`)
		}

		if len(protocols) == 0 {
			protocols = fallbackProtocols
		}
		protocols = slices.Clone(protocols)
		domain.SortProtocols(protocols)
		o.Raw(`<section class="mt-8">`)
		o.Element("h2", "text-xl font-semibold", "Protocolos")
		o.Raw(`<ul class="mt-2 flex flex-col gap-4">`)
		for _, p := range protocols {
			protocolCard(o, p)
		}
		o.Raw(`</ul></section></main>`)
	})
}

func protocolCard(o *templates.Writer, p domain.EmergencyProtocol) {
	critical := p.Priority == domain.PriorityCritical
	o.Rawf(`<li class="%s">`, ui.CN("rounded-lg border p-4", ui.If(critical, "border-destructive")))
	o.Element("p", "font-medium", p.Title)
	if p.Description != "" {
		o.Element("p", "text-sm text-muted-foreground", p.Description)
	}
	if len(p.Steps) > 0 {
		o.Raw(`<ol class="mt-2 list-decimal pl-5 text-sm">`)
		for _, step := range p.Steps {
			o.Element("li", "", step)
		}
		o.Raw(`</ol>`)
	}
	if len(p.Contacts) > 0 {
		o.Raw(`<ul class="mt-2 flex flex-wrap gap-3 text-sm">`)
		for _, c := range p.Contacts {
			o.Raw(`<li>`)
			o.Text(c.Name + ": ")
			o.Link("tel:"+c.Phone, "font-mono", c.Phone)
			o.Raw(`</li>`)
		}
		o.Raw(`</ul>`)
	}
	if p.DocumentURL != "" {
		o.Link(p.DocumentURL, "mt-2 inline-block text-sm underline", "Descargar protocolo")
	}
	o.Raw(`</li>`)
}

// Radio lists the community radio streams.
func Radio(stations []domain.RadioStation) templ.Component {
	return templates.Component(func(ctx context.Context, o *templates.Writer) {
		o.Raw(`<main id="main-content" class="mx-auto max-w-4xl px-4 py-8">`)
		o.Element("h1", "text-3xl font-bold", "Radio Comunitaria")
		if len(stations) == 0 {
			o.Element("p", "text-muted-foreground", "No hay estaciones disponibles.")
		}
		o.Raw(`<ul class="mt-4 flex flex-col gap-4">`)
		for _, s := range stations {
			o.Raw(`<li class="rounded-lg border p-4">`)
			o.Element("p", "font-semibold", s.Name)
			if s.Frequency != "" {
				o.Element("p", "text-sm text-muted-foreground", s.Frequency)
			}
			o.Element("p", "text-sm", s.Description)
			o.Raw(`<audio controls preload="none" src="`)
			o.Text(string(templ.URL(s.StreamURL)))
			o.Raw(`"></audio></li>`)
		}
		o.Raw(`</ul></main>`)
	})
}

// Photos is the gallery grouped by album.
func Photos(photos []domain.Photo) templ.Component {
	return templates.Component(func(ctx context.Context, o *templates.Writer) {
		albums, byAlbum := domain.GroupByAlbum(photos)

		o.Raw(`<main id="main-content" class="mx-auto max-w-6xl px-4 py-8">`)
		o.Element("h1", "text-3xl font-bold", "Fotos")
		if len(photos) == 0 {
			o.Element("p", "text-muted-foreground", "Aún no hay fotos.")
		}
		for _, album := range albums {
			o.Raw(`<section class="mt-6">`)
			o.Element("h2", "text-xl font-semibold", album)
			o.Raw(`<div class="mt-2 grid grid-cols-2 gap-2 md:grid-cols-4">`)
			for _, p := range byAlbum[album] {
				o.Raw(`<figure><img loading="lazy" class="aspect-square w-full rounded object-cover" src="`)
				o.Text(string(templ.URL(p.URL)))
				o.Raw(`" alt="`)
				o.Text(p.Caption)
				o.Raw(`">`)
				if p.Caption != "" {
					o.Element("figcaption", "text-xs text-muted-foreground", p.Caption)
				}
				o.Raw(`</figure>`)
			}
			o.Raw(`</div></section>`)
		}
		o.Raw(`</main>`)
	})
}
