package pages

import (
	"context"

	"github.com/a-h/templ"

	"github.com/vangoframework/pellines/internal/domain"
	"github.com/vangoframework/pellines/internal/templates"
	"github.com/vangoframework/pellines/internal/ui"
)

var announcementCategories = []struct {
	value domain.AnnouncementCategory
	label string
}{
	{"", "Todos"},
	{domain.AnnouncementGeneral, "General"},
	{domain.AnnouncementEmergency, "Emergencia"},
	{domain.AnnouncementMaintenance, "Mantención"},
	{domain.AnnouncementEvent, "Eventos"},
	{domain.AnnouncementNews, "Noticias"},
}

// AnnouncementCard renders one announcement.
func AnnouncementCard(a domain.Announcement) templ.Component {
	return templates.Component(func(ctx context.Context, o *templates.Writer) {
		class := ui.CN(
			"rounded-lg border p-4",
			ui.If(a.Urgent(), "border-destructive bg-destructive/10"),
			ui.If(a.Priority == domain.PriorityHigh, "border-amber-500"),
		)
		o.Rawf(`<article class="%s" data-priority="%s">`, class, templ.EscapeString(string(a.Priority)))
		o.Element("h3", "font-semibold", a.Title)
		o.Element("p", "text-sm whitespace-pre-line", a.Content)
		o.Raw(`<p class="mt-2 text-xs text-muted-foreground">`)
		o.Text(FormatDate(a.PublishedAt.In(domain.Zone)))
		if a.AuthorName != "" {
			o.Text(" · " + a.AuthorName)
		}
		o.Raw(`</p></article>`)
	})
}

// Announcements lists active announcements, optionally filtered by category.
func Announcements(list []domain.Announcement, selected string) templ.Component {
	return templates.Component(func(ctx context.Context, o *templates.Writer) {
		o.Raw(`<main id="main-content" class="mx-auto max-w-4xl px-4 py-8">`)
		o.Element("h1", "text-3xl font-bold", "Anuncios")
		o.Raw(`<nav class="my-4 flex flex-wrap gap-2" aria-label="Categorías">`)
		for _, c := range announcementCategories {
			href := "/anuncios"
			if c.value != "" {
				href += "?categoria=" + string(c.value)
			}
			o.Link(href, ui.CN("rounded-full border px-3 py-1 text-sm", ui.If(string(c.value) == selected, "bg-primary text-primary-foreground")), c.label)
		}
		o.Raw(`</nav>`)
		if len(list) == 0 {
			o.Element("p", "text-muted-foreground", "No hay anuncios vigentes.")
		}
		o.Raw(`<div class="flex flex-col gap-4">`)
		for _, a := range list {
			o.Render(ctx, AnnouncementCard(a))
		}
		o.Raw(`</div></main>`)
	})
}
