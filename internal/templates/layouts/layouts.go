package layouts

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	"github.com/vangoframework/pellines/internal/auth"
	"github.com/vangoframework/pellines/internal/templates"
	"github.com/vangoframework/pellines/internal/ui"
)

// Document is the root HTML document.
func Document(meta Meta, body templ.Component) templ.Component {
	if meta.Title == "" {
		meta.Title = SiteMeta.Title
	}
	if meta.Description == "" {
		meta.Description = SiteMeta.Description
	}

	return templates.Component(func(ctx context.Context, o *templates.Writer) {
		o.Raw(`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8">`)
		o.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		o.Element("title", "", meta.Title)
		o.Raw(`<meta name="description" content="`)
		o.Text(meta.Description)
		o.Raw(`"><meta property="og:title" content="`)
		o.Text(meta.Title)
		o.Raw(`"><link rel="stylesheet" href="/static/css/app.css"></head>`)
		o.Raw(`<body class="min-h-screen bg-background font-sans antialiased">`)
		o.Render(ctx, body)
		o.Raw(`</body></html>`)
	})
}

// Public wraps children in the header and footer.
func Public(children templ.Component) templ.Component {
	return templates.Component(func(ctx context.Context, o *templates.Writer) {
		o.Render(ctx, Header())
		o.Raw(`<div class="pt-16">`)
		o.Render(ctx, children)
		o.Raw(`</div>`)
		o.Render(ctx, Footer())
	})
}

// WithHeader wraps children in the header only.
func WithHeader(children templ.Component) templ.Component {
	return templates.Component(func(ctx context.Context, o *templates.Writer) {
		o.Render(ctx, Header())
		o.Raw(`<div class="pt-16">`)
		o.Render(ctx, children)
		o.Raw(`</div>`)
	})
}

// Bare returns children unmodified.
func Bare(children templ.Component) templ.Component {
	return children
}

var dashboardLinks = []struct{ href, label string }{
	{"/dashboard", "Resumen"},
	{"/dashboard#comercios", "Mi comercio"},
	{"/dashboard#anuncios", "Publicar anuncio"},
	{"/", "Volver al sitio"},
}

// Dashboard wraps children in the signed-in sidebar shell.
func Dashboard(children templ.Component) templ.Component {
	return templates.Component(func(ctx context.Context, o *templates.Writer) {
		o.Raw(`<div class="flex min-h-screen">`)
		o.Raw(`<aside class="w-64 border-r bg-muted/40 p-4"><nav class="flex flex-col gap-1" aria-label="Panel">`)
		for _, l := range dashboardLinks {
			o.Link(l.href, "rounded-md px-3 py-2 text-sm hover:bg-accent", l.label)
		}
		o.Raw(`</nav></aside><main class="flex flex-1 flex-col gap-4 py-4 md:gap-6 md:py-6">`)
		o.Render(ctx, children)
		o.Raw(`</main></div>`)
	})
}

// Wrap applies the shell chosen by kind.
func Wrap(kind Kind, children templ.Component) templ.Component {
	switch kind {
	case KindPublic:
		return Public(children)
	case KindWithHeader:
		return WithHeader(children)
	case KindDashboard:
		return Dashboard(children)
	default:
		return Bare(children)
	}
}

// Page renders a section's content inside its shell and the root document.
func Page(section Section, content templ.Component) templ.Component {
	return Document(section.Meta, Wrap(section.Layout, content))
}

type navGroup struct {
	name  string
	items []string // section paths
}

var navigation = []navGroup{
	{"Comunidad", []string{"/anuncios", "/eventos", "/calendario", "/contactos"}},
	{"Servicios", []string{"/comercios", "/mapa", "/emergencias", "/radio"}},
	{"Recursos", []string{"/documentos", "/fotos", "/weather"}},
}

func isActive(current, path string) bool {
	return current == path || strings.HasPrefix(current, path+"/")
}

// NavClass returns the classes of a navigation link.
func NavClass(active bool) string {
	return ui.CN(
		"flex items-center gap-2 text-sm transition-colors",
		ui.If(active, "font-semibold text-foreground"),
		ui.If(!active, "text-muted-foreground hover:text-foreground"),
	)
}

// Header is the fixed site header.
func Header() templ.Component {
	return templates.Component(func(ctx context.Context, o *templates.Writer) {
		current := PathFromContext(ctx)

		o.Raw(`<a href="#main-content" class="sr-only focus:not-sr-only">Saltar al contenido</a>`)
		o.Raw(`<header class="fixed inset-x-0 top-0 z-50 h-16 border-b bg-background/80 backdrop-blur">`)
		o.Raw(`<div class="mx-auto flex h-full max-w-7xl items-center justify-between px-4">`)
		o.Link("/", "text-lg font-bold", "Pinto Los Pellines")
		o.Raw(`<nav class="hidden lg:flex items-center gap-6" aria-label="Navegación principal">`)
		for _, g := range navigation {
			o.Raw(`<div class="group relative">`)
			o.Element("span", "text-sm font-medium", g.name)
			o.Raw(`<div class="flex flex-col gap-1">`)
			for _, path := range g.items {
				s := MustLookup(path)
				active := isActive(current, s.Path)
				o.Rawf(`<a href="%s" class="%s"`, s.Path, templ.EscapeString(NavClass(active)))
				if active {
					o.Raw(` aria-current="page"`)
				}
				o.Raw(">")
				o.Text(s.Name)
				o.Raw(`</a>`)
			}
			o.Raw(`</div></div>`)
		}
		o.Raw(`</nav><div class="flex items-center gap-3">`)

		if identity := auth.IdentityFromContext(ctx); identity != nil {
			o.Link("/dashboard", ui.CN("text-sm", ui.If(isActive(current, "/dashboard"), "font-semibold")), "Panel")
			o.Raw(`<form method="post" action="/auth/logout"><button type="submit" class="text-sm">Cerrar sesión</button></form>`)
		} else {
			o.Link("/sign-in", "text-sm", "Iniciar Sesión")
		}

		o.Raw(`</div></div></header>`)
	})
}

// Footer is the site footer.
func Footer() templ.Component {
	return templates.Component(func(ctx context.Context, o *templates.Writer) {
		o.Raw(`<footer class="border-t py-8"><div class="mx-auto flex max-w-7xl flex-col gap-4 px-4 md:flex-row md:justify-between">`)
		o.Element("p", "text-sm text-muted-foreground", "© Junta de Vecinos Pinto Los Pellines")
		o.Raw(`<nav class="flex gap-4" aria-label="Pie de página">`)
		o.Link("/emergencias", "text-sm", "Emergencias")
		o.Link("/contactos", "text-sm", "Contactos")
		o.Link("/calendario.ics", "text-sm", "Calendario (iCal)")
		o.Raw(`</nav></div></footer>`)
	})
}
