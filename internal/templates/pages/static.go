package pages

import (
	"context"

	"github.com/a-h/templ"

	"github.com/vangoframework/pellines/internal/templates"
)

// Document is a published association document.
type Document struct {
	Title       string
	Description string
	Category    string
	Date        string
}

// Documents is the document archive.
var Documents = []Document{
	{"Estatutos Junta de Vecinos Pinto Los Pellines", "Documento fundacional aprobado por Municipalidad de Pinto - Actualizado enero 2024", "Estatutos", "2024-01-15"},
	{"Acta Asamblea Ordinaria Octubre 2025", "Aprobación presupuesto anual 2026 y proyectos comunitarios", "Actas", "2025-10-20"},
	{"Reglamento de Seguridad Vecinal", "Protocolos de rondas nocturnas y sistema de alertas comunitarias", "Reglamentos", "2025-03-01"},
	{"Estados Financieros 2024", "Balance anual y ejecución presupuestaria - Auditado por Comisión Revisora", "Finanzas", "2025-04-30"},
	{"Plan de Desarrollo Comunal 2025-2028", "Proyecto participativo: Mejoramiento infraestructura rural y agricultura sostenible", "Proyectos", "2025-06-10"},
	{"Reglamento de Uso Salón Comunal", "Normas para el uso de espacios comunitarios y arriendo de instalaciones", "Reglamentos", "2024-08-05"},
	{"Censo Poblacional 2024", "Registro actualizado de familias y habitantes del sector rural", "Informes", "2024-12-01"},
	{"Proyecto Sistema de Riego Comunitario", "Estudio técnico y presupuesto para implementación de riego por goteo", "Proyectos", "2025-09-12"},
}

// DocumentList renders the document archive.
func DocumentList(docs []Document) templ.Component {
	return templates.Component(func(ctx context.Context, o *templates.Writer) {
		o.Raw(`<main id="main-content" class="mx-auto max-w-4xl px-4 py-8">`)
		o.Element("h1", "text-3xl font-bold", "Documentos")
		o.Raw(`<ul class="mt-4 flex flex-col gap-4">`)
		for _, d := range docs {
			o.Raw(`<li class="rounded-lg border p-4">`)
			o.Element("p", "font-semibold", d.Title)
			o.Element("p", "text-sm", d.Description)
			o.Element("p", "text-xs text-muted-foreground", d.Category+" · "+d.Date)
			o.Raw(`</li>`)
		}
		o.Raw(`</ul></main>`)
	})
}

// Place is a point of interest on the community map.
type Place struct {
	Name        string
	Kind        string
	Description string
	Lat, Lng    float64
}

// Places are the points of interest shown on the map.
var Places = []Place{
	{"CESFAM Pinto", "salud", "Centro médico de urgencias 24/7", -36.6985, -71.8936},
	{"Bomberos Pinto", "emergencia", "Estación de bomberos y rescate", -36.6972, -71.8921},
	{"Carabineros Pinto", "emergencia", "Policía nacional de Chile", -36.6978, -71.8944},
	{"Almacén Los Pellines", "comercio", "Alimentos, productos y servicios básicos", -36.7312, -71.8450},
	{"Panadería Doña Rosa", "comercio", "Pan artesanal y productos horneados tradicionales", -36.7305, -71.8462},
	{"Farmacia Pinto", "comercio", "Medicamentos y productos farmacéuticos", -36.6990, -71.8930},
	{"Restaurante El Fogón", "comercio", "Comida típica chilena y menú del día", -36.7298, -71.8470},
	{"Escuela Los Pellines", "educacion", "Educación básica para niños y jóvenes", -36.7320, -71.8440},
	{"Sede Junta de Vecinos", "comunidad", "Oficina administrativa de la comunidad", -36.7310, -71.8455},
	{"Capilla Los Pellines", "comunidad", "Centro espiritual y comunitario", -36.7315, -71.8448},
}

// Map lists points of interest with links to an external map.
func Map(places []Place) templ.Component {
	return templates.Component(func(ctx context.Context, o *templates.Writer) {
		o.Raw(`<main id="main-content" class="mx-auto max-w-5xl px-4 py-8">`)
		o.Element("h1", "text-3xl font-bold", "Mapa")
		o.Raw(`<ul class="mt-4 grid gap-4 md:grid-cols-2">`)
		for _, p := range places {
			o.Rawf(`<li class="rounded-lg border p-4" data-kind="%s" data-lat="%f" data-lng="%f">`, templ.EscapeString(p.Kind), p.Lat, p.Lng)
			o.Element("p", "font-semibold", p.Name)
			o.Element("p", "text-sm text-muted-foreground", p.Description)
			o.Link(mapURL(p), "text-sm underline", "Ver en el mapa")
			o.Raw(`</li>`)
		}
		o.Raw(`</ul></main>`)
	})
}

func mapURL(p Place) string {
	return "https://www.openstreetmap.org/?mlat=" + ftoa(p.Lat) + "&mlon=" + ftoa(p.Lng) + "#map=16/" + ftoa(p.Lat) + "/" + ftoa(p.Lng)
}

// NotFound is the 404 page body.
func NotFound() templ.Component {
	return templates.Component(func(ctx context.Context, o *templates.Writer) {
		o.Raw(`<main id="main-content" class="mx-auto max-w-xl px-4 py-24 text-center">`)
		o.Element("h1", "text-4xl font-bold", "Página no encontrada")
		o.Element("p", "mt-4 text-muted-foreground", "La página que buscas no existe o fue movida.")
		o.Link("/", "mt-6 inline-block underline", "Volver al inicio")
		o.Raw(`</main>`)
	})
}
