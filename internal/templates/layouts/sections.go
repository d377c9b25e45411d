// Package layouts provides the shared page shells of the site.
package layouts

import (
	"context"
	"strings"
)

// Meta is the static metadata of a page.
type Meta struct {
	Title       string
	Description string
}

// SiteMeta is the metadata of the root document.
var SiteMeta = Meta{
	Title:       "Pinto Los Pellines - Plataforma de Gestión Comunitaria",
	Description: "Plataforma de gestión comunitaria de la Junta de Vecinos de Pinto Los Pellines: anuncios, eventos, comercios locales y contactos de emergencia.",
}

// Kind selects the shell a section is wrapped in.
type Kind int

const (
	// KindPublic renders header, content and footer.
	KindPublic Kind = iota
	// KindWithHeader renders header and content, with no footer.
	KindWithHeader
	// KindBare renders the content unchanged.
	KindBare
	// KindDashboard renders the signed-in sidebar shell.
	KindDashboard
)

func (k Kind) String() string {
	switch k {
	case KindPublic:
		return "public"
	case KindWithHeader:
		return "with-header"
	case KindBare:
		return "bare"
	case KindDashboard:
		return "dashboard"
	}
	return "unknown"
}

// Section is a top-level area of the site.
type Section struct {
	Path   string
	Name   string // navigation label
	Meta   Meta
	Layout Kind
}

func titled(name, description string) Meta {
	return Meta{Title: name + " - Pinto Los Pellines", Description: description}
}

// Sections lists every site section with its shell.
var Sections = []Section{
	{Path: "/anuncios", Name: "Anuncios", Layout: KindWithHeader,
		Meta: titled("Anuncios", "Avisos y comunicados de la Junta de Vecinos.")},
	{Path: "/calendario", Name: "Calendario", Layout: KindPublic,
		Meta: titled("Calendario", "Calendario comunitario de actividades y reuniones.")},
	{Path: "/comercios", Name: "Comercios", Layout: KindPublic,
		Meta: titled("Comercios Locales", "Directorio de comercios y servicios del sector.")},
	{Path: "/contactos", Name: "Contactos", Layout: KindPublic,
		Meta: titled("Contactos", "Directiva, servicios municipales y contactos útiles.")},
	{Path: "/documentos", Name: "Documentos", Layout: KindPublic,
		Meta: titled("Documentos", "Estatutos, actas y reglamentos de la comunidad.")},
	{Path: "/emergencias", Name: "Emergencias", Layout: KindPublic,
		Meta: titled("Emergencias", "Números de emergencia y protocolos de actuación.")},
	{Path: "/eventos", Name: "Eventos", Layout: KindWithHeader,
		Meta: titled("Eventos", "Próximos eventos de la comunidad.")},
	{Path: "/fotos", Name: "Fotos", Layout: KindPublic,
		Meta: titled("Fotos", "Galería de fotos de la comunidad.")},
	{Path: "/mapa", Name: "Mapa", Layout: KindPublic,
		Meta: titled("Mapa", "Mapa de servicios y lugares de interés.")},
	{Path: "/radio", Name: "Radio", Layout: KindBare,
		Meta: Meta{
			Title:       "Radio Comunitaria - JuntaDeVecinos",
			Description: "Escucha estaciones de radio locales y comunitarias de Pinto Los Pellines",
		}},
	{Path: "/weather", Name: "Clima", Layout: KindWithHeader,
		Meta: titled("Clima", "Pronóstico del tiempo para Pinto Los Pellines.")},
	{Path: "/dashboard", Name: "Panel", Layout: KindDashboard,
		Meta: titled("Panel", "Panel de gestión para vecinos registrados.")},
}

// Home is the landing page section.
var Home = Section{Path: "/", Name: "Inicio", Meta: SiteMeta, Layout: KindPublic}

// Lookup returns the section that owns path.
func Lookup(path string) (Section, bool) {
	if path == "/" {
		return Home, true
	}
	for _, s := range Sections {
		if path == s.Path || strings.HasPrefix(path, s.Path+"/") {
			return s, true
		}
	}
	return Section{}, false
}

// MustLookup is Lookup for paths known at compile time.
func MustLookup(path string) Section {
	s, ok := Lookup(path)
	if !ok {
		panic("layouts: unknown section " + path)
	}
	return s
}

type pathKey struct{}

// WithPath records the request path so the header can mark the active section.
func WithPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, pathKey{}, path)
}

// PathFromContext returns the path stored by WithPath.
func PathFromContext(ctx context.Context) string {
	path, _ := ctx.Value(pathKey{}).(string)
	return path
}
