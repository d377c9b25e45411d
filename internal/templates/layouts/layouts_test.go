package layouts_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vangoframework/pellines/internal/auth"
	"github.com/vangoframework/pellines/internal/templates/layouts"
)

func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func TestPublic(t *testing.T) {
	html := render(t, context.Background(), layouts.Public(text("<p>contenido</p>")))

	header := strings.Index(html, "<header")
	content := strings.Index(html, `<div class="pt-16"><p>contenido</p></div>`)
	footer := strings.Index(html, "<footer")

	require.NotEqual(t, -1, header)
	require.NotEqual(t, -1, content)
	require.NotEqual(t, -1, footer)
	assert.Less(t, header, content)
	assert.Less(t, content, footer)
}

func TestWithHeader(t *testing.T) {
	html := render(t, context.Background(), layouts.WithHeader(text("<p>eventos</p>")))

	assert.Contains(t, html, "<header")
	assert.Contains(t, html, `<div class="pt-16"><p>eventos</p></div>`)
	assert.NotContains(t, html, "<footer")
}

func TestBare(t *testing.T) {
	child := text("<p>radio</p>")
	html := render(t, context.Background(), layouts.Bare(child))

	assert.Equal(t, "<p>radio</p>", html)
}

func TestDocument(t *testing.T) {
	meta := layouts.Meta{Title: "Radio & Música", Description: `Escucha "en vivo"`}
	html := render(t, context.Background(), layouts.Document(meta, text("<main>x</main>")))

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `<html lang="es">`)
	assert.Contains(t, html, "<title>Radio &amp; Música</title>")
	assert.Contains(t, html, `content="Escucha &#34;en vivo&#34;"`)
	assert.Contains(t, html, "<main>x</main></body></html>")
}

func TestDocument_DefaultsToSiteMeta(t *testing.T) {
	html := render(t, context.Background(), layouts.Document(layouts.Meta{}, nil))

	assert.Contains(t, html, "<title>Pinto Los Pellines - Plataforma de Gestión Comunitaria</title>")
}

func TestSections(t *testing.T) {
	want := map[string]layouts.Kind{
		"/anuncios":    layouts.KindWithHeader,
		"/calendario":  layouts.KindPublic,
		"/comercios":   layouts.KindPublic,
		"/contactos":   layouts.KindPublic,
		"/documentos":  layouts.KindPublic,
		"/emergencias": layouts.KindPublic,
		"/eventos":     layouts.KindWithHeader,
		"/fotos":       layouts.KindPublic,
		"/mapa":        layouts.KindPublic,
		"/radio":       layouts.KindBare,
		"/weather":     layouts.KindWithHeader,
		"/dashboard":   layouts.KindDashboard,
	}

	require.Len(t, layouts.Sections, len(want))
	for _, s := range layouts.Sections {
		kind, ok := want[s.Path]
		require.True(t, ok, "unexpected section %s", s.Path)
		assert.Equal(t, kind, s.Layout, s.Path)
		assert.NotEmpty(t, s.Meta.Title, s.Path)
		assert.NotEmpty(t, s.Meta.Description, s.Path)
	}

	radio := layouts.MustLookup("/radio")
	assert.Equal(t, "Radio Comunitaria - JuntaDeVecinos", radio.Meta.Title)
}

func TestLookup(t *testing.T) {
	s, ok := layouts.Lookup("/comercios/panaderia-rosa")
	require.True(t, ok)
	assert.Equal(t, "/comercios", s.Path)

	s, ok = layouts.Lookup("/")
	require.True(t, ok)
	assert.Equal(t, layouts.SiteMeta, s.Meta)

	_, ok = layouts.Lookup("/comerciosx")
	assert.False(t, ok)
}

func TestHeader_MarksActiveSection(t *testing.T) {
	ctx := layouts.WithPath(context.Background(), "/eventos")
	html := render(t, ctx, layouts.Header())

	active := `<a href="/eventos" class="` + layouts.NavClass(true) + `" aria-current="page">Eventos</a>`
	inactive := `<a href="/anuncios" class="` + layouts.NavClass(false) + `">Anuncios</a>`
	assert.Contains(t, html, active)
	assert.Contains(t, html, inactive)
	assert.Equal(t, 1, strings.Count(html, `aria-current="page"`))
}

func TestNavClass(t *testing.T) {
	assert.Equal(t, "flex items-center gap-2 text-sm transition-colors font-semibold text-foreground", layouts.NavClass(true))
	assert.Equal(t, "flex items-center gap-2 text-sm transition-colors text-muted-foreground hover:text-foreground", layouts.NavClass(false))
}

func TestHeader_SignedIn(t *testing.T) {
	anonymous := render(t, context.Background(), layouts.Header())
	assert.Contains(t, anonymous, `href="/sign-in"`)
	assert.NotContains(t, anonymous, "/auth/logout")

	ctx := auth.WithIdentity(context.Background(), &auth.Identity{Subject: "user_1"})
	signedIn := render(t, ctx, layouts.Header())
	assert.Contains(t, signedIn, `href="/dashboard"`)
	assert.Contains(t, signedIn, `action="/auth/logout"`)
	assert.NotContains(t, signedIn, `href="/sign-in"`)
}

func TestPage_WrapsInSectionShell(t *testing.T) {
	html := render(t, context.Background(), layouts.Page(layouts.MustLookup("/radio"), text("<p>estaciones</p>")))

	assert.Contains(t, html, "<title>Radio Comunitaria - JuntaDeVecinos</title>")
	assert.Contains(t, html, "<body class=\"min-h-screen bg-background font-sans antialiased\"><p>estaciones</p></body>")
	assert.NotContains(t, html, "<header")
}

func TestRender_PropagatesChildError(t *testing.T) {
	boom := errors.New("boom")
	failing := templ.ComponentFunc(func(context.Context, io.Writer) error { return boom })

	err := layouts.Public(failing).Render(context.Background(), io.Discard)
	assert.ErrorIs(t, err, boom)
}
