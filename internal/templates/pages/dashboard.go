package pages

import (
	"context"

	"github.com/a-h/templ"

	"github.com/vangoframework/pellines/internal/auth"
	"github.com/vangoframework/pellines/internal/domain"
	"github.com/vangoframework/pellines/internal/templates"
	"github.com/vangoframework/pellines/internal/ui"
)

// Form carries submitted values and per-field errors back to a form.
type Form struct {
	Values map[string]string
	Errors map[string]string
}

func (f Form) value(name string) string {
	return f.Values[name]
}

// DashboardData is the signed-in overview.
type DashboardData struct {
	Identity     *auth.Identity
	Flash        string
	Business     Form
	Announcement Form
	Alert        Form
}

// Dashboard is the signed-in overview with the submission forms.
func Dashboard(data DashboardData) templ.Component {
	return templates.Component(func(ctx context.Context, o *templates.Writer) {
		name := "vecino"
		if data.Identity != nil && data.Identity.Name != "" {
			name = data.Identity.Name
		}

		o.Raw(`<div class="px-4 lg:px-6">`)
		o.Element("h1", "text-2xl font-bold", "Hola, "+name)
		if data.Flash != "" {
			o.Element("p", "mt-2 rounded border border-primary p-3 text-sm", data.Flash)
		}

		o.Raw(`<section id="comercios" class="mt-8">`)
		o.Element("h2", "text-xl font-semibold", "Registrar mi comercio")
		o.Element("p", "text-sm text-muted-foreground", "La directiva revisará los datos antes de publicarlos.")
		o.Raw(`<form method="post" action="/dashboard/comercios" class="mt-4 flex flex-col gap-3">`)
		input(o, data.Business, "name", "Nombre", "text")
		o.Raw(`<label class="flex flex-col gap-1 text-sm">Categoría<select name="category" class="rounded border p-2">`)
		for _, c := range domain.BusinessCategories {
			o.Raw(`<option value="` + string(c) + `"`)
			if data.Business.value("category") == string(c) {
				o.Raw(` selected`)
			}
			o.Raw(`>`)
			o.Text(BusinessLabel(c))
			o.Raw(`</option>`)
		}
		o.Raw(`</select>`)
		fieldError(o, data.Business, "category")
		o.Raw(`</label>`)
		textarea(o, data.Business, "description", "Descripción")
		input(o, data.Business, "address", "Dirección", "text")
		input(o, data.Business, "phone", "Teléfono", "tel")
		input(o, data.Business, "email", "Correo", "email")
		input(o, data.Business, "website", "Sitio web", "url")
		input(o, data.Business, "hours", "Horario", "text")
		o.Raw(`<button type="submit" class="rounded bg-primary px-4 py-2 text-primary-foreground">Enviar</button></form></section>`)

		if data.Identity.IsAdmin() {
			o.Raw(`<section id="anuncios" class="mt-8">`)
			o.Element("h2", "text-xl font-semibold", "Publicar anuncio")
			o.Raw(`<form method="post" action="/dashboard/anuncios" class="mt-4 flex flex-col gap-3">`)
			input(o, data.Announcement, "title", "Título", "text")
			textarea(o, data.Announcement, "content", "Contenido")
			o.Raw(`<label class="flex flex-col gap-1 text-sm">Prioridad<select name="priority" class="rounded border p-2">`)
			for _, p := range []domain.Priority{domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh, domain.PriorityCritical} {
				o.Raw(`<option value="` + string(p) + `"`)
				if data.Announcement.value("priority") == string(p) {
					o.Raw(` selected`)
				}
				o.Raw(`>` + string(p) + `</option>`)
			}
			o.Raw(`</select></label>`)
			o.Raw(`<label class="flex flex-col gap-1 text-sm">Categoría<select name="category" class="rounded border p-2">`)
			for _, c := range announcementCategories[1:] {
				o.Raw(`<option value="` + string(c.value) + `"`)
				if data.Announcement.value("category") == string(c.value) {
					o.Raw(` selected`)
				}
				o.Raw(`>`)
				o.Text(c.label)
				o.Raw(`</option>`)
			}
			o.Raw(`</select></label>`)
			input(o, data.Announcement, "expires_at", "Vence el", "date")
			o.Raw(`<button type="submit" class="rounded bg-primary px-4 py-2 text-primary-foreground">Publicar</button></form></section>`)

			o.Raw(`<section id="alertas" class="mt-8">`)
			o.Element("h2", "text-xl font-semibold", "Publicar alerta meteorológica")
			o.Raw(`<form method="post" action="/dashboard/alertas" class="mt-4 flex flex-col gap-3">`)
			input(o, data.Alert, "title", "Título", "text")
			textarea(o, data.Alert, "description", "Descripción")
			o.Raw(`<label class="flex flex-col gap-1 text-sm">Severidad<select name="severity" class="rounded border p-2">`)
			for _, sev := range domain.AlertSeverities {
				option(o, string(sev), SeverityLabel(sev), data.Alert.value("severity"))
			}
			o.Raw(`</select>`)
			fieldError(o, data.Alert, "severity")
			o.Raw(`</label>`)
			o.Raw(`<label class="flex flex-col gap-1 text-sm">Tipo<select name="type" class="rounded border p-2">`)
			for _, typ := range domain.AlertTypes {
				option(o, string(typ), AlertTypeLabel(typ), data.Alert.value("type"))
			}
			o.Raw(`</select>`)
			fieldError(o, data.Alert, "type")
			o.Raw(`</label>`)
			input(o, data.Alert, "starts_at", "Desde", "datetime-local")
			input(o, data.Alert, "ends_at", "Hasta", "datetime-local")
			input(o, data.Alert, "areas", "Sectores (separados por coma)", "text")
			textarea(o, data.Alert, "instructions", "Instrucciones")
			o.Raw(`<button type="submit" class="rounded bg-primary px-4 py-2 text-primary-foreground">Publicar alerta</button></form></section>`)
		}
		o.Raw(`</div>`)
	})
}

func option(o *templates.Writer, value, label, selected string) {
	o.Rawf(`<option value="%s"`, templ.EscapeString(value))
	if value == selected {
		o.Raw(` selected`)
	}
	o.Raw(`>`)
	o.Text(label)
	o.Raw(`</option>`)
}

func input(o *templates.Writer, f Form, name, label, typ string) {
	_, invalid := f.Errors[name]
	o.Raw(`<label class="flex flex-col gap-1 text-sm">`)
	o.Text(label)
	o.Rawf(`<input type="%s" name="%s" class="%s" value="`, typ, name, ui.CN("rounded border p-2", ui.If(invalid, "border-destructive")))
	o.Text(f.value(name))
	o.Raw(`"`)
	if invalid {
		o.Raw(` aria-invalid="true"`)
	}
	o.Raw(`>`)
	fieldError(o, f, name)
	o.Raw(`</label>`)
}

func textarea(o *templates.Writer, f Form, name, label string) {
	_, invalid := f.Errors[name]
	o.Raw(`<label class="flex flex-col gap-1 text-sm">`)
	o.Text(label)
	o.Rawf(`<textarea name="%s" rows="4" class="%s">`, name, ui.CN("rounded border p-2", ui.If(invalid, "border-destructive")))
	o.Text(f.value(name))
	o.Raw(`</textarea>`)
	fieldError(o, f, name)
	o.Raw(`</label>`)
}

func fieldError(o *templates.Writer, f Form, name string) {
	if msg, ok := f.Errors[name]; ok {
		o.Element("span", "text-xs text-destructive", msg)
	}
}
