package pages

import (
	"context"

	"github.com/a-h/templ"

	"github.com/vangoframework/pellines/internal/templates"
)

// SignInData configures the sign-in page.
type SignInData struct {
	FrontendAPI    string // identity provider frontend API origin
	PublishableKey string
	HostedURL      string // provider-hosted sign-in page
	Redirect       string // local path to return to
	Error          string // error code from a failed attempt
}

var signInErrors = map[string]string{
	"invalid_token": "No pudimos verificar tu sesión. Vuelve a iniciar sesión.",
	"database":      "Ocurrió un error al registrar tu cuenta. Intenta nuevamente.",
	"session":       "No pudimos guardar tu sesión. Revisa que tu navegador acepte cookies.",
}

// SignIn mounts the identity provider's sign-in widget. Once the provider
// reports a signed-in user the page exchanges its token for a site session.
func SignIn(data SignInData) templ.Component {
	return templates.Component(func(ctx context.Context, o *templates.Writer) {
		o.Raw(`<main id="main-content" class="mx-auto flex max-w-md flex-col items-center gap-6 px-4 py-16">`)
		o.Element("h1", "text-2xl font-bold", "Iniciar sesión")
		if msg, ok := signInErrors[data.Error]; ok {
			o.Element("p", "rounded border border-destructive p-3 text-sm", msg)
		}
		o.Raw(`<div id="sign-in"></div><noscript>`)
		o.Link(data.HostedURL, "underline", "Continuar con la página de acceso")
		o.Raw(`</noscript>`)

		if data.PublishableKey != "" {
			o.Raw(`<script async crossorigin="anonymous" data-clerk-publishable-key="`)
			o.Text(data.PublishableKey)
			o.Raw(`" src="`)
			o.Text(string(templ.URL(data.FrontendAPI + "/npm/@clerk/clerk-js@5/dist/clerk.browser.js")))
			o.Raw(`"></script>`)
		}
		o.Raw(`<script data-redirect="`)
		o.Text(data.Redirect)
		o.Raw(`">` + signInScript + `</script></main>`)
	})
}

const signInScript = `
(function () {
  var redirect = document.currentScript.dataset.redirect || "/dashboard";
  window.addEventListener("load", async function () {
    if (!window.Clerk) return;
    await window.Clerk.load();
    if (!window.Clerk.user) {
      window.Clerk.mountSignIn(document.getElementById("sign-in"), { forceRedirectUrl: location.href });
      return;
    }
    var token = await window.Clerk.session.getToken({ template: "convex" });
    var res = await fetch("/auth/session", { method: "POST", headers: { Authorization: "Bearer " + token } });
    location.href = res.ok ? redirect : "/sign-in?error=invalid_token";
  });
})();
`
