package main

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/garnizeh/ideabridge/internal/marketplace"
	"github.com/garnizeh/ideabridge/internal/repository/browser"
	"github.com/garnizeh/ideabridge/pkg/models"
)

type LoginView struct {
	app.Compo

	sess     *session
	email    string
	password string
	role     models.Role
	errs     map[string]string
}

func (c *LoginView) OnMount(ctx app.Context) {
	c.sess = openSession(ctx, browser.LocalStorage(ctx), navigatorLanguage())
	c.role = models.RoleProblemOwner
	if c.sess.svc.Store().IsAuthenticated(ctx) {
		ctx.Navigate("/")
	}
}

func (c *LoginView) onSubmit(ctx app.Context, e app.Event) {
	e.PreventDefault()
	u, err := c.sess.svc.Login(ctx, marketplace.LoginInput{
		Email:    c.email,
		Password: c.password,
		Role:     c.role,
		Locale:   c.sess.loc,
	})
	if err != nil {
		c.errs = c.sess.errorMessages(err)
		return
	}
	app.Logf("signed in as %s (%s)", u.Email, u.Role)
	ctx.Navigate("/")
}

func (c *LoginView) Render() app.UI {
	if c.sess == nil {
		return app.Div().Class("loading")
	}

	roleBtn := func(r models.Role, key string) app.UI {
		cls := "role-btn"
		if c.role == r {
			cls += " active"
		}
		return app.Button().
			Type("button").
			Class(cls).
			Text(c.sess.t(key)).
			OnClick(func(ctx app.Context, e app.Event) { c.role = r })
	}

	return app.Div().Class("login").Body(
		app.H2().Text(c.sess.t("auth.login.title")),
		app.Div().Class("roles").Body(
			roleBtn(models.RoleProblemOwner, "auth.login.problemOwner"),
			roleBtn(models.RoleITProfessional, "auth.login.itProfessional"),
		),
		app.Form().OnSubmit(c.onSubmit).Body(
			app.Input().
				Type("email").
				Value(c.email).
				OnInput(func(ctx app.Context, e app.Event) { c.email = inputValue(ctx) }),
			fieldError(c.errs, "email"),
			app.Input().
				Type("password").
				Value(c.password).
				OnInput(func(ctx app.Context, e app.Event) { c.password = inputValue(ctx) }),
			app.Button().Type("submit").Text(c.sess.t("auth.login.title")),
		),
	)
}
