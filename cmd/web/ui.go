package main

import "github.com/maxence-charriere/go-app/v10/pkg/app"

func inputValue(ctx app.Context) string {
	return ctx.JSSrc().Get("value").String()
}

func navigatorLanguage() string {
	nav := app.Window().Get("navigator")
	if !nav.Truthy() {
		return ""
	}
	return nav.Get("language").String()
}

func fieldError(errs map[string]string, field string) app.UI {
	msg, ok := errs[field]
	return app.If(ok, func() app.UI {
		return app.P().Class("field-error").Text(msg)
	})
}
