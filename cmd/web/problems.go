package main

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/garnizeh/ideabridge/internal/i18n"
	"github.com/garnizeh/ideabridge/internal/marketplace"
	"github.com/garnizeh/ideabridge/internal/query"
	"github.com/garnizeh/ideabridge/internal/repository/browser"
	"github.com/garnizeh/ideabridge/pkg/models"
)

// ProblemsView lists problems with search, category, status and sort
// controls; problem owners also get the form to post one.
type ProblemsView struct {
	app.Compo

	sess       *session
	user       *models.User
	filter     query.ProblemFilter
	order      query.Order
	rows       []problemRow
	categories []string

	draft marketplace.ProblemInput
	errs  map[string]string
}

func (c *ProblemsView) OnMount(ctx app.Context) {
	c.sess = openSession(ctx, browser.LocalStorage(ctx), navigatorLanguage())
	c.filter = query.ProblemFilter{Category: query.All, Status: query.All}
	c.order = query.OrderRelevance
	c.load(ctx)
}

func (c *ProblemsView) load(ctx app.Context) {
	c.user = c.sess.svc.Store().CurrentUser(ctx)
	res := c.sess.svc.Browse(ctx, c.filter, c.order)
	c.rows = c.sess.problemRows(res.Problems)
	c.categories = res.Categories
}

func (c *ProblemsView) onPost(ctx app.Context, e app.Event) {
	e.PreventDefault()
	if _, err := c.sess.svc.PostProblem(ctx, c.draft); err != nil {
		c.errs = c.sess.errorMessages(err)
		return
	}
	c.draft, c.errs = marketplace.ProblemInput{}, nil
	c.load(ctx)
}

func (c *ProblemsView) onLogout(ctx app.Context, e app.Event) {
	if err := c.sess.svc.Logout(ctx); err != nil {
		app.Log("logout failed:", err)
	}
	ctx.Navigate("/login")
}

func (c *ProblemsView) onLocale(ctx app.Context, e app.Event) {
	next := i18n.English
	if c.sess.loc == i18n.English {
		next = i18n.Korean
	}
	if err := c.sess.setLocale(ctx, next); err != nil {
		app.Log("locale not saved:", err)
	}
	c.load(ctx)
}

func (c *ProblemsView) Render() app.UI {
	if c.sess == nil {
		return app.Div().Class("loading")
	}

	return app.Div().Class("problems").Body(
		c.renderHeader(),
		c.renderFilters(),
		app.If(c.user != nil && c.user.Role == models.RoleProblemOwner, func() app.UI {
			return c.renderPostForm()
		}),
		app.Ul().Class("problem-list").Body(
			app.Range(c.rows).Slice(func(i int) app.UI {
				r := c.rows[i]
				return app.Li().Class("problem").Body(
					app.H3().Text(r.Title),
					app.Span().Class("category").Text(r.Category),
					app.Span().Class("urgency").Text(r.Urgency),
					app.Span().Class("status").Text(r.Status),
					app.Span().Class("date").Text(r.Date),
				)
			}),
		),
	)
}

func (c *ProblemsView) renderHeader() app.UI {
	return app.Div().Class("header").Body(
		app.H1().Text(c.sess.t("problems.title")),
		app.Button().Class("locale").Text(string(c.sess.loc)).OnClick(c.onLocale),
		app.If(c.user != nil, func() app.UI {
			return app.Button().Class("logout").Text(c.user.Name).OnClick(c.onLogout)
		}).Else(func() app.UI {
			return app.A().Href("/login").Text(c.sess.t("auth.login.title"))
		}),
	)
}

func (c *ProblemsView) renderFilters() app.UI {
	statuses := []models.ProblemStatus{models.ProblemOpen, models.ProblemInProgress, models.ProblemCompleted, models.ProblemClosed}

	return app.Div().Class("filters").Body(
		app.Input().
			Type("search").
			Value(c.filter.Query).
			OnInput(func(ctx app.Context, e app.Event) {
				c.filter.Query = inputValue(ctx)
				c.load(ctx)
			}),
		app.Select().
			OnChange(func(ctx app.Context, e app.Event) {
				c.filter.Category = inputValue(ctx)
				c.load(ctx)
			}).
			Body(
				app.Option().Value(query.All).Text(query.All),
				app.Range(c.categories).Slice(func(i int) app.UI {
					v := c.categories[i]
					return app.Option().Value(v).Selected(v == c.filter.Category).Text(i18n.CategoryLabel(c.sess.loc, v))
				}),
			),
		app.Select().
			OnChange(func(ctx app.Context, e app.Event) {
				c.filter.Status = inputValue(ctx)
				c.load(ctx)
			}).
			Body(
				app.Option().Value(query.All).Text(query.All),
				app.Range(statuses).Slice(func(i int) app.UI {
					s := statuses[i]
					return app.Option().Value(string(s)).Selected(string(s) == c.filter.Status).Text(i18n.ProblemStatusLabel(c.sess.loc, s))
				}),
			),
		app.Select().
			OnChange(func(ctx app.Context, e app.Event) {
				c.order = query.ParseOrder(inputValue(ctx))
				c.load(ctx)
			}).
			Body(
				app.Option().Value(string(query.OrderRelevance)).Text(string(query.OrderRelevance)),
				app.Option().Value(string(query.OrderNewest)).Selected(c.order == query.OrderNewest).Text(string(query.OrderNewest)),
			),
	)
}

func (c *ProblemsView) renderPostForm() app.UI {
	return app.Form().Class("post-problem").OnSubmit(c.onPost).Body(
		app.H2().Text(c.sess.t("problems.new.title")),
		app.Input().
			Type("text").
			Value(c.draft.Title).
			OnInput(func(ctx app.Context, e app.Event) { c.draft.Title = inputValue(ctx) }),
		fieldError(c.errs, "title"),
		app.Textarea().
			Text(c.draft.Description).
			OnInput(func(ctx app.Context, e app.Event) { c.draft.Description = inputValue(ctx) }),
		fieldError(c.errs, "description"),
		app.Select().
			OnChange(func(ctx app.Context, e app.Event) { c.draft.Category = inputValue(ctx) }).
			Body(
				app.Option().Value("").Text("-"),
				app.Range(models.Categories).Slice(func(i int) app.UI {
					v := models.Categories[i]
					return app.Option().Value(v).Selected(v == c.draft.Category).Text(i18n.CategoryLabel(c.sess.loc, v))
				}),
			),
		fieldError(c.errs, "category"),
		fieldError(c.errs, ""),
		app.Button().Type("submit").Text(c.sess.t("problems.newProblem")),
	)
}
