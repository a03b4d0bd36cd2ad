// Command web is the IdeaBridge browser client. Compiled with GOOS=js
// GOARCH=wasm into web/app.wasm it runs the marketplace against the page's
// localStorage, the same keys the JavaScript client used. Compiled natively it
// serves the page shell and the wasm file.
package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

func main() {
	app.Route("/", func() app.Composer { return &ProblemsView{} })
	app.Route("/login", func() app.Composer { return &LoginView{} })
	app.RunWhenOnBrowser()

	addr := flag.String("addr", ":8000", "Address serving the web client")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	http.Handle("/", &app.Handler{
		Name:        "IdeaBridge",
		Description: "Problems meet the IT professionals who solve them",
	})

	logger.Info("web client listening", slog.String("addr", *addr))
	if err := http.ListenAndServe(*addr, nil); err != nil {
		logger.Error("web client stopped", slog.Any("err", err))
		os.Exit(1)
	}
}
