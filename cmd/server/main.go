package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"parkfront/internal/backend"
	"parkfront/internal/config"
	"parkfront/internal/session"
	"parkfront/internal/view"
	"parkfront/internal/web"
)

func main() {
	godotenv.Load()
	cfg := config.Load()
	if cfg.TokenSecret == "" {
		log.Fatal("TOKEN_SECRET not set")
	}

	api := backend.NewClient(cfg.BackendURL, cfg.HTTPTimeout)
	sessions := session.NewStore(cfg.SessionTTL)
	schemes := view.NewSchemeResolver(view.DefaultSchemes(), nil)

	server := web.NewServer(api, sessions, schemes, cfg.TokenSecret)

	r := mux.NewRouter()
	r.PathPrefix("/images/").Handler(http.FileServer(http.Dir("static")))
	r.PathPrefix("/css/").Handler(http.FileServer(http.Dir("static")))
	r.PathPrefix("/js/").Handler(http.FileServer(http.Dir("static")))
	server.Routes(r)

	c := cron.New()
	c.AddFunc("@every 10m", sessions.Sweep)
	c.Start()
	defer c.Stop()

	handler := handlers.LoggingHandler(os.Stdout, handlers.RecoveryHandler()(r))

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
