package server

import (
	"context"
	"net"
	"net/http"

	"github.com/citystride/wayfarer/config"
	"github.com/citystride/wayfarer/server/api"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type Server struct {
	*config.Config

	handler http.Handler
}

func New(cfg *config.Config) (*Server, error) {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	h, err := api.New(cfg)

	if err != nil {
		return nil, err
	}

	r.Route("/v1", func(r chi.Router) {
		h.Attach(r)
	})

	return &Server{
		Config: cfg,

		handler: r,
	}, nil
}

func (s *Server) ListenAndServe(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.Address,
		Handler: s.handler,

		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	return server.ListenAndServe()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
