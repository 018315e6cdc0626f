package server

import (
	"FragFS/internal/platform/config"
	"FragFS/internal/platform/server/handler/disk"
	"FragFS/internal/platform/server/handler/file"
	"FragFS/internal/platform/server/handler/health"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	httpAddr string
	engine   *chi.Mux
	files    *file.FileHandler
	disk     *disk.DiskHandler
}

func NewServer(cfg config.Config, files *file.FileHandler, disk *disk.DiskHandler) Server {
	srv := Server{
		engine:   chi.NewRouter(),
		httpAddr: fmt.Sprintf(":%d", cfg.ServerPort),
		files:    files,
		disk:     disk,
	}
	srv.engine.Use(middleware.Logger)
	srv.engine.Use(middleware.Recoverer)
	srv.registerRoutes()
	return srv
}

func (s *Server) Run() error {
	log.Println("Server Running on:", s.httpAddr)
	return http.ListenAndServe(s.httpAddr, s.engine)
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) registerRoutes() {
	s.engine.Get("/health", health.CheckHandler)
	s.engine.Get("/layout", s.disk.GetLayout)
	s.engine.Post("/defragment", s.disk.Defragment)
	s.engine.Post("/wipe", s.disk.Wipe)
	s.engine.Post("/restore", s.disk.Restore)

	s.engine.Post("/files", s.files.CreateFile)
	s.engine.Get("/files/{name}", s.files.GetFile)
	s.engine.Put("/files/{name}", s.files.ResizeFile)
	s.engine.Delete("/files/{name}", s.files.DeleteFile)
}
