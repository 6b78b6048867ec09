package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Asip90/User-View-OpenFood/configs"
	"github.com/Asip90/User-View-OpenFood/middlewares"
	"github.com/Asip90/User-View-OpenFood/repository"
	"github.com/Asip90/User-View-OpenFood/routes"
	"github.com/Asip90/User-View-OpenFood/services"
)

func main() {
	cfg := configs.LoadConfig()

	backend := repository.NewBackend(cfg.BackendBaseURL, cfg.RequestTimeout)

	sessions := services.NewSessionService(backend, cfg.SessionTTL)
	stop := make(chan struct{})
	defer close(stop)
	sessions.StartSweeper(cfg.SweepInterval, stop)

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())
	routes.RegisterRoutes(r, cfg, backend, sessions)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("table-side ordering frontend running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
