package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"bikeshare/analysis"
	"bikeshare/config"
	"bikeshare/server/handler"
)

const (
	serverStr       = "server"
	shutdownTimeout = 10 * time.Second
)

type Server struct {
	config     config.ServerConfig
	httpServer *http.Server
}

func NewServer(serverConfig config.ServerConfig, service *analysis.Service, pageSize int) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), handler.Logger())
	handler.RegisterRoutes(router, handler.NewAnalysisHandler(service, pageSize))

	return &Server{
		config: serverConfig,
		httpServer: &http.Server{
			Addr:              serverConfig.Address,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func (s *Server) getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[%s][method: %s][status: ERROR] %s: %s", serverStr, method, message, err.Error())
	}
	return fmt.Sprintf("[%s][method: %s][status: OK] %s", serverStr, method, message)
}

// Run serves HTTP requests until ctx is done, then waits for the ongoing requests to finish
func (s *Server) Run(ctx context.Context) error {
	errChannel := make(chan error, 1)
	go func() {
		log.Info(s.getLogMessage("Run", fmt.Sprintf("listening on %s", s.config.Address), nil))
		errChannel <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errChannel:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		log.Error(s.getLogMessage("Run", "error serving requests", err))
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error(s.getLogMessage("Run", "error shutting down", err))
		return err
	}

	log.Info(s.getLogMessage("Run", "server stopped", nil))
	return nil
}
