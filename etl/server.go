package etl

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
)

//Server represents the transfer HTTP server
type Server struct {
	http.Server
}

//StopOnSignals shuts the server down on supplied os signals
func (s *Server) StopOnSignals(signals ...os.Signal) {
	notification := make(chan os.Signal, 1)
	signal.Notify(notification, signals...)
	<-notification
	log.Print("shutting down")
	_ = s.Close()
}

//NewServer creates a server for supplied service and port
func NewServer(service Service, port int) *Server {
	return &Server{
		Server: http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: NewRouter(service),
		},
	}
}
