// Package formulario assembles the municipal form service: a REST API
// for the admin dashboard, the public render path, storage, and the
// notification worker.
package formulario

import (
	"log"
	"os"
	"os/signal"

	"github.com/guivini-ac/site-timon-sub003/formulario/db"
	"github.com/guivini-ac/site-timon-sub003/formulario/web"
	"github.com/guivini-ac/site-timon-sub003/formulario/worker"
)

// Config containing all the configuration values for the service.
type Config struct {
	Port   uint16
	DBPath string
	// CreatedBy is recorded on every form saved through the API.
	CreatedBy string
}

// Service represents the full form service: a web server, a database
// holding forms and submissions, and a worker dispatching submission
// notifications.
type Service struct {
	web      *web.Server
	db       *db.Connection
	notifier *worker.Worker
	Config   Config
}

// NewService creates a Service for the given configuration.
func NewService(config Config) (*Service, error) {
	srv := new(Service)
	srv.Config = config
	if srv.Config.CreatedBy == "" {
		srv.Config.CreatedBy = "admin"
	}

	log.Print("Initialising database")
	conn, err := db.New(config.DBPath)
	if err != nil {
		return nil, err
	}
	srv.db = conn

	srv.notifier = worker.New()

	srv.web = web.New(config.Port)
	srv.setupWebRoutes()

	return srv, nil
}

// Start the service (notification worker and web server).
func (srv *Service) Start() {
	log.Print("Starting notification worker")
	srv.notifier.Start()

	log.Print("Starting web service")
	srv.web.Start()
	log.Print("Web server started")
}

// WaitForInterrupt blocks until the service receives an interrupt
// signal (SIGINT).
func (srv *Service) WaitForInterrupt() {
	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, os.Interrupt)
	<-sigchan
}

// Stop the service by gracefully shutting down the web service,
// stopping the notification worker, and closing the database
// connection, in that order.
func (srv *Service) Stop() {
	log.Print("Stopping web service")
	srv.web.Stop()

	log.Print("Stopping notification worker")
	srv.notifier.Stop()

	log.Print("Closing database connection")
	if err := srv.db.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
	log.Print("Service stopped")
}
