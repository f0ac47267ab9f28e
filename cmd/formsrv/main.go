package main

import (
	"flag"
	"log"

	"github.com/guivini-ac/site-timon-sub003/formulario"
)

func main() {
	port := flag.Uint("port", 3000, "port to listen on")
	dbpath := flag.String("db", "./formulario.db", "path to the sqlite database file")
	createdBy := flag.String("created-by", "admin", "author recorded on forms saved through the API")
	flag.Parse()

	config := formulario.Config{
		Port:      uint16(*port),
		DBPath:    *dbpath,
		CreatedBy: *createdBy,
	}
	srv, err := formulario.NewService(config)
	if err != nil {
		log.Fatal(err)
	}
	srv.Start()
	defer srv.Stop()
	srv.WaitForInterrupt()
}
