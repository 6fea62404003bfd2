package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"etltransfer/etl"
	"etltransfer/etl/contract"
	"etltransfer/etl/shared"

	_ "github.com/adrianwit/dyndb"
	_ "github.com/alexbrainman/odbc"
	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/gops/agent"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/vertica/vertica-sql-go"
	_ "github.com/viant/asc"
	_ "github.com/viant/bgc"
)

//Version app version
var Version string

var port = flag.Int("port", 8080, "service port")
var serve = flag.Bool("serve", false, "run as HTTP service")
var configURL = flag.String("config", "", "config URL; with no URL config comes from env")
var requestURL = flag.String("request", "", "one shot transfer request URL")
var scheduleURL = flag.String("scheduleURL", "", "schedule documents URL")
var debug = flag.Bool("debug", false, "debug flag")
var statsHistory = flag.Int("statsHistory", 10, "max run history per job")

var mode = flag.String("mode", "", "transfer mode: direct or split")
var splits = flag.Int("splits", 0, "segment count in split mode")
var dateColumn = flag.String("dateColumn", "", "watermark column for incremental transfer")
var since = flag.String("since", "", "watermark timestamp, default last 24 hours")
var dropTarget = flag.Bool("dropTarget", false, "drop and recreate the target table")
var appendOnly = flag.Bool("appendOnly", false, "append without truncating the target")

func main() {
	flag.Parse()
	go func() {
		if err := agent.Listen(agent.Options{}); err != nil {
			log.Fatal(err)
		}
	}()

	config, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}
	service, err := etl.New(config)
	if err != nil {
		log.Fatal(err)
	}
	if *serve || config.ScheduleURL != "" {
		server := etl.NewServer(service, *port)
		go server.StopOnSignals(os.Interrupt)
		fmt.Printf("etltransfer %v listening on :%d\n", Version, *port)
		log.Fatal(server.ListenAndServe())
	}
	os.Exit(runOnce(service, config))
}

func loadConfig() (*shared.Config, error) {
	var config *shared.Config
	var err error
	if *configURL != "" {
		if config, err = shared.NewConfigFromURL(*configURL); err != nil {
			return nil, err
		}
	} else {
		config = shared.NewConfigFromEnv()
	}
	if *debug {
		config.Debug = true
	}
	if *scheduleURL != "" {
		config.ScheduleURL = *scheduleURL
	}
	if *statsHistory > 0 {
		config.MaxHistory = *statsHistory
	}
	return config, nil
}

//runOnce runs a single transfer and reports through the exit code
func runOnce(service etl.Service, config *shared.Config) int {
	var request *contract.Request
	var err error
	if *requestURL != "" {
		if request, err = contract.NewRequestFromURL(*requestURL); err != nil {
			log.Printf("failed to load request: %v", err)
			return 1
		}
	} else {
		request = contract.NewRequestFromConfig(config)
	}
	if *mode != "" {
		request.Mode = *mode
	}
	if *splits > 0 {
		request.Splits = *splits
	}
	if *dateColumn != "" {
		request.DateColumn = *dateColumn
	}
	if *since != "" {
		request.Since = *since
	}
	if *dropTarget {
		request.DropTarget = true
	}
	if *appendOnly {
		request.AppendOnly = true
	}
	response := service.Transfer(request)
	if response.Error != "" {
		log.Printf("transfer failed: %v", response.Error)
		return 1
	}
	fmt.Printf("transferred %v rows at %.0f rows/s\n", response.RowsTransferred, response.TransferRate)
	return 0
}
