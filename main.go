package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/jacobf001/iceland-db/controller"
	"github.com/jacobf001/iceland-db/db"
	"github.com/jacobf001/iceland-db/ksi"
	"github.com/jacobf001/iceland-db/web"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}
	connString := os.Getenv("POSTGRES_CONN_STR")

	portNum := 3000 // 3000 is the default
	port := os.Getenv("PORT")
	if port != "" {
		portNum, err = strconv.Atoi(port)
		if err != nil {
			log.Fatalf("error parsing port number: %v", err)
		}
	}

	clock := clock.New()
	db, err := db.New(context.Background(), connString, clock)
	if err != nil {
		log.Fatalf("cannot connect to DB: %v", err)
	}

	ksiClient, err := ksi.New()
	if err != nil {
		log.Fatalf("error creating ksi client: %v", err)
	}
	if baseURL := os.Getenv("KSI_BASE_URL"); baseURL != "" {
		ksiClient = ksi.NewForTest(baseURL)
	}

	season := clock.Now().UTC().Year()
	if s := os.Getenv("INGEST_SEASON"); s != "" {
		season, err = strconv.Atoi(s)
		if err != nil {
			log.Fatalf("error parsing ingest season: %v", err)
		}
	}

	compLimit := 0 // unlimited
	if l := os.Getenv("INGEST_COMP_LIMIT"); l != "" {
		compLimit, err = strconv.Atoi(l)
		if err != nil {
			log.Fatalf("error parsing competition limit: %v", err)
		}
	}

	frequency := 6 * time.Hour
	if f := os.Getenv("INGEST_FREQUENCY"); f != "" {
		frequency, err = time.ParseDuration(f)
		if err != nil {
			log.Fatalf("error parsing ingest frequency: %v", err)
		}
	}

	auth := web.AdminAuth{
		User:     os.Getenv("ADMIN_USER"),
		Password: os.Getenv("ADMIN_PASSWORD"),
	}
	if auth.User == "" || auth.Password == "" {
		log.Fatalf("ADMIN_USER and ADMIN_PASSWORD must be set")
	}

	ctrl, err := controller.New(clock, ksiClient, db)
	if err != nil {
		log.Fatalf("error creating a new controller: %v", err)
	}

	server, err := web.NewServer(portNum, auth, ctrl)
	if err != nil {
		log.Fatalf("error creating new web server: %v", err)
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Printf("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Setup a job that refreshes competitions and matches from KSÍ.
	wg.Add(1)
	go ctrl.RunPeriodicIngest(season, compLimit, frequency, shutdown, wg)

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	log.Printf("server shutdown")
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
