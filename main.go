package main

import (
	"flag"
	"log"

	"github.com/promptdeck/promptdeck-backend/cmd"
)

func main() {
	shouldRunMigrations := flag.Bool("migrations", false, "Run migrations")
	shouldRunServer := flag.Bool("server", false, "Run server")
	shouldRunWorker := flag.Bool("worker", false, "Run the task queue worker")
	flag.Parse()
	log.Println("Flags:",
		"migrations:", *shouldRunMigrations,
		"server:", *shouldRunServer,
		"worker:", *shouldRunWorker,
	)
	if !*shouldRunMigrations && !*shouldRunServer && !*shouldRunWorker {
		flag.Usage()
		return
	}

	cmd.LoadDotEnv()

	if *shouldRunMigrations {
		if err := cmd.RunMigrations(); err != nil {
			log.Fatal(err)
		}
	}

	if *shouldRunServer {
		if err := cmd.RunServer(); err != nil {
			log.Fatal(err)
		}
	}

	if *shouldRunWorker {
		if err := cmd.RunTaskQueue(); err != nil {
			log.Fatal(err)
		}
	}
}
