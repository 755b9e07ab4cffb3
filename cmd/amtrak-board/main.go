package main

import (
	"flag"

	board "github.com/theoremus-urban-solutions/amtrak-board"
	"github.com/theoremus-urban-solutions/amtrak-board/config"
	"github.com/theoremus-urban-solutions/amtrak-board/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml (default ./config.yml)")
	flag.Parse()

	log := logging.Default()
	if err := config.LoadAppConfig(*configPath); err != nil {
		panic(err)
	}

	gate := board.NewGate(config.Config, log)
	board.StartServer(gate, log)
	board.HandleGracefulShutdown(log)
}
