package main

import (
	"os"

	"github.com/labstack/gommon/log"
)

//	@title			Fast Food Order Service
//	@version		1.0
//	@description	Order lifecycle engine: creation with payment, kitchen status updates and order queries.
//	@BasePath		/

func main() {
	if err := Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
