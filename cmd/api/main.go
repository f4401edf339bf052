package main

import (
	"log"
	"marketdash/cmd"
)

func main() {
	apiHandler, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	err = apiHandler.StartApi(apiHandler.Config.Server.Port)
	if err != nil {
		log.Fatal(err)
	}
}
