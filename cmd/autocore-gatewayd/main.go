package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/autocore-io/autocore/cmd/autocore-gatewayd/app"
)

func main() {
	app.NewApp().Run()
}
