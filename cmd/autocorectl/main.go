package main

import (
	"github.com/autocore-io/autocore/cmd/autocorectl/app"
)

func main() {
	app.Run()
}
