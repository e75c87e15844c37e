package main

import (
	"github.com/corray333/backoffice/internal/app"
	"github.com/corray333/backoffice/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
