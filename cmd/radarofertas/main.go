package main

import (
	"os"

	"github.com/Migueldelg/RadarOfertas/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
