package main

import "grantes_backend/internal/app"

func main() {
	app.Run()
}
