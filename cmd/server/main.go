package main

import (
	"os"

	"triage-chat/internal/app"
)

// @title           Triage Chat API
// @version         1.0
// @description     Chat page for the banking email and text triage assistant.
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}
