package main

// @title Workspace Dashboard BFF API
// @version 1.0
// @description Session-holding backend for the workspace dashboard.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey CookieAuth
// @in header
// @name Cookie
// @description The access_token cookie issued by the workspace backend.

// @security CookieAuth
func main() {
	Execute()
}
