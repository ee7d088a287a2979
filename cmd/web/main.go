// @title           Studio API
// @version         1.0
// @description     Website backend: portfolio with media uploads, orders, reviews and the admin panel.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

package main

import "studio_backend/internal/app"

func main() {
	app.Run()
}
