package server

import (
	_ "embed"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// @title Beacon API
// @version 0.1
// @description Interactive documentation for the beacon audit API surface.
// @contact.name Beacon Maintainers
// @contact.url https://github.com/tmarchev/beacon
// @BasePath /

//go:embed openapi.json
var openAPIDoc []byte

// swaggerHandler serves the Swagger UI backed by the embedded document.
func swaggerHandler() http.HandlerFunc {
	return httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	)
}

func handleSwaggerDoc(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openAPIDoc)
}
