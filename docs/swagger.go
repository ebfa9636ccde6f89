package docs

import "github.com/swaggo/swag"

// @title Kurir Pintar API
// @version 1.0
// @description Delivery management API: customers, multi-stop orders, distance tiers and AI route ordering
// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
var SwaggerInfo = &swag.Spec{
	Version:     "1.0",
	Host:        "localhost:8080",
	BasePath:    "/api/v1",
	Title:       "Kurir Pintar API",
	Description: "Delivery management API: customers, multi-stop orders, distance tiers and AI route ordering",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
