package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>foodshare — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document covering the public surface.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "foodshare", "version": "v0.1.0" },
  "paths": {
    "/jwt": {
      "post": { "summary": "Issue a bearer token for an email", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"}}}}}}, "responses": { "200": { "description": "token returned" }, "400": { "description": "email missing" } } }
    },
    "/foods": {
      "get": { "summary": "List food listings, optionally filtered by status and donor email", "responses": { "200": { "description": "array of listings" } } },
      "post": { "summary": "Publish a food listing (requires token, donorEmail required)", "responses": { "201": { "description": "insert acknowledgment" }, "400": { "description": "donorEmail missing" } } }
    },
    "/foods/{id}": {
      "get": { "summary": "Get a single listing", "responses": { "200": { "description": "listing" }, "400": { "description": "malformed id" }, "404": { "description": "no such listing" } } },
      "patch": { "summary": "Merge fields into a listing (requires token)", "responses": { "200": { "description": "update acknowledgment" } } },
      "delete": { "summary": "Delete a listing (requires token)", "responses": { "200": { "description": "delete acknowledgment" } } }
    },
    "/requests": {
      "post": { "summary": "Create a food request (requires token, userEmail required)", "responses": { "201": { "description": "insert acknowledgment" } } },
      "get": { "summary": "List requests for an email; must match the token identity", "responses": { "200": { "description": "array of requests" }, "403": { "description": "email does not match token" } } }
    },
    "/my-requests": {
      "get": { "summary": "List the caller's own requests", "responses": { "200": { "description": "array of requests" } } }
    },
    "/all-requests": {
      "get": { "summary": "List every request (requires token)", "responses": { "200": { "description": "array of requests" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
