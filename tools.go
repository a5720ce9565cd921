//go:build tools

package main

// Fija la versión del generador de docs/swagger.json (swag init).
import _ "github.com/swaggo/swag"
