// cmd/hamark/main.go
package main

import (
	"hamark/internal/app"
	"hamark/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
