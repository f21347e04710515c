// cmd/polycore/main.go
package main

import (
	"polycore/internal/app"
	"polycore/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
