// cmd/polycore-dist/main.go
package main

import (
	"polycore/internal/appshell"
	"polycore/internal/distapp"
)

func main() {
	appshell.Main(distapp.RunContext)
}
