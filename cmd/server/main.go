package main

import "github.com/strivetrack/strivetrack-api/internal/cli"

func main() {
	cli.Execute()
}
