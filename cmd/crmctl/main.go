package main

import "crm-service/internal/cli"

func main() {
	cli.Execute()
}
