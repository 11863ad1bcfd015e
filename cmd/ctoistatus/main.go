package main

import "github.com/pht-ctoi/ctoistatus/internal/cli"

func main() {
	cli.Execute()
}
