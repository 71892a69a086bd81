package main

import "github.com/reelify/reelcut/internal/cli"

func main() {
	cli.Main()
}
